// =============================================================================
// Cartorio Audit - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Cartorio Audit CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   auditor validar <dominio> [arquivo...]  - Validate filings
//   auditor corrigir <dominio> <arquivo>    - Replay a correction batch
//   auditor conferir <planilha> <guia>      - Reconcile billing records
//   auditor version                         - Display the version
//
// ARCHITECTURE:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : Core business logic (not for external import)
//   - pkg/      : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/gmcunha/cartorio-audit/cmd"
)

func main() {
	cmd.Execute()
}
