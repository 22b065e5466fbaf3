// =============================================================================
// Cartorio Audit - Audit Orchestrator
// =============================================================================
//
// This module drives the processing pipelines for a single filing. It wires
// the loaders, the grouping and rule engines, the correction replay and the
// reconciliation into the three operations the CLI exposes.
//
// VALIDATION PIPELINE:
//   1. Load the document (tagged extract or JSON lot, per domain)
//   2. Group the raw nodes into logical acts
//   3. Run the domain rule table
//   4. Return the findings plus processing statistics
//
// CORRECTION PIPELINE:
//   1. Load the document
//   2. Replay the instruction batch (header fields propagate by group)
//   3. Re-serialize the corrected document
//
// RECONCILIATION PIPELINE:
//   The spreadsheet (system side) and the guide text (audited file) parse
//   concurrently; either failure aborts the whole reconciliation with no
//   partial report.
//
// =============================================================================

package auditoria

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gmcunha/cartorio-audit/internal/atos"
	"github.com/gmcunha/cartorio-audit/internal/config"
	"github.com/gmcunha/cartorio-audit/internal/extrato"
	"github.com/gmcunha/cartorio-audit/internal/fundos"
	"github.com/gmcunha/cartorio-audit/internal/guia"
	"github.com/gmcunha/cartorio-audit/internal/reconcile"
	"github.com/gmcunha/cartorio-audit/internal/rules"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// ValidationOutcome is the result of validating one filing.
type ValidationOutcome struct {
	// Domain is the filing domain that was validated.
	Domain string

	// Result holds the findings. Success is false only on structural
	// failure; rule violations accumulate with Success still true.
	Result types.ValidationResult

	// Stats contains processing statistics.
	Stats ValidationStats
}

// ValidationStats contains statistics about one validation run.
type ValidationStats struct {
	// Nodes is the number of raw act elements read from the document.
	Nodes int

	// Acts is the number of logical acts after grouping.
	Acts int

	// Parties is the total party count across all acts.
	Parties int

	// Findings is the number of findings produced.
	Findings int

	// ProcessingTime is the time taken to validate the filing.
	ProcessingTime time.Duration
}

// CorrectionOutcome is the result of replaying a correction batch.
type CorrectionOutcome struct {
	// Domain is the filing domain of the corrected document.
	Domain string

	// Output is the regenerated document text.
	Output []byte

	// Stats counts applied and skipped instructions.
	Stats extrato.ApplyStats

	// ProcessingTime is the time taken to replay the batch.
	ProcessingTime time.Duration
}

// =============================================================================
// AUDITOR
// =============================================================================

// Auditor runs the audit pipelines over one read-only table set.
type Auditor struct {
	tables *config.Tables
	log    zerolog.Logger
}

// New creates an Auditor over the loaded configuration tables.
func New(tables *config.Tables, log zerolog.Logger) *Auditor {
	return &Auditor{tables: tables, log: log}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validar runs the validation pipeline over one filing. Structural
// failures (unparseable input, zero acts) come back as a root finding with
// Success false, not as an error; errors are reserved for configuration
// problems.
func (a *Auditor) Validar(domainName string, data []byte) (*ValidationOutcome, error) {
	start := time.Now()

	domain, err := a.tables.Domain(domainName)
	if err != nil {
		return nil, err
	}
	engine, err := rules.NewEngine(domainName, a.tables)
	if err != nil {
		return nil, err
	}

	doc, err := a.load(&domain, data)
	if err != nil {
		a.log.Warn().Str("domain", domainName).Err(err).
			Msg("structural failure, validation short-circuited")
		return &ValidationOutcome{
			Domain: domainName,
			Result: rules.RootFailure(rootMessage(err)),
			Stats:  ValidationStats{Findings: 1, ProcessingTime: time.Since(start)},
		}, nil
	}

	acts := atos.Group(doc.Nodes, &domain)
	result := engine.Validate(acts)

	stats := ValidationStats{
		Nodes:          len(doc.Nodes),
		Acts:           len(acts),
		Findings:       len(result.Findings),
		ProcessingTime: time.Since(start),
	}
	for _, act := range acts {
		stats.Parties += len(act.Parties)
	}

	a.log.Info().
		Str("domain", domainName).
		Int("nodes", stats.Nodes).
		Int("acts", stats.Acts).
		Int("findings", stats.Findings).
		Dur("elapsed", stats.ProcessingTime).
		Msg("validation completed")

	return &ValidationOutcome{Domain: domainName, Result: result, Stats: stats}, nil
}

// =============================================================================
// CORRECTION REPLAY
// =============================================================================

// Corrigir replays an instruction batch over a filing and returns the
// regenerated document. Here a structural failure is an error: there is
// nothing to correct.
func (a *Auditor) Corrigir(domainName string, data []byte, instrucoes []types.Correction) (*CorrectionOutcome, error) {
	start := time.Now()

	domain, err := a.tables.Domain(domainName)
	if err != nil {
		return nil, err
	}

	doc, err := a.load(&domain, data)
	if err != nil {
		return nil, fmt.Errorf("cannot correct an unloadable document: %w", err)
	}

	corrected, stats := extrato.Apply(doc, &domain, instrucoes)

	var output []byte
	if domain.JSONLot {
		output, err = extrato.SerializeDOI(corrected)
		if err != nil {
			return nil, err
		}
	} else {
		output = extrato.Serialize(corrected)
	}

	if stats.Skipped > 0 {
		a.log.Warn().
			Str("domain", domainName).
			Int("skipped", stats.Skipped).
			Msg("correction instructions did not match any node")
	}
	a.log.Info().
		Str("domain", domainName).
		Int("applied", stats.Applied).
		Int("nodesWritten", stats.NodesWritten).
		Msg("correction replay completed")

	return &CorrectionOutcome{
		Domain:         domainName,
		Output:         output,
		Stats:          stats,
		ProcessingTime: time.Since(start),
	}, nil
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// Conferir reconciles the system spreadsheet against the guide text. The
// two parses run concurrently and fail fast: any parse error aborts with
// no partial report.
func (a *Auditor) Conferir(ctx context.Context, planilha io.Reader, textoGuia []byte) (*types.AuditReport, error) {
	tabela := fundos.FromConfig(a.tables.Fundos, a.tables.FundosOrdem)

	var sistema, arquivo reconcile.Ledger

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, summary, err := guia.NewPlanilhaParser(tabela).Parse(planilha)
		if err != nil {
			return fmt.Errorf("system spreadsheet: %w", err)
		}
		sistema = reconcile.Ledger{Summary: summary, Records: records}
		return nil
	})
	g.Go(func() error {
		records, summary, err := guia.NewTextParser(tabela).Parse(string(textoGuia))
		if err != nil {
			return fmt.Errorf("guide text: %w", err)
		}
		arquivo = reconcile.Ledger{Summary: summary, Records: records}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := reconcile.Compare(sistema, arquivo, tabela)

	a.log.Info().
		Int("records", report.Statistics.TotalRegistros).
		Int("divergent", report.Statistics.Divergentes).
		Int("absentFile", report.Statistics.AusentesArquivo).
		Int("absentSystem", report.Statistics.AusentesSistema).
		Msg("reconciliation completed")

	return &report, nil
}

// =============================================================================
// LOADING
// =============================================================================

// load picks the loader matching the domain's source format.
func (a *Auditor) load(domain *config.Domain, data []byte) (*extrato.Document, error) {
	if domain.JSONLot {
		return extrato.LoadDOI(data)
	}
	return extrato.LoadXML(data, domain.ActTag)
}

// rootMessage renders a structural failure for the synthetic root finding.
func rootMessage(err error) string {
	switch {
	case errors.Is(err, extrato.ErrNoActs):
		return "Nenhum ato encontrado no documento"
	case errors.Is(err, extrato.ErrNotALot):
		return "O arquivo não contém um lote de declarações"
	case errors.Is(err, extrato.ErrNoRecords):
		return "O lote de declarações está vazio"
	default:
		return fmt.Sprintf("Falha ao interpretar o documento: %v", err)
	}
}
