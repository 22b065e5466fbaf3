// =============================================================================
// Cartorio Audit - Corrigir Command
// =============================================================================
//
// This file defines the 'corrigir' command, which replays a correction
// instruction batch over a filing and writes the corrected document.
//
// COMMAND USAGE:
//   auditor corrigir <dominio> <arquivo> --instrucoes correcoes.json
//
// The instruction file is a JSON array of corrections as produced by a
// review of a findings report. Header-field corrections propagate to
// every act element sharing the grouping key; unmatched instructions are
// skipped and counted.
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmcunha/cartorio-audit/internal/auditoria"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// instrucoesFile holds the path to the correction batch.
var instrucoesFile string

// archiveInput moves the source filing to the archive after correction.
var archiveInput bool

var corrigirCmd = &cobra.Command{
	Use:   "corrigir <dominio> <arquivo>",
	Short: "Replay a correction batch over a filing",
	Long: `Replay a JSON batch of correction instructions over a filing and write
the regenerated document to the output directory. Replaying the same batch
over the corrected output is a no-op.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		dominio, path := args[0], args[1]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		batch, err := os.ReadFile(instrucoesFile)
		if err != nil {
			return fmt.Errorf("failed to read instruction file: %w", err)
		}
		var instrucoes []types.Correction
		if err := json.Unmarshal(batch, &instrucoes); err != nil {
			return fmt.Errorf("failed to parse instruction file: %w", err)
		}

		auditor := auditoria.New(env.tables, env.log)
		out, err := auditor.Corrigir(dominio, data, instrucoes)
		if err != nil {
			return err
		}

		outPath, err := env.files.WriteOutput(path, out.Output)
		if err != nil {
			return err
		}

		if archiveInput {
			if err := env.files.ArchiveInput(path); err != nil {
				return err
			}
		}

		fmt.Printf("%s: %d applied, %d skipped, corrected document written to %s\n",
			path, out.Stats.Applied, out.Stats.Skipped, outPath)
		return nil
	},
}

func init() {
	corrigirCmd.Flags().StringVarP(
		&instrucoesFile,
		"instrucoes",
		"i",
		"",
		"Path to the JSON correction instruction batch (required)",
	)
	corrigirCmd.MarkFlagRequired("instrucoes")

	corrigirCmd.Flags().BoolVar(
		&archiveInput,
		"arquivar",
		false,
		"Move the source filing to the archive directory after correction",
	)

	rootCmd.AddCommand(corrigirCmd)
}
