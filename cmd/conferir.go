// =============================================================================
// Cartorio Audit - Conferir Command
// =============================================================================
//
// This file defines the 'conferir' command, which reconciles the billing
// spreadsheet exported by the system against the text extracted from the
// printed guide, writing an audit report.
//
// COMMAND USAGE:
//   auditor conferir <planilha.xlsx> <guia.txt>
//
// The two inputs parse concurrently; if either parse fails the whole
// reconciliation aborts with no partial report.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmcunha/cartorio-audit/internal/auditoria"
)

var conferirCmd = &cobra.Command{
	Use:   "conferir <planilha> <guia>",
	Short: "Reconcile the system spreadsheet against the guide text",
	Long: `Reconcile the billing records of the system spreadsheet (authoritative
side) against the text extracted from the printed guide. Produces a JSON
audit report with per-record classifications and aggregate statistics.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		planilha, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open spreadsheet: %w", err)
		}
		defer planilha.Close()

		texto, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read guide text: %w", err)
		}

		auditor := auditoria.New(env.tables, env.log)
		report, err := auditor.Conferir(cmd.Context(), planilha, texto)
		if err != nil {
			return err
		}

		reportPath, err := env.files.WriteReport("conferencia", report)
		if err != nil {
			return err
		}

		s := report.Statistics
		fmt.Printf("%d record(s): %d ok, %d divergent, %d absent in file, %d absent in system\n",
			s.TotalRegistros, s.Conferem, s.Divergentes, s.AusentesArquivo, s.AusentesSistema)
		fmt.Printf("Audit report written to %s\n", reportPath)

		if s.Divergentes+s.AusentesArquivo+s.AusentesSistema > 0 {
			fmt.Println("Reconciliation found divergences; review the report.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(conferirCmd)
}
