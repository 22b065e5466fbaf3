// =============================================================================
// Cartorio Audit - Validar Command
// =============================================================================
//
// This file defines the 'validar' command, which validates one or more
// filings of a domain and writes a findings report per file.
//
// COMMAND USAGE:
//   auditor validar <dominio> [arquivo...]
//
// When no files are given, the input directory is scanned. Rule violations
// do not fail the command; only structural failures and I/O errors set a
// non-zero exit status.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmcunha/cartorio-audit/internal/auditoria"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// validarReport is the JSON shape of one findings report.
type validarReport struct {
	Arquivo string                    `json:"arquivo"`
	Dominio string                    `json:"dominio"`
	Sucesso bool                      `json:"sucesso"`
	Achados []types.Finding           `json:"achados"`
	Stats   auditoria.ValidationStats `json:"estatisticas"`
}

var validarCmd = &cobra.Command{
	Use:   "validar <dominio> [arquivo...]",
	Short: "Validate filings against the domain rule table",
	Long: `Validate one or more filings of the given domain (notas, procuracao,
imoveis or doi). Each file produces a JSON findings report in the output
directory. Rule violations accumulate as findings; the command only fails
on unreadable input or structural failure of every file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		dominio := args[0]
		files := args[1:]
		if len(files) == 0 {
			files, err = env.files.DiscoverInputFiles("")
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no input files found in %s", env.cfg.InputDir)
			}
		}

		auditor := auditoria.New(env.tables, env.log)
		failures := 0

		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			out, err := auditor.Validar(dominio, data)
			if err != nil {
				return err
			}
			if !out.Result.Success {
				failures++
			}

			reportPath, err := env.files.WriteReport("achados", validarReport{
				Arquivo: path,
				Dominio: dominio,
				Sucesso: out.Result.Success,
				Achados: out.Result.Findings,
				Stats:   out.Stats,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s: %d finding(s), report written to %s\n",
				path, len(out.Result.Findings), reportPath)
		}

		if failures == len(files) {
			return fmt.Errorf("all %d file(s) failed structural validation", failures)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validarCmd)
}
