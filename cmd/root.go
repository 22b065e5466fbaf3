// =============================================================================
// Cartorio Audit - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command all subcommands attach to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (auditor)
//   ├── validarCmd  (auditor validar)
//   ├── corrigirCmd (auditor corrigir)
//   ├── conferirCmd (auditor conferir)
//   └── versionCmd  (auditor version)
//
// The root command owns the global flags (--config, --verbose) and the
// shared environment: configuration, domain tables and the logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gmcunha/cartorio-audit/internal/config"
	"github.com/gmcunha/cartorio-audit/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file, overridable with
// the --config flag.
var cfgFile string

// verbose forces debug logging regardless of the configured level.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "auditor",
	Short: "Cartorio Audit - Validate, correct and reconcile notarial filings",

	Long: `Cartorio Audit is a CLI tool that audits the structured filings the
registry information systems exchange: notarial deed extracts, power-of-
attorney extracts, real-estate registry extracts and DOI declaration lots.

Key Features:
  - Per-domain rule validation with guided-correction findings
  - Correction replay with header-field propagation across act groups
  - Billing-guide reconciliation between system spreadsheet and guide text
  - JSON reports written to the configured output directory

Example Usage:
  auditor validar notas extrato.xml       # Validate a deed extract
  auditor corrigir notas extrato.xml -i correcoes.json
  auditor conferir relatorio.xlsx guia.txt`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once, by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED ENVIRONMENT
// =============================================================================

// environment bundles what every subcommand needs to run.
type environment struct {
	cfg    *config.MainConfig
	tables *config.Tables
	files  *utils.FileManager
	log    zerolog.Logger
}

// loadEnvironment reads the configuration and builds the logger and file
// manager. Subcommands call this at the top of their RunE.
func loadEnvironment() (*environment, error) {
	cfg, err := config.LoadMain(cfgFile)
	if err != nil {
		return nil, err
	}

	tables, err := config.LoadTables(cfg.TablesFile)
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return &environment{
		cfg:    cfg,
		tables: tables,
		files:  utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir),
		log:    log,
	}, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
