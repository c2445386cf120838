// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jmoreno/gastos-csv/internal/common"
	"jmoreno/gastos-csv/internal/config"
	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/pipeline"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Logger is Log wrapped in the application logging interface.
	Logger logging.Logger = logging.NewLogrusAdapterFromLogger(Log)

	// Cfg is the loaded application configuration, available to all
	// commands after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "gastos-csv",
		Short: "Classify bank-statement transactions into a stable taxonomy.",
		Long: `gastos-csv ingests bank-statement transaction records, removes duplicate
imports and assigns each record a kind (gasto, ingreso, traspaso, inversión)
and a two-level category through a layered rule cascade.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to gastos-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Cfg = cfg

			Log = config.ConfigureLogging(cfg)
			Logger = logging.NewLogrusAdapterFromLogger(Log)
			logging.SetDefault(Logger)
			common.SetLogger(Logger)

			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
		},
	}

	// Flags shared by the pipeline-style commands.
	StorePath string
	DryRun    bool
)

// PipelineOptions builds pipeline options from the loaded configuration.
func PipelineOptions() pipeline.Options {
	return pipeline.Options{
		CatalogFile:   Cfg.Catalog.File,
		BanksFile:     Cfg.Rules.BanksFile,
		RulesFile:     Cfg.Rules.File,
		ToleranceDays: Cfg.Matcher.ToleranceDays,
		DryRun:        DryRun,
		Logger:        Logger,
	}
}

// ResolveStorePath returns the --store flag when set, the configured path
// otherwise.
func ResolveStorePath() string {
	if StorePath != "" {
		return StorePath
	}
	return Cfg.Store.Path
}

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&StorePath, "store", "s", "", "Path to the SQLite store (overrides config)")
	Cmd.PersistentFlags().BoolVarP(&DryRun, "dry-run", "n", false, "Compute everything but write nothing back")
}
