// Package root contains the root command for the application
package root

import (
	"path/filepath"

	"fjacquet/receipt-csv/internal/config"
	"fjacquet/receipt-csv/internal/fileutils"
	"fjacquet/receipt-csv/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, populated before any
	// subcommand runs.
	Cfg = &config.Config{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "receipt-csv",
		Short: "A CLI tool to parse receipt text into structured records and analyze them.",
		Long: `receipt-csv extracts vendor, date and amount from raw receipt text,
categorizes the purchase, and stores the result as CSV records.
It also provides search, sort and statistics over the stored records.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to receipt-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Warn("Invalid configuration, using defaults")
			} else {
				Cfg = cfg
			}

			fileutils.SetLogger(Log)
			store.SetLogger(Log)
		},
	}

	// Common flags accessible to all commands
	RecordsFile string

	// Parse command flags
	InputFile      string
	OutputFile     string
	ManualCategory string
	SaveRecord     bool

	// Categorize command flags
	Vendor string
	Amount string
	Text   string

	// Search command flags
	Query     string
	Pattern   string
	Field     string
	Algorithm string
	MinAmount float64
	MaxAmount float64
	FromDate  string
	ToDate    string

	// Sort command flags
	Descending bool

	// Stats command flags
	Interval   string
	WindowSize int
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&RecordsFile, "records", "r", "", "Records CSV file (default from configuration)")
}

// RecordsPath resolves the record store location: the --records flag when
// given, otherwise the configured data directory.
func RecordsPath() string {
	if RecordsFile != "" {
		return RecordsFile
	}
	if path := Cfg.GetRecordsPath(); path != "" {
		return path
	}
	return filepath.Join("data", "records.csv")
}
