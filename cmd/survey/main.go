package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/workwithprnv-stack/survey/internal/appdir"
	"github.com/workwithprnv-stack/survey/internal/catalog"
	"github.com/workwithprnv-stack/survey/internal/database"
)

const defaultServerURL = "http://localhost:3000"

var (
	// Global flags
	serverURL   string
	dataDir     string
	catalogPath string
	verbose     bool

	applicationDirectory string
	db                   *database.Database
	logger               *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "survey",
	Short: "Take the campus IT services survey in your terminal",
	Long: `Walks through the survey one question at a time.

Answers are saved on this device after every question, so you can quit and
pick up where you left off. When the last question is answered the responses
are sent to the survey server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		applicationDirectory, err = appdir.Ensure(dataDir)
		if err != nil {
			return err
		}

		// The terminal belongs to the wizard; logs go to a file.
		config := zap.NewProductionConfig()
		config.OutputPaths = []string{filepath.Join(applicationDirectory, "survey.log")}
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		db, err = database.NewDatabase(filepath.Join(applicationDirectory, "survey.db"))
		if err != nil {
			return err
		}
		return nil
	},
	RunE: runSurvey,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write your responses as JSON",
	Long: `Writes the current session's responses to a JSON file for your own
records. With --out - the JSON goes to standard output.`,
	Args: cobra.NoArgs,
	RunE: exportResponses,
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Print this device's survey session id",
	Args:  cobra.NoArgs,
	RunE:  showSession,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the session id and saved answers on this device",
	Args:  cobra.NoArgs,
	RunE:  resetSession,
}

var exportOut string

func init() {
	envServer := os.Getenv("SURVEY_SERVER")
	if envServer == "" {
		envServer = defaultServerURL
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envServer, "survey server URL (env SURVEY_SERVER)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for local state (default: per-user application directory)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "YAML question catalog (default: built-in survey)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default survey_<session>.json in the current directory)")

	rootCmd.AddCommand(exportCmd, sessionCmd, resetCmd)

	// Finalizers run whether or not the command failed.
	cobra.OnFinalize(releaseResources)
}

func releaseResources() {
	if db != nil {
		db.Close()
		db = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func loadCatalog() (catalog.Catalog, error) {
	if catalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(catalogPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
