package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/workwithprnv-stack/survey/internal/collection"
	"github.com/workwithprnv-stack/survey/internal/server"
)

const defaultPort = "3000"

var (
	port      string
	host      string
	dataPath  string
	staticDir string
	verbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "survey-server",
	Short: "Collect completed survey responses into a JSON file",
	Long: `Serves the survey client and accepts completed response sets.

Endpoints:
  POST /submit         store a response set (one record per session id)
  GET  /api/responses  the full stored collection
  GET  /healthz        liveness
  GET  /metrics        Prometheus counters`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServer,
}

func init() {
	// Port from environment or default
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = defaultPort
	}
	rootCmd.Flags().StringVar(&port, "port", envPort, "listen port (env PORT)")
	rootCmd.Flags().StringVar(&host, "host", "", "listen host; empty listens on all interfaces")
	rootCmd.Flags().StringVar(&dataPath, "data", "responses_data.json", "collection file")
	rootCmd.Flags().StringVar(&staticDir, "static", ".", "directory of client files to serve; empty disables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func runServer(cmd *cobra.Command, args []string) error {
	store, err := collection.Open(dataPath)
	if err != nil {
		return fmt.Errorf("failed to open collection: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(store, net.JoinHostPort(host, port), staticDir, logger)
	return srv.Start(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
