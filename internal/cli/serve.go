package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mlorenz/asciigram/internal/server"
	"github.com/mlorenz/asciigram/pkg/config"
	"github.com/mlorenz/asciigram/pkg/pipeline"
	"github.com/mlorenz/asciigram/pkg/store"
)

// newServeCmd creates the serve command, which runs the HTTP render
// API until interrupted.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the asciigram HTTP API.

The server renders flowchart source on POST /render. When a MongoDB URI
is configured, diagrams can also be saved and loaded under /diagrams.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner := pipeline.NewRunner(newCache(ctx, cfg), newKeyer(cfg), logger)
	defer runner.Close()

	var st store.Store
	if cfg.Server.MongoURI != "" {
		st, err = store.NewMongoStore(ctx, cfg.Server.MongoURI, cfg.Server.MongoDatabase)
		if err != nil {
			return err
		}
		defer st.Close(context.Background())
		logger.Info("diagram store enabled", "database", cfg.Server.MongoDatabase)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(runner, st, logger).ListenAndServe(ctx, addr)
}
