package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/teamdesk/teamdesk/engine/infra/mongostore"
	"github.com/teamdesk/teamdesk/engine/infra/server"
	"github.com/teamdesk/teamdesk/engine/team"
	"github.com/teamdesk/teamdesk/engine/template"
	"github.com/teamdesk/teamdesk/pkg/config"
	"github.com/teamdesk/teamdesk/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	log := logger.SetupLogger(cfg.Log.Level, cfg.Log.JSON, cfg.Log.Source)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.ContextWithLogger(ctx, log)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	store, err := mongostore.Connect(connectCtx, cfg.Database.URI, cfg.Database.Name, cfg.Database.Transactions)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("closing store", "error", err)
		}
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, store, log)
	api := srv.API()
	team.RegisterRoutes(api, store)
	template.RegisterRoutes(api, store)

	return srv.Run(ctx)
}
