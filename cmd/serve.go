package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MatthewDes/EcosolGIS-website/internal/config"
	"github.com/MatthewDes/EcosolGIS-website/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP API",
	Long: `Serve the catalog over HTTP: public listing and health endpoints, plus
token-gated project creation and deletion for the website's admin page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		token := cfg.Token()
		if token == "" {
			return fmt.Errorf("no admin token configured: set admin_token in the config or the ECOSOLGIS_ADMIN_TOKEN environment variable")
		}

		log, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer log.Sync()

		store, err := openStore(cfg, log)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(store, token, version, log)
		return srv.ListenAndServe(ctx, cfg.Addr())
	},
}
