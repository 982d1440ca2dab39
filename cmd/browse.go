package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
	"github.com/MatthewDes/EcosolGIS-website/internal/client"
	"github.com/MatthewDes/EcosolGIS-website/internal/config"
	"github.com/MatthewDes/EcosolGIS-website/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog in the terminal",
	Long:  "Open the two-pane catalog browser: search by title or tag, toggle tag filters, open documents.",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&flagRemote, "remote", "", "browse a running archive server instead of the local store")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if flagRemote != "" {
		remote := client.New(flagRemote)
		return tui.Run(tui.RunOpts{
			Load:   remote.Fetch,
			Source: flagRemote,
		})
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg, zap.NewNop())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	return tui.Run(tui.RunOpts{
		Load: func(context.Context) (catalog.Catalog, error) {
			return store.ListAll()
		},
		Source: cfg.StorePath(),
	})
}
