package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
	"github.com/MatthewDes/EcosolGIS-website/internal/config"
	"github.com/MatthewDes/EcosolGIS-website/internal/store/jsonfile"
	"github.com/MatthewDes/EcosolGIS-website/internal/store/sqlite"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagRemote string
)

var rootCmd = &cobra.Command{
	Use:   "ecosolgis",
	Short: "Project document archive",
	Long:  "ecosolgis keeps a tagged catalog of published project documents: browse and filter it in the terminal, or serve the admin API for the website.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagRemote, "remote", "", "browse a running archive server instead of the local store")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ecosolgis %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// openStore builds the configured catalog backend.
func openStore(cfg *config.Config, log *zap.Logger) (catalog.Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return sqlite.Open(cfg.StorePath())
	default:
		return jsonfile.Open(cfg.StorePath(), log)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
