package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MatthewDes/EcosolGIS-website/internal/config"
	"github.com/MatthewDes/EcosolGIS-website/internal/store/jsonfile"
)

var flagPruneOlderThan string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err := openStore(cfg, zap.NewNop())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		cat, err := store.ListAll()
		if err != nil {
			return fmt.Errorf("reading catalog: %w", err)
		}

		path := cfg.StorePath()
		fmt.Printf("Catalog: %s (%s)\n", path, cfg.Storage)
		fmt.Printf("Projects: %d\n", len(cat))

		if info, err := os.Stat(path); err == nil {
			fmt.Printf("Size: %s\n", formatBytes(info.Size()))
		}

		backups, _ := filepath.Glob(jsonfile.BackupGlob(path))
		if len(backups) > 0 {
			fmt.Printf("Backups: %d\n", len(backups))
		}
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old catalog backups",
	Long: `Delete timestamped backup copies of the catalog older than the retention
period and reclaim disk space.

Uses the backup_retention value from config (default: 30d) unless
overridden with --older-than.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		retention := cfg.RetentionDuration()
		if flagPruneOlderThan != "" {
			d, err := parseDays(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := pruneBackups(cfg.StorePath(), retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d backup(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

func init() {
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
}

// pruneBackups deletes backup siblings of the catalog whose
// modification time is past the retention window.
func pruneBackups(storePath string, retention time.Duration) (int, error) {
	backups, err := filepath.Glob(jsonfile.BackupGlob(storePath))
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0
	for _, path := range backups {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

// parseDays accepts "Nd" day syntax on top of time.ParseDuration.
func parseDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
