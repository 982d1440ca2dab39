package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
	"github.com/MatthewDes/EcosolGIS-website/internal/config"
	"github.com/MatthewDes/EcosolGIS-website/internal/feedimport"
)

var (
	flagAddFile string
	flagTags    []string
	flagAsJSON  bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a project to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := localStore()
		if err != nil {
			return err
		}
		defer cleanup()

		rec, err := store.Append(catalog.Candidate{
			Title: args[0],
			File:  flagAddFile,
			Tags:  flagTags,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added %q", rec.Title)
		if len(rec.Tags) > 0 {
			fmt.Printf(" [%s]", strings.Join(rec.Tags, ", "))
		}
		fmt.Println()
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <title>",
	Short: "Remove a project by title (case-insensitive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := localStore()
		if err != nil {
			return err
		}
		defer cleanup()

		rec, err := store.DeleteByTitle(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Removed %q\n", rec.Title)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every project in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := localStore()
		if err != nil {
			return err
		}
		defer cleanup()

		cat, err := store.ListAll()
		if err != nil {
			return err
		}

		if flagAsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cat)
		}

		if len(cat) == 0 {
			fmt.Println("Catalog is empty.")
			return nil
		}
		for _, rec := range cat {
			line := rec.Title
			if len(rec.Tags) > 0 {
				line += "  [" + strings.Join(rec.Tags, ", ") + "]"
			}
			fmt.Println(line)
			fmt.Println("  " + rec.File)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <feed-url>",
	Short: "Import projects from an RSS or Atom feed",
	Long: `Append one record per feed item: the item title becomes the project
title, the link becomes the document URL, and categories become tags.
Items whose titles already exist in the catalog are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := localStore()
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := feedimport.Import(cmd.Context(), store, args[0], flagTags)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d project(s).\n", len(res.Added))
		for _, sk := range res.Skipped {
			fmt.Printf("  [skip] %s: %v\n", sk.Title, sk.Reason)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&flagAddFile, "file", "", "document URL (required)")
	addCmd.Flags().StringSliceVar(&flagTags, "tag", nil, "tag to attach (repeatable)")
	addCmd.MarkFlagRequired("file")

	listCmd.Flags().BoolVar(&flagAsJSON, "json", false, "print the catalog as JSON")

	importCmd.Flags().StringSliceVar(&flagTags, "tag", nil, "extra tag for every imported record (repeatable)")
}

// localStore opens the configured backend for one-shot commands.
func localStore() (catalog.Store, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := openStore(cfg, zap.NewNop())
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return store, func() { store.Close() }, nil
}
