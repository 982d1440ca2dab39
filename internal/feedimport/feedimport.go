// Package feedimport appends catalog records from an RSS or Atom feed:
// item title becomes the record title, the item link becomes the
// document URL, and feed categories become tags.
package feedimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

// Skipped describes a feed item the import left out and why.
type Skipped struct {
	Title  string
	Reason error
}

type Result struct {
	Added   []catalog.ProjectRecord
	Skipped []Skipped
}

// Import fetches the feed and appends each item to the store.
// Duplicate titles and invalid items are collected in the result, not
// fatal; a storage failure aborts the import.
func Import(ctx context.Context, store catalog.Store, feedURL string, extraTags []string) (Result, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetching feed %s: %w", feedURL, err)
	}

	var res Result
	for _, c := range Candidates(feed, extraTags) {
		rec, err := store.Append(c)
		switch {
		case err == nil:
			res.Added = append(res.Added, rec)
		case errors.Is(err, catalog.ErrDuplicateTitle), errors.Is(err, catalog.ErrValidation):
			res.Skipped = append(res.Skipped, Skipped{Title: c.Title, Reason: err})
		default:
			return res, fmt.Errorf("importing %q: %w", c.Title, err)
		}
	}
	return res, nil
}

// Candidates maps feed items onto append candidates. Items without a
// link are dropped here; everything else is left to store validation.
func Candidates(feed *gofeed.Feed, extraTags []string) []catalog.Candidate {
	out := make([]catalog.Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		tags := make([]string, 0, len(item.Categories)+len(extraTags))
		tags = append(tags, item.Categories...)
		tags = append(tags, extraTags...)
		out = append(out, catalog.Candidate{
			Title: item.Title,
			File:  item.Link,
			Tags:  tags,
		})
	}
	return out
}
