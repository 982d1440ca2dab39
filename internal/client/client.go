// Package client fetches a catalog snapshot from a running archive
// server. All accepted payload shapes are normalized here, so the view
// only ever sees a plain record sequence.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
)

const fetchTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch retrieves the full catalog from GET /api/projects. The payload
// may be the API envelope, a {projects: [...]} wrapper, or a bare
// record array.
func (c *Client) Fetch(ctx context.Context) (catalog.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/projects", nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching catalog: server returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog response: %w", err)
	}
	return Normalize(body)
}

// Normalize parses any of the accepted catalog payload shapes into one
// canonical record sequence.
func Normalize(data []byte) (catalog.Catalog, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return catalog.Catalog{}, nil
	}

	if trimmed[0] == '[' {
		var cat catalog.Catalog
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}
		return cat, nil
	}

	var wrapped struct {
		Projects catalog.Catalog `json:"projects"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if wrapped.Projects == nil {
		wrapped.Projects = catalog.Catalog{}
	}
	return wrapped.Projects, nil
}
