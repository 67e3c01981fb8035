// Package skumap resolves the user's free-text model selection. The selected
// labels may live in a remote gist so the watch list can change without a
// redeploy; the label-to-SKU mapping itself comes from configuration.
package skumap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"storewatch/pkg/logger"

	"go.uber.org/zap"
)

const (
	modelsFileName = "models.json"
	defaultTimeout = 15 * time.Second
)

var (
	ErrGistUnavailable = errors.New("skumap: gist fetch failed")
	ErrGistFormat      = errors.New("skumap: unexpected gist document format")
)

// Client fetches the selected model labels from a remote gist document
type Client struct {
	httpClient *http.Client
	gistURL    string
}

// NewClient creates a gist client. An empty URL makes FetchSelectedLabels
// return nothing without a network call.
func NewClient(gistURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		gistURL:    gistURL,
	}
}

// WithHTTPClient replaces the underlying HTTP client (used by tests)
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

type gistResponse struct {
	Files map[string]gistFile `json:"files"`
}

type gistFile struct {
	Content string `json:"content"`
}

type modelsDocument struct {
	Models []string `json:"models"`
}

// FetchSelectedLabels pulls the models document from the gist and returns the
// selected labels. Callers treat a failure as "no remote selection" and fall
// back to the configured labels.
func (c *Client) FetchSelectedLabels(ctx context.Context) ([]string, error) {
	if c.gistURL == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.gistURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGistUnavailable, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGistUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrGistUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGistUnavailable, err)
	}

	var gist gistResponse
	if err := json.Unmarshal(body, &gist); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGistFormat, err)
	}

	file, ok := gist.Files[modelsFileName]
	if !ok {
		return nil, fmt.Errorf("%w: %s missing", ErrGistFormat, modelsFileName)
	}

	var doc modelsDocument
	if err := json.Unmarshal([]byte(file.Content), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGistFormat, err)
	}

	logger.Debug("Fetched remote model selection", zap.Int("labels", len(doc.Models)))
	return doc.Models, nil
}
