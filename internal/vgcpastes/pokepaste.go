package vgcpastes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vgcbench/teamscrape/internal/common"
	"github.com/vgcbench/teamscrape/internal/normalize"
)

// PasteURLPrefix is the only paste host the spreadsheet links; rows pointing
// anywhere else are skipped by the orchestrator.
const PasteURLPrefix = "https://pokepast.es/"

// PasteClient fetches raw team text from pokepast.es.
type PasteClient struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// PasteConfig holds the settings for the paste client.
type PasteConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
}

// NewPasteClient creates a paste client with defaults for unset fields.
func NewPasteClient(cfg PasteConfig) *PasteClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = strings.TrimSuffix(PasteURLPrefix, "/")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &PasteClient{
		httpClient: cfg.HTTPClient,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
	}
}

// RawTeam resolves a paste URL to normalized team text via the raw-text
// endpoint. Transport failures propagate; there is no retry at this layer.
func (c *PasteClient) RawTeam(ctx context.Context, pasteURL string) (string, error) {
	pasteID := PasteID(pasteURL)
	if pasteID == "" {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidPasteURL, pasteURL)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rawURL := fmt.Sprintf("%s/%s/raw", c.baseURL, pasteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch paste %s: %w", pasteID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paste %s returned status %d", pasteID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read paste %s: %w", pasteID, err)
	}

	return normalize.TeamText(string(body)), nil
}

// PasteID extracts the trailing path segment of a paste URL.
func PasteID(pasteURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(pasteURL), "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	return segments[len(segments)-1]
}
