// Package dex downloads Pokemon Showdown data files and exports semantic
// embeddings of their short descriptions. The encoder itself is external;
// this package fetches, converts, and saves.
package dex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultDataURL serves the abilities/items/moves data files.
const DefaultDataURL = "https://play.pokemonshowdown.com/data"

// Encoder turns description texts into fixed-size vectors. Implementations
// typically call out to an embeddings service.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}

// Exporter downloads one data file, extracts per-entry short descriptions,
// encodes them, and writes the name-to-vector mapping as JSON.
type Exporter struct {
	httpClient *http.Client
	encoder    Encoder
	dataURL    string
	outDir     string
}

// ExporterConfig holds the settings for an Exporter.
type ExporterConfig struct {
	HTTPClient *http.Client
	Encoder    Encoder
	DataURL    string
	OutDir     string
}

// NewExporter creates an Exporter with defaults for unset fields.
func NewExporter(cfg ExporterConfig) (*Exporter, error) {
	if cfg.Encoder == nil {
		return nil, fmt.Errorf("encoder is required")
	}
	if cfg.DataURL == "" {
		cfg.DataURL = DefaultDataURL
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "data"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Exporter{
		httpClient: cfg.HTTPClient,
		encoder:    cfg.Encoder,
		dataURL:    strings.TrimSuffix(cfg.DataURL, "/"),
		outDir:     cfg.OutDir,
	}, nil
}

var bareKeyRe = regexp.MustCompile(`([{,]\s*)([a-zA-Z0-9_$]+)\s*(:)`)

// Export processes one data file (e.g. "abilities.js"). Extras are merged in
// before the downloaded entries, so a downloaded entry wins on key conflict.
func (e *Exporter) Export(ctx context.Context, file string, extras map[string]string) error {
	body, err := e.fetch(ctx, file)
	if err != nil {
		return err
	}

	jsonText := body
	outFile := file
	if !strings.Contains(file, ".json") {
		jsonText, err = jsToJSON(body)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", file, err)
		}
		outFile = file + "on"
	}

	var entries map[string]map[string]any
	if err := json.Unmarshal([]byte(jsonText), &entries); err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}

	names, descs := collectDescriptions(entries, extras)
	if len(names) == 0 {
		return fmt.Errorf("no short descriptions found in %s", file)
	}

	vectors, err := e.encoder.Encode(ctx, descs)
	if err != nil {
		return fmt.Errorf("failed to encode %s descriptions: %w", file, err)
	}
	if len(vectors) != len(names) {
		return fmt.Errorf("encoder returned %d vectors for %d texts", len(vectors), len(names))
	}

	out := make(map[string][]float64, len(names))
	for i, name := range names {
		out[name] = vectors[i]
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal embeddings: %w", err)
	}
	if err := os.MkdirAll(e.outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(e.outDir, outFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) fetch(ctx context.Context, file string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.dataURL+"/"+file, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", file, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned status %d", file, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(body), nil
}

// jsToJSON converts an "exports.X = {...};" JS data file into parseable JSON
// by taking the object literal and quoting its bare keys.
func jsToJSON(js string) (string, error) {
	start := strings.Index(js, "{")
	if start < 0 {
		return "", fmt.Errorf("no object literal found")
	}
	literal := strings.TrimSpace(js[start:])
	literal = strings.TrimSuffix(literal, ";")
	return bareKeyRe.ReplaceAllString(literal, `$1"$2"$3`), nil
}

// collectDescriptions merges extras under the downloaded entries and returns
// parallel name/description slices in deterministic order.
func collectDescriptions(entries map[string]map[string]any, extras map[string]string) ([]string, []string) {
	merged := make(map[string]string, len(entries)+len(extras))
	for name, desc := range extras {
		merged[name] = desc
	}
	for name, entry := range entries {
		if desc, ok := entry["shortDesc"].(string); ok {
			merged[name] = desc
		}
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	descs := make([]string, len(names))
	for i, name := range names {
		descs[i] = merged[name]
	}
	return names, descs
}

// HTTPEncoder calls an embeddings endpoint that accepts {"inputs": [...]}
// and answers with a JSON array of vectors.
type HTTPEncoder struct {
	httpClient *http.Client
	url        string
}

// NewHTTPEncoder creates an encoder that POSTs to url.
func NewHTTPEncoder(url string, httpClient *http.Client) *HTTPEncoder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &HTTPEncoder{httpClient: httpClient, url: url}
}

// Encode implements Encoder.
func (e *HTTPEncoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	payload, err := json.Marshal(map[string]any{"inputs": texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call encoder: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("encoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var vectors [][]float64
	if err := json.NewDecoder(resp.Body).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("failed to decode encoder response: %w", err)
	}
	return vectors, nil
}
