// Package archive persists raw request/response pairs from reverse geocoding
// batches as JSON files.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"
)

type mode int

const (
	modeDisabled mode = iota
	modeAuto
	modeExplicit
)

// Policy is the tri-state archiving switch: disabled, auto-named, or an
// explicit base path.
type Policy struct {
	mode mode
	path string
}

// Disabled returns the no-op policy.
func Disabled() Policy { return Policy{} }

// Auto returns a policy that generates a timestamped filename per run.
func Auto() Policy { return Policy{mode: modeAuto} }

// To returns a policy that writes under the given base path.
func To(path string) Policy { return Policy{mode: modeExplicit, path: path} }

// Enabled reports whether archiving should run.
func (p Policy) Enabled() bool { return p.mode != modeDisabled }

// BasePath resolves the run's base path (without extension). Auto mode names
// the run reverse_geocode_<YYYYMMDD_HHMMSS>.
func (p Policy) BasePath(now time.Time) string {
	switch p.mode {
	case modeAuto:
		return "reverse_geocode_" + now.Format("20060102_150405")
	case modeExplicit:
		return strings.TrimSuffix(p.path, ".json")
	default:
		return ""
	}
}

// PathFor returns the file for one row. Multi-row batches get an index
// suffix so rows do not overwrite each other; a single row uses the base
// path as-is.
func PathFor(base string, index, totalRows int) string {
	if totalRows == 1 {
		return base + ".json"
	}
	return fmt.Sprintf("%s_%d.json", base, index)
}

type record struct {
	Request  requestMeta  `json:"request"`
	Response responseMeta `json:"response"`
}

type requestMeta struct {
	URL       string            `json:"url"`
	Params    map[string]string `json:"params"`
	Longitude float64           `json:"longitude"`
	Latitude  float64           `json:"latitude"`
	Timestamp string            `json:"timestamp"`
}

type responseMeta struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Data       json.RawMessage   `json:"data"`
}

// Write persists one exchange to the given path, creating parent directories
// as needed, and returns the written path.
func Write(exchange *models.Exchange, path string) (string, error) {
	doc := record{
		Request: requestMeta{
			URL:       exchange.URL,
			Params:    exchange.Params,
			Longitude: exchange.Longitude,
			Latitude:  exchange.Latitude,
			Timestamp: exchange.Timestamp.Format(time.RFC3339),
		},
		Response: responseMeta{
			StatusCode: exchange.StatusCode,
			Headers:    exchange.Headers,
			Data:       exchange.Body,
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("archive: failed to marshal record: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("archive: failed to create directory for '%s': %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("archive: failed to write '%s': %w", path, err)
	}
	return path, nil
}
