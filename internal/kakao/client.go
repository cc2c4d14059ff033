package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production endpoint of the Kakao local API.
const DefaultBaseURL = "https://dapi.kakao.com/v2/local"

const (
	forwardPath = "/geo/address2coord"
	reversePath = "/geo/coord2address"
)

// Client issues lookups against the Kakao local API. It performs exactly one
// GET per call and never retries; every fault is classified into the
// returned Lookup so a caller iterating a batch is never interrupted.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger for auth diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Kakao client authenticated with the given REST API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode converts an address string into a coordinate document.
func (c *Client) Geocode(ctx context.Context, address string) models.Lookup {
	if strings.TrimSpace(address) == "" {
		return models.Lookup{Err: fmt.Errorf("kakao: empty address")}
	}
	params := url.Values{}
	params.Set("query", address)
	params.Set("size", "1")
	return c.lookup(ctx, c.baseURL+forwardPath, params, 0, 0)
}

// ReverseGeocode converts a WGS84 coordinate pair into address documents.
func (c *Client) ReverseGeocode(ctx context.Context, longitude, latitude float64) models.Lookup {
	params := url.Values{}
	params.Set("x", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("y", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("input_coord", "WGS84")
	return c.lookup(ctx, c.baseURL+reversePath, params, longitude, latitude)
}

func (c *Client) lookup(ctx context.Context, endpoint string, params url.Values, longitude, latitude float64) models.Lookup {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.Lookup{Err: fmt.Errorf("kakao: failed to build request: %w", err)}
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	requestedAt := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return models.Lookup{Err: fmt.Errorf("kakao: request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Lookup{Err: fmt.Errorf("kakao: failed to read response: %w", err)}
	}

	if resp.StatusCode == http.StatusForbidden {
		c.logForbidden(body)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Lookup{Err: fmt.Errorf("kakao: unexpected status %d", resp.StatusCode)}
	}

	var parsed struct {
		Meta      models.Meta       `json:"meta"`
		Documents []models.Document `json:"documents"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.Lookup{Err: fmt.Errorf("kakao: malformed response body: %w", err)}
	}

	exchange := &models.Exchange{
		URL:        endpoint,
		Params:     flattenParams(params),
		Longitude:  longitude,
		Latitude:   latitude,
		Timestamp:  requestedAt,
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       json.RawMessage(body),
	}

	if len(parsed.Documents) == 0 {
		return models.Lookup{Exchange: exchange, Err: models.ErrNoResult}
	}

	// Only the first match is consumed; further candidates are ignored.
	return models.Lookup{Document: &parsed.Documents[0], Exchange: exchange}
}

// logForbidden surfaces the console checklist the Kakao error body implies.
func (c *Client) logForbidden(body []byte) {
	var detail struct {
		Msg  string `json:"msg"`
		Code int    `json:"code"`
	}
	event := c.log.Warn()
	if err := json.Unmarshal(body, &detail); err == nil && detail.Msg != "" {
		event = event.Str("msg", detail.Msg).Int("code", detail.Code)
	}
	event.Msg("kakao rejected the API key; verify the REST key, local API activation and app domain in the developer console")
}

func flattenParams(params url.Values) map[string]string {
	out := make(map[string]string, len(params))
	for k := range params {
		out[k] = params.Get(k)
	}
	return out
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
