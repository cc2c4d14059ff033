package naver

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

// DefaultBaseURL is the NCP maps API gateway.
const DefaultBaseURL = "https://maps.apigw.ntruss.com"

// Client issues lookups against the Naver (NCP) maps API and normalizes the
// responses into the same document shape the Kakao client produces. Fields
// the gateway does not return (zone number, building numbers, administrative
// codes) stay empty strings.
type Client struct {
	baseURL  string
	apiKeyID string
	apiKey   string
	http     *http.Client
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the gateway endpoint, mainly for tests.
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

// NewClient creates a Naver client authenticated with the NCP key pair.
func NewClient(apiKeyID, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		apiKeyID: apiKeyID,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type forwardResponse struct {
	Addresses []struct {
		X            string `json:"x"`
		Y            string `json:"y"`
		RoadAddress  string `json:"roadAddress"`
		JibunAddress string `json:"jibunAddress"`
	} `json:"addresses"`
}

type reverseResponse struct {
	Results []reverseResult `json:"results"`
}

type reverseResult struct {
	Name   string `json:"name"`
	Region struct {
		Area1 namedArea `json:"area1"`
		Area2 namedArea `json:"area2"`
		Area3 namedArea `json:"area3"`
		Area4 namedArea `json:"area4"`
	} `json:"region"`
	Land struct {
		Name      string `json:"name"`
		Number1   string `json:"number1"`
		Number2   string `json:"number2"`
		Addition0 struct {
			Value string `json:"value"`
		} `json:"addition0"`
	} `json:"land"`
}

type namedArea struct {
	Name string `json:"name"`
}

// Geocode converts an address string into a coordinate document.
func (c *Client) Geocode(ctx context.Context, address string) models.Lookup {
	if strings.TrimSpace(address) == "" {
		return models.Lookup{Err: fmt.Errorf("naver: empty address")}
	}
	params := url.Values{}
	params.Set("query", address)

	body, exchange, err := c.get(ctx, c.baseURL+"/map-geocode/v2/geocode", params, 0, 0)
	if err != nil {
		return models.Lookup{Err: err}
	}

	var parsed forwardResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.Lookup{Err: fmt.Errorf("naver: malformed response body: %w", err)}
	}
	if len(parsed.Addresses) == 0 {
		return models.Lookup{Exchange: exchange, Err: models.ErrNoResult}
	}

	// First candidate only, matching the Kakao client's policy.
	first := parsed.Addresses[0]
	doc := &models.Document{
		X:           first.X,
		Y:           first.Y,
		RoadAddress: &models.RoadAddress{AddressName: first.RoadAddress},
		Address:     &models.LotAddress{AddressName: first.JibunAddress},
	}
	return models.Lookup{Document: doc, Exchange: exchange}
}

// ReverseGeocode converts a coordinate pair into address documents.
func (c *Client) ReverseGeocode(ctx context.Context, longitude, latitude float64) models.Lookup {
	params := url.Values{}
	params.Set("coords", strconv.FormatFloat(longitude, 'f', -1, 64)+","+strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("output", "json")
	params.Set("orders", "roadaddr,addr")

	body, exchange, err := c.get(ctx, c.baseURL+"/map-reversegeocode/v2/gc", params, longitude, latitude)
	if err != nil {
		return models.Lookup{Err: err}
	}

	var parsed reverseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return models.Lookup{Err: fmt.Errorf("naver: malformed response body: %w", err)}
	}
	if len(parsed.Results) == 0 {
		return models.Lookup{Exchange: exchange, Err: models.ErrNoResult}
	}

	road := pickResult(parsed.Results, "roadaddr")
	lot := pickResult(parsed.Results, "addr")
	base := road
	if base == nil {
		base = lot
	}
	if base == nil {
		base = &parsed.Results[0]
	}

	doc := &models.Document{
		RoadAddress: &models.RoadAddress{
			Region1DepthName: base.Region.Area1.Name,
			Region2DepthName: base.Region.Area2.Name,
			Region3DepthName: base.Region.Area3.Name,
		},
		Address: &models.LotAddress{
			Region1DepthName: base.Region.Area1.Name,
			Region2DepthName: base.Region.Area2.Name,
			Region3DepthName: base.Region.Area3.Name,
		},
	}
	if road != nil {
		doc.RoadAddress.AddressName = assembleAddress(road)
		doc.RoadAddress.RoadName = strings.TrimSpace(road.Land.Name)
		doc.RoadAddress.BuildingName = strings.TrimSpace(road.Land.Addition0.Value)
	}
	if lot != nil {
		doc.Address.AddressName = assembleAddress(lot)
	}
	return models.Lookup{Document: doc, Exchange: exchange}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, longitude, latitude float64) ([]byte, *models.Exchange, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("naver: failed to build request: %w", err)
	}
	// Lowercase header names match the NCP gateway's documented examples.
	req.Header.Set("x-ncp-apigw-api-key-id", c.apiKeyID)
	req.Header.Set("x-ncp-apigw-api-key", c.apiKey)
	req.Header.Set("accept", "application/json")

	requestedAt := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("naver: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("naver: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("naver rejected the key pair; verify the Maps product activation and the gateway key pair in the NCP console")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("naver: unexpected status %d", resp.StatusCode)
	}

	params2 := make(map[string]string, len(params))
	for k := range params {
		params2[k] = params.Get(k)
	}
	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}
	exchange := &models.Exchange{
		URL:        endpoint,
		Params:     params2,
		Longitude:  longitude,
		Latitude:   latitude,
		Timestamp:  requestedAt,
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       json.RawMessage(body),
	}
	return body, exchange, nil
}

func pickResult(results []reverseResult, name string) *reverseResult {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// assembleAddress joins region and land parts when the gateway omits a
// preformatted address string.
func assembleAddress(r *reverseResult) string {
	parts := make([]string, 0, 6)
	for _, p := range []string{r.Region.Area1.Name, r.Region.Area2.Name, r.Region.Area3.Name, r.Region.Area4.Name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if name := strings.TrimSpace(r.Land.Name); name != "" {
		parts = append(parts, name)
	}
	if n1 := strings.TrimSpace(r.Land.Number1); n1 != "" {
		if n2 := strings.TrimSpace(r.Land.Number2); n2 != "" {
			parts = append(parts, n1+"-"+n2)
		} else {
			parts = append(parts, n1)
		}
	}
	return strings.Join(parts, " ")
}
