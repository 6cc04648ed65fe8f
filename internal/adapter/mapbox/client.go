package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/quake-risk-report/internal/observability"
)

// Client resolves coordinates to US state codes using the Mapbox Geocoding API.
// It implements domain.StateResolver.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/geocoding/v5/mapbox.places",
		metrics: metrics,
		logger:  logger,
	}
}

// ResolveState reverse geocodes a point and returns the two-letter code of
// the US state containing it. Points outside the US, or offshore with no
// region in the response, return "" and a nil error.
func (c *Client) ResolveState(ctx context.Context, lat, lon float64) (string, error) {
	// Mapbox uses lon,lat order.
	coord := fmt.Sprintf("%.6f,%.6f", lon, lat)
	u := fmt.Sprintf("%s/%s.json", c.baseURL, coord)
	params := url.Values{
		"access_token": {c.token},
		"types":        {"region"},
		"limit":        {"1"},
	}

	start := time.Now()
	state, err := c.doRequest(ctx, u+"?"+params.Encode())
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
	case state == "":
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		c.logger.Debug("no US state at point", "lat", lat, "lon", lon)
	default:
		c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	}
	return state, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	for _, f := range mapboxResp.Features {
		if code := usStateCode(f.Properties.ShortCode); code != "" {
			return code, nil
		}
		for _, ctxEntry := range f.Context {
			if strings.HasPrefix(ctxEntry.ID, "region.") {
				if code := usStateCode(ctxEntry.ShortCode); code != "" {
					return code, nil
				}
			}
		}
	}
	return "", nil
}

// usStateCode turns an ISO 3166-2 code like "US-CA" into "CA".
// Non-US subdivisions return "".
func usStateCode(shortCode string) string {
	code, ok := strings.CutPrefix(strings.ToUpper(shortCode), "US-")
	if !ok || len(code) != 2 {
		return ""
	}
	return code
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string            `json:"id"` // e.g. "region.419048"
	Center     []float64         `json:"center"`
	PlaceName  string            `json:"place_name"`
	Text       string            `json:"text"`
	Properties featureProperties `json:"properties"`
	Context    []contextEntry    `json:"context"`
}

type featureProperties struct {
	ShortCode string `json:"short_code"` // "US-CA" for region features
}

type contextEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	ShortCode string `json:"short_code"`
}
