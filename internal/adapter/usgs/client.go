package usgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-risk-report/internal/config"
	"github.com/couchcryptid/quake-risk-report/internal/domain"
	"github.com/couchcryptid/quake-risk-report/internal/observability"
	"github.com/jonboulle/clockwork"
)

// dateLayout is the day-granularity form accepted by starttime/endtime.
const dateLayout = "2006-01-02"

// maxErrorBody caps how much of a failed response is kept in HTTPStatusError.
const maxErrorBody = 512

// Client fetches earthquake events from the USGS FDSN event service.
// It implements pipeline.Fetcher.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	minMagnitude float64
	limit        int
	box          domain.BoundingBox
	clock        clockwork.Clock
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewClient creates a USGS client for the configured query scope.
func NewClient(cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		baseURL:      cfg.APIURL,
		minMagnitude: cfg.MinMagnitude,
		limit:        cfg.EventLimit,
		box:          cfg.BoundingBox,
		clock:        clock,
		metrics:      metrics,
		logger:       logger,
	}
}

// Window returns the UTC interval a fetch of daysBack days covers, read
// from the clock once.
func (c *Client) Window(daysBack int) domain.Window {
	return domain.LookbackWindow(c.clock.Now(), daysBack)
}

// Fetch returns every event reported in the last daysBack days within the
// bounding box and above the minimum magnitude. No state filtering is
// applied here. An empty feed yields an empty slice.
func (c *Client) Fetch(ctx context.Context, daysBack int) ([]domain.EventRecord, error) {
	if daysBack <= 0 {
		return nil, fmt.Errorf("days back must be positive, got %d", daysBack)
	}
	return c.FetchWindow(ctx, c.Window(daysBack))
}

// FetchWindow is Fetch for a window the caller already computed, so the
// dates it reports match the starttime/endtime sent.
func (c *Client) FetchWindow(ctx context.Context, w domain.Window) ([]domain.EventRecord, error) {
	if !w.End.After(w.Start) {
		return nil, fmt.Errorf("invalid fetch window: end %s is not after start %s", w.End, w.Start)
	}

	start, end := w.Start.UTC(), w.End.UTC()
	u := c.baseURL + "?" + c.query(start, end).Encode()

	began := time.Now()
	records, err := c.doRequest(ctx, u)
	c.metrics.FetchDuration.Observe(time.Since(began).Seconds())
	if err != nil {
		c.metrics.FetchErrors.WithLabelValues(errorKind(err)).Inc()
		return nil, err
	}

	c.metrics.EventsFetched.Add(float64(len(records)))
	c.logger.Debug("usgs fetch complete",
		"start", start.Format(dateLayout),
		"end", end.Format(dateLayout),
		"events", len(records),
	)
	return records, nil
}

func (c *Client) query(start, end time.Time) url.Values {
	return url.Values{
		"format":       {"geojson"},
		"starttime":    {start.Format(dateLayout)},
		"endtime":      {end.Format(dateLayout)},
		"minlatitude":  {formatFloat(c.box.MinLatitude)},
		"maxlatitude":  {formatFloat(c.box.MaxLatitude)},
		"minlongitude": {formatFloat(c.box.MinLongitude)},
		"maxlongitude": {formatFloat(c.box.MaxLongitude)},
		"limit":        {strconv.Itoa(c.limit)},
		"minmagnitude": {formatFloat(c.minMagnitude)},
	}
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]domain.EventRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Op: "usgs event query", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.HTTPStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &domain.NetworkError{Op: "read usgs response", Err: err}
		}
		return nil, &domain.ParseError{Reason: "decode GeoJSON", Err: err}
	}

	return parseFeatures(fc)
}

// parseFeatures converts GeoJSON features into event records, deriving
// each record's state from its place text.
func parseFeatures(fc featureCollection) ([]domain.EventRecord, error) {
	if fc.Features == nil {
		return nil, &domain.ParseError{Reason: "missing features array"}
	}

	records := make([]domain.EventRecord, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Properties.Time == nil {
			return nil, &domain.ParseError{Reason: fmt.Sprintf("feature %d (%s): missing properties.time", i, f.ID)}
		}
		if f.Geometry == nil || len(f.Geometry.Coordinates) < 2 {
			return nil, &domain.ParseError{Reason: fmt.Sprintf("feature %d (%s): missing geometry coordinates", i, f.ID)}
		}

		var place string
		if f.Properties.Place != nil {
			place = *f.Properties.Place
		}

		records = append(records, domain.EventRecord{
			Time:      time.UnixMilli(*f.Properties.Time).UTC(),
			Place:     place,
			Magnitude: f.Properties.Mag,
			Longitude: f.Geometry.Coordinates[0],
			Latitude:  f.Geometry.Coordinates[1],
			State:     domain.ExtractState(place),
		})
	}
	return records, nil
}

func errorKind(err error) string {
	var netErr *domain.NetworkError
	var statusErr *domain.HTTPStatusError
	var parseErr *domain.ParseError
	switch {
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "other"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// USGS GeoJSON response types.

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   *geometry  `json:"geometry"`
}

type properties struct {
	Time  *int64   `json:"time"`  // epoch milliseconds
	Place *string  `json:"place"` // null for some offshore events
	Mag   *float64 `json:"mag"`
}

type geometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}
