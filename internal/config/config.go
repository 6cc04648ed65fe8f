package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/quake-risk-report/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const defaultAPIURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"

// Config holds all run settings, populated from environment variables.
// It is built once at startup and passed by pointer; nothing mutates it.
type Config struct {
	// USGS query.
	APIURL       string
	DaysBack     int
	MinMagnitude float64
	EventLimit   int
	BoundingBox  domain.BoundingBox
	HTTPTimeout  time.Duration

	// Filtering and classification.
	ExcludedStates     []string
	RiskThresholds     domain.RiskThresholds
	CanonicalizeStates bool

	// Mapbox state resolution for events whose place has no state.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Output.
	PreviewRows     int
	KafkaBrokers    []string
	KafkaTopic      string
	MetricsTextfile string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Default returns the settings used when no environment overrides are set:
// a 7-day window over the continental US and Alaska, M2.5 and up, Hawaii excluded.
func Default() *Config {
	return &Config{
		APIURL:       defaultAPIURL,
		DaysBack:     7,
		MinMagnitude: 2.5,
		EventLimit:   20000,
		BoundingBox: domain.BoundingBox{
			MinLatitude:  20,
			MaxLatitude:  72,
			MinLongitude: -170,
			MaxLongitude: -65,
		},
		HTTPTimeout:     30 * time.Second,
		ExcludedStates:  append([]string(nil), domain.DefaultExcludedStates...),
		RiskThresholds:  domain.DefaultRiskThresholds(),
		MapboxTimeout:   5 * time.Second,
		MapboxCacheSize: 1000,
		PreviewRows:     5,
		KafkaTopic:      "earthquake-risk-assessments",
		LogLevel:        "info",
		LogFormat:       "json",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	def := Default()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	daysBack, err := envPositiveInt("DAYS_BACK", def.DaysBack)
	if err != nil {
		return nil, err
	}
	eventLimit, err := envPositiveInt("EVENT_LIMIT", def.EventLimit)
	if err != nil {
		return nil, err
	}
	previewRows, err := envNonNegativeInt("PREVIEW_ROWS", def.PreviewRows)
	if err != nil {
		return nil, err
	}

	minMagnitude, err := envFloat("MIN_MAGNITUDE", def.MinMagnitude)
	if err != nil {
		return nil, err
	}
	box, err := loadBoundingBox(def.BoundingBox)
	if err != nil {
		return nil, err
	}

	httpTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("USGS_TIMEOUT", def.HTTPTimeout.String()))
	if err != nil || httpTimeout <= 0 {
		return nil, errors.New("invalid USGS_TIMEOUT")
	}

	canonicalize, err := strconv.ParseBool(sharedcfg.EnvOrDefault("CANONICALIZE_STATES", "false"))
	if err != nil {
		return nil, errors.New("invalid CANONICALIZE_STATES")
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", def.MapboxTimeout.String()))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	var brokers []string
	if raw := strings.TrimSpace(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}

	cfg := &Config{
		APIURL:             sharedcfg.EnvOrDefault("USGS_API_URL", def.APIURL),
		DaysBack:           daysBack,
		MinMagnitude:       minMagnitude,
		EventLimit:         eventLimit,
		BoundingBox:        box,
		HTTPTimeout:        httpTimeout,
		ExcludedStates:     splitList(sharedcfg.EnvOrDefault("EXCLUDED_STATES", strings.Join(def.ExcludedStates, ","))),
		RiskThresholds:     def.RiskThresholds,
		CanonicalizeStates: canonicalize,
		MapboxToken:        mapboxToken,
		MapboxEnabled:      mapboxEnabled,
		MapboxTimeout:      mapboxTimeout,
		MapboxCacheSize:    parseMapboxCacheSize(def.MapboxCacheSize),
		PreviewRows:        previewRows,
		KafkaBrokers:       brokers,
		KafkaTopic:         sharedcfg.EnvOrDefault("KAFKA_TOPIC", def.KafkaTopic),
		MetricsTextfile:    sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", def.LogLevel),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", def.LogFormat),
		ShutdownTimeout:    shutdownTimeout,
	}

	if cfg.APIURL == "" {
		return nil, errors.New("USGS_API_URL is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// PublishEnabled reports whether assessments should be sent to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseMapboxCacheSize(def int) int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func loadBoundingBox(def domain.BoundingBox) (domain.BoundingBox, error) {
	var box domain.BoundingBox
	var err error
	if box.MinLatitude, err = envFloat("BBOX_MIN_LAT", def.MinLatitude); err != nil {
		return box, err
	}
	if box.MaxLatitude, err = envFloat("BBOX_MAX_LAT", def.MaxLatitude); err != nil {
		return box, err
	}
	if box.MinLongitude, err = envFloat("BBOX_MIN_LON", def.MinLongitude); err != nil {
		return box, err
	}
	if box.MaxLongitude, err = envFloat("BBOX_MAX_LON", def.MaxLongitude); err != nil {
		return box, err
	}

	if box.MinLatitude < -90 || box.MaxLatitude > 90 || box.MinLatitude >= box.MaxLatitude {
		return box, errors.New("invalid bounding box: BBOX_MIN_LAT must be below BBOX_MAX_LAT within [-90, 90]")
	}
	if box.MinLongitude < -360 || box.MaxLongitude > 360 || box.MinLongitude >= box.MaxLongitude {
		return box, errors.New("invalid bounding box: BBOX_MIN_LON must be below BBOX_MAX_LON within [-360, 360]")
	}
	return box, nil
}

func envPositiveInt(key string, def int) (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault(key, strconv.Itoa(def)))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func envNonNegativeInt(key string, def int) (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault(key, strconv.Itoa(def)))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative integer", key)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(key, strconv.FormatFloat(def, 'f', -1, 64)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

// splitList parses a comma-separated list, dropping empty entries.
// Entries are trimmed but otherwise kept as written; state matching is case-sensitive.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
