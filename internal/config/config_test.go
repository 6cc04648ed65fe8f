package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/quake-risk-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://earthquake.usgs.gov/fdsnws/event/1/query", cfg.APIURL)
	assert.Equal(t, 7, cfg.DaysBack)
	assert.InDelta(t, 2.5, cfg.MinMagnitude, 1e-9)
	assert.Equal(t, 20000, cfg.EventLimit)
	assert.Equal(t, domain.BoundingBox{MinLatitude: 20, MaxLatitude: 72, MinLongitude: -170, MaxLongitude: -65}, cfg.BoundingBox)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"HI", "Hawaii"}, cfg.ExcludedStates)
	assert.Equal(t, domain.DefaultRiskThresholds(), cfg.RiskThresholds)
	assert.False(t, cfg.CanonicalizeStates)
	assert.Equal(t, 5, cfg.PreviewRows)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.PublishEnabled())
	assert.Equal(t, "earthquake-risk-assessments", cfg.KafkaTopic)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}

func TestLoad_MatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("USGS_API_URL", "http://localhost:9999/query")
	t.Setenv("DAYS_BACK", "30")
	t.Setenv("MIN_MAGNITUDE", "4.5")
	t.Setenv("EVENT_LIMIT", "500")
	t.Setenv("BBOX_MIN_LAT", "32")
	t.Setenv("BBOX_MAX_LAT", "42")
	t.Setenv("BBOX_MIN_LON", "-125")
	t.Setenv("BBOX_MAX_LON", "-114")
	t.Setenv("USGS_TIMEOUT", "5s")
	t.Setenv("EXCLUDED_STATES", "HI, Hawaii ,MX,,")
	t.Setenv("CANONICALIZE_STATES", "true")
	t.Setenv("PREVIEW_ROWS", "0")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "quake-risk")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/quake.prom")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/query", cfg.APIURL)
	assert.Equal(t, 30, cfg.DaysBack)
	assert.InDelta(t, 4.5, cfg.MinMagnitude, 1e-9)
	assert.Equal(t, 500, cfg.EventLimit)
	assert.Equal(t, domain.BoundingBox{MinLatitude: 32, MaxLatitude: 42, MinLongitude: -125, MaxLongitude: -114}, cfg.BoundingBox)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"HI", "Hawaii", "MX"}, cfg.ExcludedStates)
	assert.True(t, cfg.CanonicalizeStates)
	assert.Equal(t, 0, cfg.PreviewRows)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.PublishEnabled())
	assert.Equal(t, "quake-risk", cfg.KafkaTopic)
	assert.Equal(t, "/var/lib/node_exporter/quake.prom", cfg.MetricsTextfile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_SingleBroker(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", testBroker)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{testBroker}, cfg.KafkaBrokers)
}

func TestLoad_InvalidDaysBack(t *testing.T) {
	for _, v := range []string{"0", "-3", "week"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("DAYS_BACK", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "DAYS_BACK")
		})
	}
}

func TestLoad_InvalidEventLimit(t *testing.T) {
	t.Setenv("EVENT_LIMIT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EVENT_LIMIT")
}

func TestLoad_InvalidPreviewRows(t *testing.T) {
	t.Setenv("PREVIEW_ROWS", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREVIEW_ROWS")
}

func TestLoad_InvalidMinMagnitude(t *testing.T) {
	t.Setenv("MIN_MAGNITUDE", "big")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_MAGNITUDE")
}

func TestLoad_InvalidBoundingBox(t *testing.T) {
	t.Setenv("BBOX_MIN_LAT", "80")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BBOX_MIN_LAT")
}

func TestLoad_InvalidBoundingBoxLongitude(t *testing.T) {
	t.Setenv("BBOX_MAX_LON", "-170")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BBOX_MIN_LON")
}

func TestLoad_InvalidUSGSTimeout(t *testing.T) {
	t.Setenv("USGS_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USGS_TIMEOUT")
}

func TestLoad_NegativeUSGSTimeout(t *testing.T) {
	t.Setenv("USGS_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USGS_TIMEOUT")
}

func TestLoad_InvalidCanonicalizeStates(t *testing.T) {
	t.Setenv("CANONICALIZE_STATES", "sometimes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CANONICALIZE_STATES")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_MapboxTokenEnables(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("MAPBOX_TIMEOUT", "2s")
	t.Setenv("MAPBOX_CACHE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, "pk.test", cfg.MapboxToken)
	assert.Equal(t, 2*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 50, cfg.MapboxCacheSize)
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("MAPBOX_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
}

func TestLoad_InvalidMapboxCacheSizeFallsBack(t *testing.T) {
	for _, v := range []string{"0", "-5", "lots"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("MAPBOX_CACHE_SIZE", v)
			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, 1000, cfg.MapboxCacheSize)
		})
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.ExcludedStates[0] = "CA"
	b := Default()
	assert.Equal(t, "HI", b.ExcludedStates[0])
	assert.Equal(t, "HI", domain.DefaultExcludedStates[0])
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"HI", "Hawaii"}, splitList("HI,Hawaii"))
	assert.Equal(t, []string{"a b"}, splitList(" a b ,"))
	assert.Nil(t, splitList(""))
}
