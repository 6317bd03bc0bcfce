package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearby-places/pkg/geo"
	"nearby-places/pkg/mapview"
	"nearby-places/pkg/places"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "GOOGLE_MAPS_API_KEY")
	unsetEnv(t, "PLACESMAP_PLACES_API_KEY")
	m := NewManager(filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := m.Load("")
	require.NoError(t, err)

	assert.Equal(t, places.NearbySearchURL, cfg.Places.BaseURL)
	assert.Equal(t, places.TransportNetHTTP, cfg.Places.Transport)
	assert.Equal(t, 10*time.Second, cfg.Places.Connection.DialTimeout)
	assert.Equal(t, places.SearchQuery{
		Latitude:     18.55,
		Longitude:    73.94,
		RadiusMeters: 10000,
		PlaceType:    "Hospitality",
	}, cfg.SearchQuery())
	assert.Equal(t, mapview.DefaultCamera(), cfg.MapCamera())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Same(t, cfg, m.GetConfig())
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	unsetEnv(t, "GOOGLE_MAPS_API_KEY")
	unsetEnv(t, "PLACESMAP_PLACES_API_KEY")
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
places:
  api_key: from-yaml
  transport: fasthttp
  connection:
    request_timeout: 5s
search:
  latitude: -23.55
  longitude: -46.63
  radius_meters: 1500
  place_type: restaurant
  language: pt-BR
camera:
  latitude: -23.5
  longitude: -46.6
  zoom: 12
server:
  port: 9090
`)
	t.Setenv("PLACESMAP_SEARCH_RADIUS_METERS", "2500")

	cfg, err := NewManager(filepath.Join(dir, "none.env")).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-yaml", cfg.Places.APIKey)
	assert.Equal(t, places.TransportFastHTTP, cfg.Places.Transport)
	assert.Equal(t, 5*time.Second, cfg.Places.Connection.RequestTimeout)
	assert.Equal(t, 2500, cfg.Search.RadiusMeters)
	assert.Equal(t, "restaurant", cfg.Search.PlaceType)
	assert.Equal(t, "pt-BR", cfg.SearchQuery().Language)
	assert.Equal(t, mapview.Camera{Center: geo.LatLng{Lat: -23.5, Lng: -46.6}, Zoom: 12}, cfg.MapCamera())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, places.TransportFastHTTP, cfg.ClientConfig().Transport)
}

func TestLoad_APIKeyFromDotEnv(t *testing.T) {
	unsetEnv(t, "GOOGLE_MAPS_API_KEY")
	unsetEnv(t, "PLACESMAP_PLACES_API_KEY")
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "GOOGLE_MAPS_API_KEY=from-dotenv\n")

	cfg, err := NewManager(envFile).Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Places.APIKey)
	assert.Equal(t, "from-dotenv", cfg.SearchQuery().APIKey)
}

func TestLoad_PrefixedKeyWins(t *testing.T) {
	t.Setenv("PLACESMAP_PLACES_API_KEY", "prefixed")
	t.Setenv("GOOGLE_MAPS_API_KEY", "conventional")

	cfg, err := NewManager(filepath.Join(t.TempDir(), "none.env")).Load("")
	require.NoError(t, err)

	assert.Equal(t, "prefixed", cfg.Places.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"latitude", "search:\n  latitude: 123\n"},
		{"radius", "search:\n  radius_meters: 0\n"},
		{"place type", "search:\n  place_type: \"\"\n"},
		{"zoom", "camera:\n  zoom: 40\n"},
		{"transport", "places:\n  transport: smoke-signals\n"},
		{"port", "server:\n  port: 70000\n"},
		{"render", "render:\n  width: 0\n"},
		{"language", "search:\n  language: \"!!\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "config.yaml", tt.yaml)

			_, err := NewManager(filepath.Join(dir, "none.env")).Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewManager(filepath.Join(dir, "none.env")).Load(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "none.env"))
	assert.Error(t, m.Reload())

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "search:\n  place_type: cafe\n")
	_, err := m.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cafe", m.GetConfig().Search.PlaceType)

	writeFile(t, dir, "config.yaml", "search:\n  place_type: bar\n")
	require.NoError(t, m.Reload())
	assert.Equal(t, "bar", m.GetConfig().Search.PlaceType)
}
