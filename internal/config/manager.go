package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"nearby-places/pkg/mapview"
	"nearby-places/pkg/places"
)

const EnvPrefix = "PLACESMAP"

type manager struct {
	mu         sync.RWMutex
	config     *Config
	viper      *viper.Viper
	configPath string
	envFiles   []string
}

func NewManager(envFiles ...string) Manager {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	return &manager{envFiles: envFiles}
}

// Load reads configPath (optional) on top of defaults, .env files and the
// PLACESMAP_* environment.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := loadEnvFiles(m.envFiles); err != nil {
		return nil, err
	}

	m.configPath = configPath
	m.viper = newViper(configPath)

	config, err := m.read()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.viper == nil {
		return fmt.Errorf("config not loaded")
	}

	config, err := m.read()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) read() (*Config, error) {
	if m.configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The key is also accepted under its conventional name.
	_ = v.BindEnv("places.api_key", EnvPrefix+"_PLACES_API_KEY", "GOOGLE_MAPS_API_KEY")

	return v
}

func setDefaults(v *viper.Viper) {
	conn := places.DefaultConnectionConfig()

	v.SetDefault("places.api_key", "")
	v.SetDefault("places.base_url", places.NearbySearchURL)
	v.SetDefault("places.transport", places.TransportNetHTTP)
	v.SetDefault("places.connection.dial_timeout", conn.DialTimeout)
	v.SetDefault("places.connection.tls_handshake_timeout", conn.TLSHandshakeTimeout)
	v.SetDefault("places.connection.response_header_timeout", conn.ResponseHeaderTimeout)
	v.SetDefault("places.connection.request_timeout", conn.RequestTimeout)

	v.SetDefault("search.latitude", mapview.DefaultLatitude)
	v.SetDefault("search.longitude", mapview.DefaultLongitude)
	v.SetDefault("search.radius_meters", 10000)
	v.SetDefault("search.place_type", "Hospitality")
	v.SetDefault("search.language", "")
	v.SetDefault("search.timeout", conn.RequestTimeout)

	v.SetDefault("camera.latitude", mapview.DefaultLatitude)
	v.SetDefault("camera.longitude", mapview.DefaultLongitude)
	v.SetDefault("camera.zoom", mapview.DefaultZoom)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("render.width", 800)
	v.SetDefault("render.height", 600)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.time_format", "")
}

// loadEnvFiles loads each file that exists; variables already set in the
// environment are never overwritten.
func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func validateConfig(config *Config) error {
	if err := config.SearchQuery().Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if err := config.MapCamera().Center.Validate(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}

	if config.Camera.Zoom < mapview.MinZoom || config.Camera.Zoom > mapview.MaxZoom {
		return fmt.Errorf("camera zoom %v out of range [%v, %v]", config.Camera.Zoom, mapview.MinZoom, mapview.MaxZoom)
	}

	if _, err := places.TransportName(config.Places.Transport); err != nil {
		return fmt.Errorf("places: %w", err)
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Render.Width <= 0 || config.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", config.Render.Width, config.Render.Height)
	}

	return nil
}
