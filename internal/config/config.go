package config

import (
	"time"

	"nearby-places/pkg/geo"
	"nearby-places/pkg/logger"
	"nearby-places/pkg/mapview"
	"nearby-places/pkg/places"
)

type Config struct {
	Places PlacesConfig  `mapstructure:"places"`
	Search SearchConfig  `mapstructure:"search"`
	Camera CameraConfig  `mapstructure:"camera"`
	Server ServerConfig  `mapstructure:"server"`
	Render RenderConfig  `mapstructure:"render"`
	Logger logger.Config `mapstructure:"logger"`
}

type PlacesConfig struct {
	APIKey     string                  `mapstructure:"api_key"`
	BaseURL    string                  `mapstructure:"base_url"`
	Transport  string                  `mapstructure:"transport"`
	Connection places.ConnectionConfig `mapstructure:"connection"`
}

type SearchConfig struct {
	Latitude     float64       `mapstructure:"latitude"`
	Longitude    float64       `mapstructure:"longitude"`
	RadiusMeters int           `mapstructure:"radius_meters"`
	PlaceType    string        `mapstructure:"place_type"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type CameraConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Zoom      float64 `mapstructure:"zoom"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type RenderConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}

// SearchQuery builds the query for the configured search, with the API key
// as currently configured.
func (c *Config) SearchQuery() places.SearchQuery {
	return places.SearchQuery{
		Latitude:     c.Search.Latitude,
		Longitude:    c.Search.Longitude,
		RadiusMeters: c.Search.RadiusMeters,
		PlaceType:    c.Search.PlaceType,
		APIKey:       c.Places.APIKey,
		Language:     c.Search.Language,
	}
}

func (c *Config) MapCamera() mapview.Camera {
	return mapview.Camera{
		Center: geo.LatLng{Lat: c.Camera.Latitude, Lng: c.Camera.Longitude},
		Zoom:   c.Camera.Zoom,
	}
}

func (c *Config) ClientConfig() places.ClientConfig {
	return places.ClientConfig{
		BaseURL:    c.Places.BaseURL,
		Transport:  c.Places.Transport,
		Connection: c.Places.Connection,
	}
}
