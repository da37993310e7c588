package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,         default=8080"`
	Env       string `env:"ENV,          default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,    default=info"`
	// AppBaseURL is the public origin used to build shareable tracking links
	// ({AppBaseURL}/rastrear/{code}).
	AppBaseURL string `env:"APP_BASE_URL, default=http://localhost:8080"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Mapbox   MapboxConfig
	Tracking TrackingConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cement_tracking"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MapboxConfig carries the geocoding provider settings. Country and Language
// are passed through as result hints on every request.
type MapboxConfig struct {
	Token    string `env:"MAPBOX_TOKEN"`
	BaseURL  string `env:"MAPBOX_BASE_URL, default=https://api.mapbox.com"`
	Country  string `env:"MAPBOX_COUNTRY,  default=BR"`
	Language string `env:"MAPBOX_LANGUAGE, default=pt"`
}

type TrackingConfig struct {
	// AvgSpeedKmh is the average road speed assumed by the ETA heuristic.
	AvgSpeedKmh float64 `env:"AVG_SPEED_KMH, default=50"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
