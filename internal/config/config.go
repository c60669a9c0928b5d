package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/scenic-route-service/internal/domain"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Google   GoogleConfig
	Route    RouteConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL    time.Duration
	DirectionsCacheTTL time.Duration
}

// GoogleConfig - доступ к Google Maps Platform (geocoding, directions, places)
type GoogleConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout int // seconds
}

// RouteConfig - параметры движка генерации маршрутов
type RouteConfig struct {
	SampleCount            int      // точек выборки вдоль baseline-пути
	SearchRadiusMeters     float64  // радиус nearby-поиска на точку выборки
	MaxCandidates          int      // потолок кандидатов после скоринга
	MinStops               int
	MaxStops               int
	MaxTimeIncreasePercent float64  // бюджет прироста времени по умолчанию
	OnRouteToleranceMeters float64
	POICategories          []string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	BatchSize     int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL:    time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
			DirectionsCacheTTL: time.Duration(viper.GetInt("DIRECTIONS_CACHE_TTL")) * time.Second,
		},
		Google: GoogleConfig{
			APIKey:         viper.GetString("GOOGLE_API_KEY"),
			BaseURL:        viper.GetString("GOOGLE_BASE_URL"),
			RequestTimeout: viper.GetInt("GOOGLE_REQUEST_TIMEOUT"),
		},
		Route: RouteConfig{
			SampleCount:            viper.GetInt("ROUTE_SAMPLE_COUNT"),
			SearchRadiusMeters:     viper.GetFloat64("ROUTE_SEARCH_RADIUS"),
			MaxCandidates:          viper.GetInt("ROUTE_MAX_CANDIDATES"),
			MinStops:               viper.GetInt("ROUTE_MIN_STOPS"),
			MaxStops:               viper.GetInt("ROUTE_MAX_STOPS"),
			MaxTimeIncreasePercent: viper.GetFloat64("ROUTE_MAX_TIME_INCREASE"),
			OnRouteToleranceMeters: viper.GetFloat64("ROUTE_ON_ROUTE_TOLERANCE"),
			POICategories:          parseCategories(viper.GetString("ROUTE_POI_CATEGORIES")),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:     viper.GetInt("WORKER_BATCH_SIZE"),
		},
	}

	// Set default values if not provided
	if cfg.Google.BaseURL == "" {
		cfg.Google.BaseURL = "https://maps.googleapis.com"
	}
	if cfg.Google.RequestTimeout == 0 {
		cfg.Google.RequestTimeout = 10
	}
	if cfg.Cache.GeocodeCacheTTL == 0 {
		cfg.Cache.GeocodeCacheTTL = 24 * time.Hour
	}
	if cfg.Cache.DirectionsCacheTTL == 0 {
		cfg.Cache.DirectionsCacheTTL = 10 * time.Minute
	}
	if cfg.Route.SampleCount == 0 {
		cfg.Route.SampleCount = 5
	}
	if cfg.Route.SearchRadiusMeters == 0 {
		cfg.Route.SearchRadiusMeters = 3000
	}
	if cfg.Route.MaxCandidates == 0 {
		cfg.Route.MaxCandidates = 8
	}
	if cfg.Route.MinStops == 0 {
		cfg.Route.MinStops = 3
	}
	if cfg.Route.MaxStops == 0 {
		cfg.Route.MaxStops = 8
	}
	if cfg.Route.MaxTimeIncreasePercent == 0 {
		cfg.Route.MaxTimeIncreasePercent = 20
	}
	if cfg.Route.OnRouteToleranceMeters == 0 {
		cfg.Route.OnRouteToleranceMeters = 150
	}
	if len(cfg.Route.POICategories) == 0 {
		cfg.Route.POICategories = domain.DefaultPOICategories()
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "route-generation-workers"
	}
	if cfg.Worker.BatchSize == 0 {
		cfg.Worker.BatchSize = 10
	}

	return cfg, nil
}

func parseCategories(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
