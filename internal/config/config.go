package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Dataset sources
const (
	DatasetSourceEmbedded = "embedded"
	DatasetSourceDir      = "dir"
	DatasetSourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Map      MapConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

type DatasetConfig struct {
	Source string
	Dir    string
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
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	LayersCacheTTL time.Duration
	StatsCacheTTL  time.Duration
	WarmupInterval time.Duration
}

type MapConfig struct {
	Title           string
	Intro           string
	CenterLat       float64
	CenterLon       float64
	Zoom            int
	Height          string
	TileURL         string
	TileAttribution string
}

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("DATASET_SOURCE", DatasetSourceEmbedded)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "inframap")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LAYERS_CACHE_TTL", 3600)
	v.SetDefault("STATS_CACHE_TTL", 3600)
	v.SetDefault("CACHE_WARMUP_INTERVAL", 1800)

	v.SetDefault("MAP_TITLE", "Jigawa State Infrastructure Map")
	v.SetDefault("MAP_INTRO", "Use the filters below to explore different types of infrastructure in Jigawa State.")
	v.SetDefault("MAP_CENTER_LAT", 12.0022)
	v.SetDefault("MAP_CENTER_LON", 9.1605)
	v.SetDefault("MAP_ZOOM", 7)
	v.SetDefault("MAP_HEIGHT", "600px")
	v.SetDefault("MAP_TILE_URL", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("MAP_TILE_ATTRIBUTION", `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`)

	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper builds the config from an already populated viper instance
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			AllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Dataset: DatasetConfig{
			Source: strings.ToLower(strings.TrimSpace(v.GetString("DATASET_SOURCE"))),
			Dir:    v.GetString("DATASET_DIR"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			LayersCacheTTL: time.Duration(v.GetInt("LAYERS_CACHE_TTL")) * time.Second,
			StatsCacheTTL:  time.Duration(v.GetInt("STATS_CACHE_TTL")) * time.Second,
			WarmupInterval: time.Duration(v.GetInt("CACHE_WARMUP_INTERVAL")) * time.Second,
		},
		Map: MapConfig{
			Title:           v.GetString("MAP_TITLE"),
			Intro:           v.GetString("MAP_INTRO"),
			CenterLat:       v.GetFloat64("MAP_CENTER_LAT"),
			CenterLon:       v.GetFloat64("MAP_CENTER_LON"),
			Zoom:            v.GetInt("MAP_ZOOM"),
			Height:          v.GetString("MAP_HEIGHT"),
			TileURL:         v.GetString("MAP_TILE_URL"),
			TileAttribution: v.GetString("MAP_TILE_ATTRIBUTION"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return FromViper(v)
}

func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case DatasetSourceEmbedded, DatasetSourcePostgres:
	case DatasetSourceDir:
		if c.Dataset.Dir == "" {
			return fmt.Errorf("DATASET_DIR is required when DATASET_SOURCE=%s", DatasetSourceDir)
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q", c.Dataset.Source)
	}

	if c.Map.Zoom < 0 || c.Map.Zoom > 18 {
		return fmt.Errorf("MAP_ZOOM must be between 0 and 18, got %d", c.Map.Zoom)
	}
	if c.Map.CenterLat < -90 || c.Map.CenterLat > 90 || c.Map.CenterLon < -180 || c.Map.CenterLon > 180 {
		return fmt.Errorf("invalid map center %f,%f", c.Map.CenterLat, c.Map.CenterLon)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid API_PORT %d", c.Server.Port)
	}
	return nil
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
