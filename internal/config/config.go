package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig `mapstructure:"log"`
	CSV       CSVConfig `mapstructure:"csv"`
	Survey    SurveyConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时字段, 不来自配置文件
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// CSVConfig 结果文件
type CSVConfig struct {
	Path string `mapstructure:"path"`
}

type SurveyConfig struct {
	Title         string        `mapstructure:"title"`
	CatalogPath   string        `mapstructure:"catalog_path"`
	AssetsDir     string        `mapstructure:"assets_dir"`
	SaveEndpoint  string        `mapstructure:"save_endpoint"`
	SubmitTimeout time.Duration `mapstructure:"submit_timeout"`
	ExportEnabled bool          `mapstructure:"export_enabled"`
}

type StorageConfig struct {
	Type            string        `mapstructure:"type"`
	LocalPath       string        `mapstructure:"local_path"`
	ArchivePrefix   string        `mapstructure:"archive_prefix"`
	ArchiveInterval time.Duration `mapstructure:"archive_interval"`
	MinioEndpoint   string        `mapstructure:"minio_endpoint"`
	MinioAccessID   string        `mapstructure:"minio_access_key"`
	MinioSecret     string        `mapstructure:"minio_secret_key"`
	MinioBucket     string        `mapstructure:"minio_bucket"`
	MinioSecure     bool          `mapstructure:"minio_secure"`
	OSSEndpoint     string        `mapstructure:"oss_endpoint"`
	OSSAccessKey    string        `mapstructure:"oss_access_key"`
	OSSSecretKey    string        `mapstructure:"oss_secret_key"`
	OSSBucket       string        `mapstructure:"oss_bucket"`
}

// DatabaseConfig Driver 为空时不镜像到数据库
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
	Path      string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	LockKey  string        `mapstructure:"lock_key"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")

	v.SetDefault("csv.path", "survey_results.csv")

	v.SetDefault("survey.title", "3D Model Comparison Survey")
	v.SetDefault("survey.assets_dir", "assets")
	v.SetDefault("survey.submit_timeout", 10*time.Second)
	v.SetDefault("survey.export_enabled", true)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "archive")
	v.SetDefault("storage.archive_prefix", "survey")

	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)

	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.lock_key", "survey:csv:lock")
	v.SetDefault("redis.lock_ttl", 5*time.Second)

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig 从 path 目录读取 config.yaml, 文件不存在时只使用默认值和环境变量
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SURVEY")
	v.AutomaticEnv()
	setDefaults(v)

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// CSV / survey
	v.BindEnv("csv.path", "CSV_PATH")
	v.BindEnv("survey.save_endpoint", "SAVE_ENDPOINT")
	v.BindEnv("survey.catalog_path", "CATALOG_PATH")

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.Survey.SaveEndpoint == "" {
		cfg.Survey.SaveEndpoint = fmt.Sprintf("http://127.0.0.1:%s/save", cfg.Server.Port)
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "survey.db"
	}

	if dir := filepath.Dir(cfg.CSV.Path); dir != "." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create csv directory: %w", err)
			}
		}
	}

	return &cfg, nil
}
