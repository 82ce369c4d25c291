package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Log      LogConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Port        string
	Env         string // dev, test, prod
	CORSOrigins []string
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// StorageConfig MinIO / S3 兼容对象存储
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // 图片对外访问前缀，为空时使用 endpoint
	MaxUpload int64  // bytes
}

// RedisConfig Addr 为空时不启用登出黑名单
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, file, both
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
}

// AdminConfig 启动时创建的初始管理员
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

func (c *Config) IsProd() bool {
	return c.App.Env == "prod"
}

// Load 读取 .env 与环境变量，未设置的项使用默认值
func Load() *Config {
	// .env is optional, system env vars take precedence over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		App: AppConfig{
			Port:        v.GetString("PORT"),
			Env:         v.GetString("APP_ENV"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("DATABASE_URL"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			SlowThreshold:   v.GetDuration("DB_SLOW_THRESHOLD"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			PublicURL: v.GetString("MINIO_PUBLIC_URL"),
			MaxUpload: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Format:     v.GetString("LOG_FORMAT"),
			Output:     v.GetString("LOG_OUTPUT"),
			FilePath:   v.GetString("LOG_FILE"),
			MaxSize:    v.GetInt("LOG_MAX_SIZE"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAge:     v.GetInt("LOG_MAX_AGE"),
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("CORS_ORIGINS", "*")

	// Fallback for local dev if not set
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=ecohub port=5432 sslmode=disable")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_SLOW_THRESHOLD", "200ms")

	v.SetDefault("JWT_SECRET", "secret_key_change_me")
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_BUCKET", "ecohub-pictures")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)

	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_FILE", "logs/ecohub.log")
	v.SetDefault("LOG_MAX_SIZE", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 7)
	v.SetDefault("LOG_MAX_AGE", 30)

	v.SetDefault("ADMIN_USERNAME", "admin")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
