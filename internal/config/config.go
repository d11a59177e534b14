package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Media    MediaConfig
	Mailer   MailerConfig
	Admin    AdminConfig
}

type AppConfig struct {
	AppName          string
	Environment      string
	HTTPPort         string
	CORSAllowOrigins []string
	UploadMaxBytes   int64
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type MediaConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicURL     string
	UploadTimeout time.Duration
}

type MailerConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type AdminConfig struct {
	Email    string
	Password string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the process environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:          req("APP_NAME"),
		Environment:      opt("APP_ENV"),
		HTTPPort:         req("HTTP_PORT"),
		CORSAllowOrigins: splitList(opt("CORS_ALLOW_ORIGINS")),
		UploadMaxBytes:   v.GetInt64("UPLOAD_MAX_BYTES"),
	}

	cfg.Log = LogConfig{
		Level:  opt("LOG_LEVEL"),
		Pretty: v.GetBool("LOG_PRETTY"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              req("DB_HOST"),
		DBPort:              opt("DB_PORT"),
		DBName:              req("DB_NAME"),
		DBUser:              req("DB_USER"),
		DBPassword:          opt("DB_PASSWORD"),
		DBSSLMode:           opt("DB_SSL_MODE"),
		ConnectTimeout:      v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:        v.GetInt32("DB_MAX_CONNS"),
		PoolMinConns:        v.GetInt32("DB_MIN_CONNS"),
		PoolMaxConnLifetime: v.GetDuration("DB_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime: v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.Media = MediaConfig{
		Endpoint:      opt("MEDIA_ENDPOINT"),
		AccessKey:     opt("MEDIA_ACCESS_KEY"),
		SecretKey:     opt("MEDIA_SECRET_KEY"),
		Bucket:        opt("MEDIA_BUCKET"),
		UseSSL:        v.GetBool("MEDIA_USE_SSL"),
		PublicURL:     opt("MEDIA_PUBLIC_URL"),
		UploadTimeout: v.GetDuration("MEDIA_UPLOAD_TIMEOUT"),
	}

	cfg.Mailer = MailerConfig{
		Host:     opt("MAILER_HOST"),
		Port:     v.GetInt("MAILER_PORT"),
		User:     opt("MAILER_USER"),
		Password: opt("MAILER_PASSWORD"),
		From:     opt("MAILER_FROM"),
	}

	cfg.Admin = AdminConfig{
		Email:    opt("ADMIN_EMAIL"),
		Password: opt("ADMIN_PASSWORD"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if cfg.JWT.ExpiresIn <= 0 {
		return Config{}, fmt.Errorf("invalid JWT_EXPIRES_IN: %q", opt("JWT_EXPIRES_IN"))
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("UPLOAD_MAX_BYTES", 110*1024*1024)

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_MAX_CONNS", 10)

	v.SetDefault("JWT_EXPIRES_IN", "24h")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", "10m")

	v.SetDefault("MEDIA_BUCKET", "itapp-media")
	v.SetDefault("MEDIA_UPLOAD_TIMEOUT", "60s")

	v.SetDefault("MAILER_PORT", 587)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
