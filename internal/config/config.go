package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig PostgreSQL 연결 설정
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// DSN 연결 문자열. DATABASE_URL이 있으면 그대로 사용한다.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Config loneat 서버 설정 (환경 변수 기반)
type Config struct {
	HTTP struct {
		Addr string
	}
	Env       string
	Database  DatabaseConfig
	JWTSecret string
	SiteURL   string
	UploadDir string
	WebDir    string
	Log       struct {
		Level  string
		Format string
	}
}

// CookieSecure 프로덕션에서만 Secure 쿠키 사용
func (c *Config) CookieSecure() bool {
	return c.Env == "production"
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.Env = getEnv("APP_ENV", "development")

	cfg.Database.URL = getEnv("DATABASE_URL", "")
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "loneat")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	// 개발용 기본 시크릿. 프로덕션에서는 반드시 JWT_SECRET을 설정해야 한다.
	cfg.JWTSecret = getEnv("JWT_SECRET", "fallback-secret-for-development")

	cfg.SiteURL = getEnv("SITE_URL", "https://loneat.kr")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "public/uploads")
	cfg.WebDir = getEnv("WEB_DIR", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
