package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIURL       string        // CAFE_API_URL (default "http://localhost:8080/api")
	Token        string        // CAFE_TOKEN (optional, overrides the profile token)
	NATSURL      string        // CAFE_NATS_URL (optional, empty = poll for changes)
	HTTPAddr     string        // CAFE_HTTP_ADDR (default ":3080")
	Timeout      time.Duration // CAFE_TIMEOUT (default 15s)
	PageSize     int           // CAFE_PAGE_SIZE (default 10)
	MaxPages     int           // CAFE_MAX_FETCH_PAGES (default 50)
	CORSOrigins  []string      // CAFE_CORS_ORIGINS (comma-separated)
	ProfilesPath string        // CAFE_PROFILES (default ~/.local/state/cafedash/profiles.toml)

	// Export settings
	ExportInterval    time.Duration // CAFE_EXPORT_INTERVAL (default 0 = one-shot)
	ExportS3Bucket    string        // CAFE_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Endpoint  string        // CAFE_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region    string        // CAFE_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Prefix    string        // CAFE_EXPORT_S3_PREFIX (default "cafedash/")
	ExportDatabaseURL string        // CAFE_EXPORT_DATABASE_URL (enables the Postgres snapshot table)
}

func Load() (*Config, error) {
	c := &Config{
		APIURL:            envOrDefault("CAFE_API_URL", "http://localhost:8080/api"),
		Token:             os.Getenv("CAFE_TOKEN"),
		NATSURL:           os.Getenv("CAFE_NATS_URL"),
		HTTPAddr:          envOrDefault("CAFE_HTTP_ADDR", ":3080"),
		ProfilesPath:      os.Getenv("CAFE_PROFILES"),
		ExportS3Bucket:    os.Getenv("CAFE_EXPORT_S3_BUCKET"),
		ExportS3Endpoint:  os.Getenv("CAFE_EXPORT_S3_ENDPOINT"),
		ExportS3Region:    envOrDefault("CAFE_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Prefix:    envOrDefault("CAFE_EXPORT_S3_PREFIX", "cafedash/"),
		ExportDatabaseURL: os.Getenv("CAFE_EXPORT_DATABASE_URL"),
	}

	var err error
	if c.Timeout, err = durationEnv("CAFE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if c.Timeout <= 0 {
		return nil, fmt.Errorf("CAFE_TIMEOUT must be positive")
	}
	if c.ExportInterval, err = durationEnv("CAFE_EXPORT_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if c.PageSize, err = intEnv("CAFE_PAGE_SIZE", 10); err != nil {
		return nil, err
	}
	if c.PageSize < 1 {
		return nil, fmt.Errorf("CAFE_PAGE_SIZE must be at least 1")
	}
	if c.MaxPages, err = intEnv("CAFE_MAX_FETCH_PAGES", 50); err != nil {
		return nil, err
	}
	if v := os.Getenv("CAFE_CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
