package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultReferer   = "https://www.youtube.com/"
)

type Config struct {
	Server   ServerConfig
	Download DownloadConfig
	Engine   EngineConfig
	Cookies  CookiesConfig
	API      APIConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port     string
	Host     string
	Version  string
	LogLevel string
}

type DownloadConfig struct {
	Directory              string
	MaxConcurrentDownloads int
	DownloadTimeout        time.Duration
	ArtifactMaxAge         time.Duration
	SweepInterval          time.Duration
}

type EngineConfig struct {
	YtDlpPath   string
	AutoInstall bool
	FFmpegPath  string
	UserAgent   string
	Referer     string
}

type CookiesConfig struct {
	DataDir string
	File    string
	MaxSize int64
}

type APIConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
	Profile          string
}

// Load reads the given dotenv files (".env" when none are given) and then
// the process environment. Variables already set in the environment win.
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Version = getEnv("APP_VERSION", "1.0.0")
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	// Download configuration
	cfg.Download.Directory = getEnv("DOWNLOAD_DIR", "/tmp/downloads")
	cfg.Download.MaxConcurrentDownloads = getEnvInt("MAX_CONCURRENT_DOWNLOADS", 0)

	var err error
	if cfg.Download.DownloadTimeout, err = getEnvDuration("DOWNLOAD_TIMEOUT", "10m"); err != nil {
		return nil, err
	}
	if cfg.Download.ArtifactMaxAge, err = getEnvDuration("ARTIFACT_MAX_AGE", "1h"); err != nil {
		return nil, err
	}
	if cfg.Download.SweepInterval, err = getEnvDuration("ARTIFACT_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, err
	}

	// Engine configuration
	cfg.Engine.YtDlpPath = getEnv("YTDLP_PATH", "")
	cfg.Engine.AutoInstall = getEnvBool("YTDLP_AUTO_INSTALL", false)
	cfg.Engine.FFmpegPath = getEnv("FFMPEG_PATH", "")
	cfg.Engine.UserAgent = getEnv("USER_AGENT", DefaultUserAgent)
	cfg.Engine.Referer = getEnv("REFERER", DefaultReferer)

	// Cookie file configuration
	cfg.Cookies.DataDir = getEnv("DATA_DIR", "/tmp/mediafetch")
	cfg.Cookies.File = getEnv("COOKIES_FILE", filepath.Join(cfg.Cookies.DataDir, "cookies.txt"))
	cfg.Cookies.MaxSize = getEnvInt64("COOKIES_MAX_SIZE", 1<<20) // 1MB default

	// API configuration
	cfg.API.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 100)
	if cfg.API.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", "1m"); err != nil {
		return nil, err
	}

	// CORS configuration
	cfg.CORS = loadCORSConfig()

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(strings.TrimSpace(value), ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// loadCORSConfig loads CORS configuration based on profile or custom settings
func loadCORSConfig() CORSConfig {
	profile := getEnv("CORS_PROFILE", "permissive")

	switch profile {
	case "custom":
		return getCustomCORSConfig()
	default:
		return getPermissiveCORSConfig()
	}
}

// getPermissiveCORSConfig allows any origin, method and header
func getPermissiveCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled:          getEnvBool("CORS_ENABLED", true),
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"*"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 86400),
		Profile:          "permissive",
	}
}

// getCustomCORSConfig returns CORS settings from individual environment variables
func getCustomCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled: getEnvBool("CORS_ENABLED", true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
		}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", []string{
			"GET", "POST", "DELETE", "OPTIONS",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{
			"Origin", "Content-Type", "Accept",
		}),
		ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", []string{"Content-Disposition"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
		Profile:          "custom",
	}
}
