package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// HelloWork endpoints
	BaseURL          string
	SearchURLPattern string

	// Fetching behaviour
	HTTPTimeout time.Duration
	PageDelay   time.Duration
	ProxyFile   string

	// Rate limiting cache (optional, disabled when empty)
	MemcacheAddr string
	BlockTime    time.Duration

	// Remote append targets (optional, disabled when empty)
	RedisAddr   string
	RedisDB     int
	RedisStream string
	DatabaseURL string

	// Local documents and output directories
	CVPath         string
	ParcoursPath   string
	InfosPersoPath string
	LettersDir     string
	SavesDir       string

	// Watch mode
	WatchInterval time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	httpTimeout, _ := strconv.Atoi(getEnv("HTTP_TIMEOUT_SECONDS", "10"))
	pageDelay, _ := strconv.Atoi(getEnv("PAGE_DELAY_SECONDS", "2"))
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_TIME_SECONDS", "300"))
	watchInterval, _ := strconv.Atoi(getEnv("WATCH_INTERVAL_MINUTES", "360"))

	return &Config{
		BaseURL:          getEnv("HELLOWORK_BASE_URL", "https://www.hellowork.com"),
		SearchURLPattern: getEnv("HELLOWORK_SEARCH_URL", "https://www.hellowork.com/fr-fr/emploi/recherche.html?k=%s&l=%s"),
		HTTPTimeout:      time.Duration(httpTimeout) * time.Second,
		PageDelay:        time.Duration(pageDelay) * time.Second,
		ProxyFile:        getEnv("PROXY_FILE", "proxies.txt"),
		MemcacheAddr:     getEnv("MEMCACHE_ADDR", ""),
		BlockTime:        time.Duration(blockTime) * time.Second,
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisDB:          redisDB,
		RedisStream:      getEnv("REDIS_STREAM", "joblistings"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		CVPath:           getEnv("CV_PATH", "cv.txt"),
		ParcoursPath:     getEnv("PARCOURS_PATH", "parcours.txt"),
		InfosPersoPath:   getEnv("INFOS_PERSO_PATH", "infos_perso.json"),
		LettersDir:       getEnv("LETTERS_DIR", "lettres"),
		SavesDir:         getEnv("SAVES_DIR", "saves"),
		WatchInterval:    time.Duration(watchInterval) * time.Minute,
		Environment:      getEnv("HELLOHUNT_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid HELLOWORK_BASE_URL %q: %w", c.BaseURL, err)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}
	if c.PageDelay < 0 {
		return fmt.Errorf("PAGE_DELAY_SECONDS must not be negative")
	}
	if c.WatchInterval < time.Minute {
		return fmt.Errorf("WATCH_INTERVAL_MINUTES must be at least 1")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
