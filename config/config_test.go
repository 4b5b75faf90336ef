package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "https://www.hellowork.com", config.BaseURL)
	assert.Equal(t, 10*time.Second, config.HTTPTimeout)
	assert.Equal(t, 2*time.Second, config.PageDelay)
	assert.Equal(t, "proxies.txt", config.ProxyFile)
	assert.Equal(t, "", config.MemcacheAddr)
	assert.Equal(t, "", config.RedisAddr)
	assert.Equal(t, "joblistings", config.RedisStream)
	assert.Equal(t, "lettres", config.LettersDir)
	assert.Equal(t, "saves", config.SavesDir)
	assert.Equal(t, 6*time.Hour, config.WatchInterval)

	// Test with environment variables
	os.Setenv("HELLOWORK_BASE_URL", "https://example.com")
	os.Setenv("PAGE_DELAY_SECONDS", "0")
	os.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("LETTERS_DIR", "letters")

	config = LoadConfig()
	assert.Equal(t, "https://example.com", config.BaseURL)
	assert.Equal(t, time.Duration(0), config.PageDelay)
	assert.Equal(t, "memcache.example.com:11211", config.MemcacheAddr)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.Equal(t, "letters", config.LettersDir)

	// Clean up
	os.Unsetenv("HELLOWORK_BASE_URL")
	os.Unsetenv("PAGE_DELAY_SECONDS")
	os.Unsetenv("MEMCACHE_ADDR")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("LETTERS_DIR")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	config.HTTPTimeout = 0
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.PageDelay = -time.Second
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.WatchInterval = time.Second
	assert.Error(t, config.Validate())
}
