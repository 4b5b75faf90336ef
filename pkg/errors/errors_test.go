package errors

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	underlying := errors.New("connection refused")

	err := NewNetwork("https://example.com", "fetch failed", underlying)
	assert.Contains(t, err.Error(), "[network]")
	assert.Contains(t, err.Error(), "https://example.com")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, underlying, errors.Unwrap(err))

	err = NewStorage("write failed", nil)
	assert.Equal(t, "[storage] write failed", err.Error())
}

func TestRateLimitError(t *testing.T) {
	err := NewRateLimit("https://example.com", 5*time.Minute)
	assert.Equal(t, ErrorTypeRateLimit, err.Type)
	assert.Contains(t, err.Error(), "rate limited for 5m0s")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, NewNetwork("url", "m", nil).IsRetryable())
	assert.False(t, NewParsing("url", "m", nil).IsRetryable())
	assert.False(t, NewRateLimit("url", time.Second).IsRetryable())
	assert.False(t, NewLetter("m", nil).IsRetryable())
	assert.False(t, NewConfiguration("m", nil).IsRetryable())
}
