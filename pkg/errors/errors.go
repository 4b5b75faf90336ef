package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeStorage represents session, database and stream errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeLetter represents cover letter generation errors
	ErrorTypeLetter ErrorType = "letter"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Page    string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		if e.Page != "" {
			return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Page, e.Message, e.Err)
		}
		return fmt.Sprintf("[%s] %s - %v", e.Type, e.Message, e.Err)
	}
	if e.Page != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Page, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, page, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Page:    page,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(page, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, page, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(page, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, page, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(page string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, page, message, nil)
}

// NewStorage creates a new storage error
func NewStorage(message string, err error) *ScrapeError {
	return New(ErrorTypeStorage, "", message, err)
}

// NewLetter creates a new letter generation error
func NewLetter(message string, err error) *ScrapeError {
	return New(ErrorTypeLetter, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
