package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents fetch failures (timeouts, resets, 5xx)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeNotFound represents a 404 or other non-retryable status
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeValidation represents a record that cannot be built (no name, no slug)
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeSink represents work-queue, datastore, image or stream failures
	ErrorTypeSink ErrorType = "sink"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents an error raised while scraping or persisting a product page
type ScrapeError struct {
	Type    ErrorType
	Source  string
	URL     string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	where := e.Source
	if e.URL != "" {
		where = fmt.Sprintf("%s %s", e.Source, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, where, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, where, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if another fetch attempt may succeed
func (e *ScrapeError) IsRetryable() bool {
	return e.Type == ErrorTypeNetwork
}

// IsFatal returns true if the page must be abandoned
func (e *ScrapeError) IsFatal() bool {
	switch e.Type {
	case ErrorTypeNetwork, ErrorTypeNotFound, ErrorTypeRateLimit, ErrorTypeValidation:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, source, url, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Source:  source,
		URL:     url,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(source, url, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, source, url, message, err)
}

// NewNotFound creates an error for a page that answered with a terminal status
func NewNotFound(source, url string, status int) *ScrapeError {
	return New(ErrorTypeNotFound, source, url, fmt.Sprintf("unexpected status code: %d", status), nil)
}

// NewParsing creates a new parsing error
func NewParsing(source, url, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, source, url, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(source string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, source, "", message, nil)
}

// NewValidation creates a new validation error
func NewValidation(source, url, message string) *ScrapeError {
	return New(ErrorTypeValidation, source, url, message, nil)
}

// NewSink creates a new sink error
func NewSink(sink, message string, err error) *ScrapeError {
	return New(ErrorTypeSink, sink, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", "", message, err)
}

// TypeOf reports the ErrorType carried anywhere in err's chain, or "" when there is none
func TypeOf(err error) ErrorType {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Type
	}
	return ""
}

// IsRetryable reports whether err is a retryable ScrapeError
func IsRetryable(err error) bool {
	var se *ScrapeError
	return errors.As(err, &se) && se.IsRetryable()
}
