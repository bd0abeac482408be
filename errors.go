package main

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for the primary upstream call. Sentinels let callers use
// errors.Is regardless of how much context was wrapped around them.
var (
	ErrUnauthorized       = errors.New("upstream rejected the API key")
	ErrNotFound           = errors.New("place not found")
	ErrRateLimited        = errors.New("upstream rate limit exceeded")
	ErrNetworkUnreachable = errors.New("network unreachable")
)

// classifyStatus maps an upstream HTTP status to the error taxonomy.
// Statuses without a dedicated kind become a generic unexpected error.
func classifyStatus(code int, status string) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("unexpected upstream status: %s", status)
	}
}

// lookupErrorMessage selects the user-visible message for a failed primary
// call. These strings are what the display surface renders verbatim.
func lookupErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "Invalid API key"
	case errors.Is(err, ErrNotFound):
		return "Location not found"
	case errors.Is(err, ErrRateLimited):
		return "Too many requests. Try again later."
	case errors.Is(err, ErrNetworkUnreachable):
		return "Network error: check your internet connection"
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
