package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

const (
	MsgNetworkError    = "Network error. Please check your internet connection."
	MsgServerError     = "Server error. Please try again later."
	MsgUnexpectedError = "An unexpected error occurred. Please try again."
)

// StatusError is returned for any response with status >= 400.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// NotFoundMessage is the user-facing text for a 404 from the named service.
func NotFoundMessage(service string) string {
	return fmt.Sprintf("%s service not found. Please contact support.", service)
}

// Describe turns an error from the client into the message shown to users.
// service names the backend area in the not-found message, e.g. "Students".
func Describe(err error, service string) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusNotFound:
			return NotFoundMessage(service)
		case statusErr.StatusCode >= http.StatusInternalServerError:
			return MsgServerError
		case statusErr.Message != "":
			return statusErr.Message
		}
		return MsgUnexpectedError
	}

	if isNetworkError(err) {
		return MsgNetworkError
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "404"):
		return NotFoundMessage(service)
	case strings.Contains(text, "500"):
		return MsgServerError
	}
	return MsgUnexpectedError
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	text := strings.ToLower(err.Error())
	for _, marker := range []string{"timeout", "timed out", "connection", "network", "no such host"} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
