// Package errors provides standardized error handling and failure
// classification for the recommendation pipeline.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// ==========================
// 1. Failure Categories
// ==========================

// FailureCategory labels why an upstream stage failed. It drives both the
// persona message shown to the user and the genre targeting in the fallback.
type FailureCategory string

const (
	CategoryModelUnavailable   FailureCategory = "MODEL_UNAVAILABLE"
	CategoryCatalogUnavailable FailureCategory = "CATALOG_UNAVAILABLE"
	CategoryNetworkError       FailureCategory = "NETWORK_ERROR"
	CategoryRateLimited        FailureCategory = "RATE_LIMITED"
	CategoryTimeout            FailureCategory = "TIMEOUT"
	CategoryGeneralError       FailureCategory = "GENERAL_ERROR"
)

// ==========================
// 2. Service Errors
// ==========================

// ServiceError is a structured application error carrying the upstream
// service name, the HTTP status (0 when not an HTTP failure) and an explicit
// category when the producing client already knows it.
type ServiceError struct {
	Service    string          `json:"service"`
	Category   FailureCategory `json:"category,omitempty"`
	Message    string          `json:"message"`
	StatusCode int             `json:"statusCode,omitempty"`
	Retryable  bool            `json:"retryable"`
	Timestamp  time.Time       `json:"timestamp"`
	Err        error           `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("ServiceError[%s]: %s (status %d)", e.Service, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("ServiceError[%s]: %s", e.Service, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewUpstreamStatusError creates an error for a non-2xx response from an
// upstream service.
func NewUpstreamStatusError(service string, status int) *ServiceError {
	return &ServiceError{
		Service:    service,
		Message:    fmt.Sprintf("upstream returned status %d", status),
		StatusCode: status,
		Retryable:  status == 429 || status >= 500,
		Timestamp:  time.Now().UTC(),
	}
}

// NewTransportError wraps a network-level failure talking to a service.
func NewTransportError(service string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Message:   "transport error",
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// NewTimeoutError wraps a deadline expiry on a call to a service.
func NewTimeoutError(service string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Category:  CategoryTimeout,
		Message:   "call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// NewConfigurationError reports missing or invalid configuration. This is the
// one class that must not be absorbed by the fallback path: constructors
// return it before any request is accepted.
func NewConfigurationError(details string) *ServiceError {
	return &ServiceError{
		Service:   "config",
		Message:   "invalid configuration: " + details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Policy
// ==========================

// Markers recognized in error text when no typed information is available.
var (
	networkMarkers = []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"socket hang up",
		"econnrefused",
		"enotfound",
	}
	rateLimitMarkers = []string{
		"rate limit",
		"too many requests",
	}
	timeoutMarkers = []string{
		"timeout",
		"deadline exceeded",
		"etimedout",
		"context canceled",
	}
)

// Classify maps an error to a FailureCategory. Rules are ordered; the first
// match wins:
//
//  1. DNS / connection-refused      -> NETWORK_ERROR
//  2. HTTP 429 or rate-limit marker -> RATE_LIMITED
//  3. timeout marker or abort code  -> TIMEOUT
//  4. HTTP >= 500                   -> MODEL_UNAVAILABLE
//  5. anything else                 -> GENERAL_ERROR
//
// A ServiceError carrying an explicit non-transport category (e.g. a catalog
// client reporting CATALOG_UNAVAILABLE) keeps it, except where a transport
// rule above takes precedence.
func Classify(err error) FailureCategory {
	if err == nil {
		return CategoryGeneralError
	}

	status := statusCode(err)
	msg := strings.ToLower(err.Error())

	if isNetworkError(err, msg) {
		return CategoryNetworkError
	}
	if status == 429 || containsAny(msg, rateLimitMarkers) {
		return CategoryRateLimited
	}
	if isTimeout(err, msg) {
		return CategoryTimeout
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category != "" && svcErr.Category != CategoryGeneralError {
		return svcErr.Category
	}

	if status >= 500 {
		return CategoryModelUnavailable
	}
	return CategoryGeneralError
}

// ShouldFallback reports whether an error warrants serving degraded content
// instead of surfacing the failure. A nil error never falls back.
//
// The policy is deliberately permissive: besides connection and server
// failures it treats HTTP 410 and generically most >= 400 statuses as
// fallback-worthy, which blurs client-error vs. server-error semantics but
// matches how the service has always behaved.
func ShouldFallback(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	if isNetworkError(err, msg) || isTimeout(err, msg) || containsAny(msg, rateLimitMarkers) {
		return true
	}

	status := statusCode(err)
	switch {
	case status == 429, status == 410, status >= 500:
		return true
	case status >= 400:
		return true
	}

	return containsAny(msg, networkMarkers)
}

// ==========================
// 4. Helpers
// ==========================

func statusCode(err error) int {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode
	}
	return 0
}

func isNetworkError(err error, msg string) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && !opErr.Timeout() {
		return true
	}
	return containsAny(msg, networkMarkers)
}

func isTimeout(err error, msg string) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return containsAny(msg, timeoutMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
