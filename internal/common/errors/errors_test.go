package errors

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected FailureCategory
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: CategoryGeneralError,
		},
		{
			name:     "connection refused",
			err:      fmt.Errorf("dial tcp 127.0.0.1:443: connection refused"),
			expected: CategoryNetworkError,
		},
		{
			name:     "dns failure",
			err:      &net.DNSError{Err: "no such host", Name: "api.example.com"},
			expected: CategoryNetworkError,
		},
		{
			name:     "http 429",
			err:      NewUpstreamStatusError("model", 429),
			expected: CategoryRateLimited,
		},
		{
			name:     "rate limit marker in message",
			err:      fmt.Errorf("upstream said: rate limit reached"),
			expected: CategoryRateLimited,
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: CategoryTimeout,
		},
		{
			name:     "timeout marker",
			err:      fmt.Errorf("request timeout after 30s"),
			expected: CategoryTimeout,
		},
		{
			name:     "http 503",
			err:      NewUpstreamStatusError("model", 503),
			expected: CategoryModelUnavailable,
		},
		{
			name:     "http 500",
			err:      NewUpstreamStatusError("model", 500),
			expected: CategoryModelUnavailable,
		},
		{
			name: "catalog outage keeps explicit category",
			err: &ServiceError{
				Service:  "catalog",
				Category: CategoryCatalogUnavailable,
				Message:  "search unavailable",
			},
			expected: CategoryCatalogUnavailable,
		},
		{
			name:     "http 400",
			err:      NewUpstreamStatusError("model", 400),
			expected: CategoryGeneralError,
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("something odd happened"),
			expected: CategoryGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

func TestClassifyOrdering(t *testing.T) {
	// A 429 whose message also mentions a timeout is rate-limited: the
	// rate-limit rule comes before the timeout rule.
	err := &ServiceError{
		Service:    "model",
		Message:    "timeout waiting for slot",
		StatusCode: 429,
	}
	assert.Equal(t, CategoryRateLimited, Classify(err))

	// A connection-refused wrapped in a 500-status error is still a network
	// failure: the network rule comes first.
	wrapped := &ServiceError{
		Service:    "model",
		Message:    "connection refused by upstream",
		StatusCode: 500,
	}
	assert.Equal(t, CategoryNetworkError, Classify(wrapped))
}

func TestShouldFallback(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", fmt.Errorf("connect ECONNREFUSED 10.0.0.1:443"), true},
		{"dns failure", &net.DNSError{Err: "no such host"}, true},
		{"http 429", NewUpstreamStatusError("model", 429), true},
		{"http 410", NewUpstreamStatusError("model", 410), true},
		{"http 500", NewUpstreamStatusError("model", 500), true},
		{"http 400", NewUpstreamStatusError("model", 400), true},
		{"timeout", context.DeadlineExceeded, true},
		{"transport failure", NewTransportError("catalog", fmt.Errorf("socket hang up")), true},
		{"plain error without markers", fmt.Errorf("validation failed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldFallback(tt.err))
		})
	}
}

func TestServiceError(t *testing.T) {
	t.Run("error string includes status", func(t *testing.T) {
		err := NewUpstreamStatusError("catalog", 502)
		assert.Contains(t, err.Error(), "catalog")
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("retryable flags", func(t *testing.T) {
		assert.True(t, NewUpstreamStatusError("model", 429).Retryable)
		assert.True(t, NewUpstreamStatusError("model", 503).Retryable)
		assert.False(t, NewUpstreamStatusError("model", 404).Retryable)
	})

	t.Run("unwrap exposes cause", func(t *testing.T) {
		cause := fmt.Errorf("boom")
		err := NewTransportError("model", cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("timeout constructor sets category", func(t *testing.T) {
		err := NewTimeoutError("model", context.DeadlineExceeded)
		assert.Equal(t, CategoryTimeout, err.Category)
		assert.True(t, err.Retryable)
	})
}
