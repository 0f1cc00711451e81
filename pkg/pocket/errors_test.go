package pocket

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDefaults(t *testing.T) {
	cases := []struct {
		status  int
		kind    Kind
		message string
	}{
		{http.StatusUnauthorized, KindAuthentication, "Invalid API key"},
		{http.StatusNotFound, KindNotFound, "Resource not found"},
		{http.StatusTooManyRequests, KindRateLimit, "Rate limit exceeded"},
		{http.StatusBadRequest, KindValidation, "Validation failed"},
		{http.StatusForbidden, KindGeneric, "An unknown error occurred"},
		{http.StatusOK, KindGeneric, "An unknown error occurred"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			err := Classify(tc.status, map[string]any{}, nil)
			assert.Equal(t, tc.kind, err.Kind)
			assert.Equal(t, tc.message, err.Error())
			assert.Equal(t, tc.status, err.Code())
			assert.NotNil(t, err.Details)
		})
	}
}

func TestClassifyServerRange(t *testing.T) {
	for status := 500; status <= 599; status++ {
		err := Classify(status, nil, nil)
		require.Equal(t, KindServer, err.Kind, "status %d", status)
		require.Equal(t, status, err.StatusCode)
	}

	err := Classify(http.StatusServiceUnavailable, nil, nil)
	assert.Equal(t, "Server error: 503 Service Unavailable", err.Message)

	err = Classify(http.StatusInternalServerError, map[string]any{"error": "database unavailable"}, nil)
	assert.Equal(t, "Server error: database unavailable", err.Message)
}

func TestClassifyUsesBodyMessageAndDetails(t *testing.T) {
	body := map[string]any{
		"error":   "Invalid date range",
		"details": map[string]any{"start_date": "must be before end_date"},
	}

	v := Classify(http.StatusBadRequest, body, nil)
	assert.Equal(t, KindValidation, v.Kind)
	assert.Equal(t, "Invalid date range", v.Message)
	assert.Equal(t, "must be before end_date", v.Details["start_date"])

	// status alone picks the kind
	a := Classify(http.StatusUnauthorized, body, nil)
	assert.Equal(t, KindAuthentication, a.Kind)
	assert.Equal(t, "Invalid date range", a.Message)
	assert.Empty(t, a.Details)
}

func TestClassifyRetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "60")
	err := Classify(http.StatusTooManyRequests, nil, h)
	require.NotNil(t, err.RetryAfter)
	assert.Equal(t, 60, *err.RetryAfter)

	assert.Nil(t, Classify(http.StatusTooManyRequests, nil, nil).RetryAfter)

	h.Set("Retry-After", "Wed, 21 Oct 2015 07:28:00 GMT")
	assert.Nil(t, Classify(http.StatusTooManyRequests, nil, h).RetryAfter)

	// only rate limits carry it
	h.Set("Retry-After", "60")
	assert.Nil(t, Classify(http.StatusServiceUnavailable, nil, h).RetryAfter)
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("sync source: %w", Classify(http.StatusNotFound, nil, nil))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsAuthentication(wrapped))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindGeneric, KindOf(errors.New("plain")))

	pe, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, pe.Code())

	assert.True(t, IsRateLimit(Classify(429, nil, nil)))
	assert.True(t, IsValidation(Classify(400, nil, nil)))
	assert.True(t, IsServer(Classify(502, nil, nil)))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "rate_limit", KindRateLimit.String())
	assert.Equal(t, "generic", KindGeneric.String())
}
