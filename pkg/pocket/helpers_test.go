package pocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testAPIKey = "pk_test_123"

// recordingSleeper captures backoff delays instead of sleeping.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func (s *recordingSleeper) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newTestPocket(t *testing.T, baseURL string, retries int) (*Pocket, *recordingSleeper) {
	t.Helper()
	sleeper := &recordingSleeper{}
	cfg := DefaultConfig(testAPIKey, baseURL)
	cfg.RetryTimes = retries
	cfg.Timeout = 5 * time.Second
	p, err := New(cfg, WithSleeper(sleeper.Sleep))
	require.NoError(t, err)
	return p, sleeper
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
