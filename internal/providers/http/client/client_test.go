package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientDefaults(t *testing.T) {
	c := NewClient(Config{})

	require.NotNil(t, c.Resty)
	require.NotNil(t, c.Limiter)
	assert.Equal(t, "http-external", c.Breaker.Name())
	assert.Equal(t, resilience.StateClosed, c.BreakerState())
	assert.Equal(t, 0, c.Resty.RetryCount)
	assert.Equal(t, 30*time.Second, c.Resty.GetClient().Timeout)
}

func TestClientDo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := statusServer(t, http.StatusOK, `{"ok":true}`)
		metrics := monitoring.NewMetrics()
		c := NewClient(Config{}).WithMetrics(metrics)

		resp, err := c.Do(context.Background(), "test", func(r *resty.Request) (*resty.Response, error) {
			return r.Get(srv.URL)
		})
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, resp.String())
		assert.Equal(t, int64(1), metrics.Snapshot().BackendCalls)
	})

	t.Run("non-2xx becomes ResponseError", func(t *testing.T) {
		srv := statusServer(t, http.StatusBadRequest, `{"error":"bad site"}`)
		c := NewClient(Config{})

		_, err := c.Do(context.Background(), "test", func(r *resty.Request) (*resty.Response, error) {
			return r.Get(srv.URL)
		})

		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusBadRequest, respErr.StatusCode)
		assert.Equal(t, "bad site", respErr.UserMessage())
	})

	t.Run("transport error is wrapped", func(t *testing.T) {
		c := NewClient(Config{})
		sentinel := errors.New("connection refused")

		_, err := c.Do(context.Background(), "test", func(r *resty.Request) (*resty.Response, error) {
			return nil, sentinel
		})
		assert.ErrorIs(t, err, sentinel)
	})
}

func TestClientBreaker(t *testing.T) {
	t.Run("4xx answers do not trip", func(t *testing.T) {
		srv := statusServer(t, http.StatusNotFound, "")
		c := NewClient(Config{BreakerFailures: 2})

		for i := 0; i < 5; i++ {
			_, err := c.Do(context.Background(), "test", func(r *resty.Request) (*resty.Response, error) {
				return r.Get(srv.URL)
			})
			require.Error(t, err)
		}
		assert.Equal(t, resilience.StateClosed, c.BreakerState())
	})

	t.Run("5xx answers trip and fail fast", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		c := NewClient(Config{BreakerFailures: 2})

		send := func(r *resty.Request) (*resty.Response, error) { return r.Get(srv.URL) }
		for i := 0; i < 2; i++ {
			_, _ = c.Do(context.Background(), "test", send)
		}
		require.Equal(t, resilience.StateOpen, c.BreakerState())

		_, err := c.Do(context.Background(), "test", send)
		assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("caller deadlines and cancellations do not trip", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(200 * time.Millisecond):
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()
		c := NewClient(Config{BreakerFailures: 2})
		send := func(r *resty.Request) (*resty.Response, error) { return r.Get(srv.URL) }

		for i := 0; i < 5; i++ {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			_, err := c.Do(ctx, "test", send)
			cancel()
			require.Error(t, err)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Fetch(ctx, srv.URL, 10)
		require.Error(t, err)

		assert.Equal(t, resilience.StateClosed, c.BreakerState())
		_, err = c.Do(context.Background(), "test", send)
		assert.NoError(t, err)
	})
}

func TestClientRateLimiting(t *testing.T) {
	c := NewClient(Config{RateLimitRPS: 1})

	req, err := c.Request(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, req)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// burst of one is spent, a cancelled context cannot wait for more
	_, err = c.Request(ctx)
	assert.Error(t, err)
}

func TestClientFetch(t *testing.T) {
	srv := statusServer(t, http.StatusOK, "0123456789")
	c := NewClient(Config{})

	data, err := c.Fetch(context.Background(), srv.URL, 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = c.Fetch(context.Background(), srv.URL, 5)
	var payloadErr *PayloadError
	assert.ErrorAs(t, err, &payloadErr)

	missing := statusServer(t, http.StatusNotFound, "nope")
	_, err = c.Fetch(context.Background(), missing.URL, 10)
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "Not Found", respErr.UserMessage())
}

func TestResponseErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error member", 400, `{"error":"Invalid URL"}`, "Invalid URL"},
		{"raw body", 500, "upstream exploded", "upstream exploded"},
		{"json without error member", 422, `{"detail":"x"}`, `{"detail":"x"}`},
		{"html error page", 502, "<html><body>\n<h1>502 Bad Gateway</h1>\n<hr>nginx</body></html>", "502 Bad Gateway nginx"},
		{"status text", 503, "", "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newResponseError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.want, err.UserMessage())
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
