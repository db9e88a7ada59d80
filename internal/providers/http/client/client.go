package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/resilience"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// Config configures a Client
type Config struct {
	Name            string
	Timeout         time.Duration
	UserAgent       string
	RateLimitRPS    float64
	BreakerFailures uint32
}

// Client wraps resty with rate limiting and a circuit breaker
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Breaker *resilience.Breaker
	Mu      sync.RWMutex

	metrics *monitoring.Metrics
}

// NewClient creates an HTTP client with circuit breaker protection
func NewClient(cfg Config) *Client {
	if cfg.Name == "" {
		cfg.Name = "http-external"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "manifestgen/1.0"
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}

	// Only the pooled transport is borrowed; retries stay off
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	breaker := resilience.New(cfg.Name, resilience.Settings{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		ReadyToTrip:  resilience.ConsecutiveFailures(cfg.BreakerFailures),
		IsSuccessful: isHealthyAnswer,
	})

	c := &Client{
		Resty:   restyClient,
		Limiter: rate.NewLimiter(rate.Inf, 0),
		Breaker: breaker,
	}
	c.SetRateLimit(cfg.RateLimitRPS)
	return c
}

// WithMetrics adds backend call tracking to the client
func (c *Client) WithMetrics(metrics *monitoring.Metrics) *Client {
	c.metrics = metrics
	return c
}

// SetHeader adds default header
func (c *Client) SetHeader(key, value string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetHeader(key, value)
}

// SetTimeout configures request timeout
func (c *Client) SetTimeout(duration time.Duration) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetTimeout(duration)
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// Request creates new request with rate limiting and circuit breaker protection
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if c.Breaker.State() == resilience.StateOpen {
		return nil, resilience.ErrCircuitOpen
	}

	c.Mu.RLock()
	limiter := c.Limiter
	c.Mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Resty.R().SetContext(ctx), nil
}

// Do runs send under the circuit breaker. Non-2xx answers come back as
// *ResponseError; endpoint labels the call in metrics.
func (c *Client) Do(ctx context.Context, endpoint string, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	start := time.Now()

	var resp *resty.Response
	err := c.Breaker.Execute(func() error {
		req, err := c.Request(ctx)
		if err != nil {
			return abortedBy(ctx, err)
		}
		resp, err = send(req)
		if err != nil {
			return abortedBy(ctx, fmt.Errorf("%s request failed: %w", endpoint, err))
		}
		if resp.IsError() {
			return newResponseError(resp.StatusCode(), resp.Body())
		}
		return nil
	})

	c.record(endpoint, err, time.Since(start))

	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s unavailable: %w", endpoint, err)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Fetch downloads url reading at most maxBytes of body
func (c *Client) Fetch(ctx context.Context, url string, maxBytes int64) ([]byte, error) {
	var data []byte
	start := time.Now()

	err := c.Breaker.Execute(func() error {
		req, err := c.Request(ctx)
		if err != nil {
			return abortedBy(ctx, err)
		}

		resp, err := req.SetDoNotParseResponse(true).Get(url)
		if err != nil {
			return abortedBy(ctx, fmt.Errorf("fetch %s: %w", url, err))
		}
		body := resp.RawBody()
		defer body.Close()

		if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
			return newResponseError(resp.StatusCode(), nil)
		}

		data, err = io.ReadAll(io.LimitReader(body, maxBytes+1))
		if err != nil {
			return abortedBy(ctx, fmt.Errorf("read %s: %w", url, err))
		}
		if int64(len(data)) > maxBytes {
			return &PayloadError{Endpoint: url, Reason: fmt.Sprintf("body exceeds %d bytes", maxBytes)}
		}
		return nil
	})

	c.record("fetch", err, time.Since(start))

	if err != nil {
		return nil, err
	}
	return data, nil
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.Breaker.State()
}

// BreakerCounts returns circuit breaker statistics
func (c *Client) BreakerCounts() resilience.Counts {
	return c.Breaker.Counts()
}

func (c *Client) record(endpoint string, err error, duration time.Duration) {
	if c.metrics == nil {
		return
	}
	status := monitoring.StatusSuccess
	if err != nil {
		status = monitoring.StatusError
	}
	c.metrics.RecordBackendCall(endpoint, status, duration)
}

// isHealthyAnswer keeps client errors (4xx) and calls abandoned by the
// caller from tripping the breaker
func isHealthyAnswer(err error) bool {
	if err == nil {
		return true
	}
	var aborted *callerAbort
	if errors.As(err, &aborted) || errors.Is(err, context.Canceled) {
		return true
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode < http.StatusInternalServerError
	}
	var payloadErr *PayloadError
	return errors.As(err, &payloadErr)
}
