// Package client provides the HTTP client used to reach the manifest
// backend and to download remote images.
//
// Built on go-resty/resty with:
//   - a pooled transport from hashicorp/go-retryablehttp (no automatic retries)
//   - per-client rate limiting (golang.org/x/time/rate)
//   - a circuit breaker that ignores 4xx answers
//   - bytedance/sonic as the JSON codec
//
// Errors:
//   - *ResponseError: the server answered with a non-2xx status
//   - *PayloadError: a 2xx answer that does not match the expected schema
//   - resilience.ErrCircuitOpen: wrapped when the breaker rejects a call
//
// Example Usage:
//
//	c := client.NewClient(client.Config{Timeout: 30 * time.Second})
//	manifests := client.NewManifestService(c, cfg.API.ManifestsEndpoint())
//	result, err := manifests.FetchManifest(ctx, "https://example.com")
package client
