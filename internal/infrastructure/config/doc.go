// Package config provides 12-factor configuration for the manifest generator.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override individual values.
//
// Configuration Sections:
//   - Server: state API listen address
//   - API: manifest backend base URL, timeout, throttle and breaker
//   - Image: inspector headless mode, timeout and read cap
//   - Catalog: optional display/orientation/language catalog file
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting of the state API
//
// Environment Variables:
//   - PORT, HOST
//   - API_URL, API_TIMEOUT, API_USER_AGENT, API_RATE_LIMIT_RPS, API_BREAKER_FAILURES
//   - IMAGE_HEADLESS, IMAGE_TIMEOUT, IMAGE_MAX_BYTES
//   - CATALOG_PATH
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
