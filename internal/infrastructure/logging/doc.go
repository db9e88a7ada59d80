// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Logs go to stderr by default so the generate command can write results
// to stdout.
//
// Example Usage:
//
//	logger := logging.FromConfig(cfg.Logging.Level, cfg.Logging.Development)
//	logger.Info("Fetching manifest", zap.String("site_url", url))
//	logger.Warn("Backend call failed", zap.Error(err))
package logging
