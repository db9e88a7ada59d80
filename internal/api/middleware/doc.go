// Package middleware provides HTTP middleware for the state API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing for browser front ends
//   - RateLimit: Per-IP token bucket rate limiting with idle cleanup
//   - RequestID: X-Request-ID propagation
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
