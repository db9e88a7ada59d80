// Command manifestgen builds web app manifests for a site.
//
// Usage:
//
//	manifestgen serve                       # HTTP + websocket API
//	manifestgen generate https://example.com --out ./dist
//
// Configuration comes from the environment (API_URL, LOG_LEVEL, ...).
package main
