// Package http exposes the manifest generator workflow as a JSON API.
//
// Endpoints:
//   - State: GET /state, POST /reset
//   - Link: POST /link, POST /manifest
//   - Icons: POST /icons, POST /icons/remove, POST /icons/upload
//   - Images: POST /images/missing, GET /assets.zip
//   - Catalog: GET /catalog
//   - Ops: GET /health, POST /logs
//
// Every mutating endpoint answers with the resulting state, so a UI can
// render straight from the response. Validation problems arrive inside the
// state (state.error) with status 200; backend failures use 4xx/5xx with
// {"error": ..., "state": ...}.
//
// Example Usage:
//
//	handlers := http.NewHandlers(gen, catalog.Default(), metrics, logger)
//	handlers.Register(router)
package http
