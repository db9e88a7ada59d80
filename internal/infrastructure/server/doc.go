// Package server exposes a generator session over HTTP.
//
// Routes are registered by the api packages; this package only chooses the
// middleware order, mounts the websocket stream and the Prometheus endpoint,
// and owns the listener lifecycle.
package server
