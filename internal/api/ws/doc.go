// Package ws streams workflow state to browser clients over WebSocket.
//
// On connect the client receives the current state, then one message per
// committed mutation.
//
// Message Types (Server → Client):
//   - state: {type, mutation, state}; mutation is empty for the initial snapshot
//   - pong: reply to a ping
//   - error: unknown client message
//
// Message Types (Client → Server):
//   - ping: keep-alive
//
// Slow clients do not block the store: each connection has a bounded queue
// and is dropped when it overflows.
//
// Example Usage:
//
//	handler := ws.NewHandler(gen.Store(), metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
