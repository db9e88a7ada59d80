// Package app assembles one manifest generator session from configuration.
//
// It owns construction order: logger and metrics first, then the mode
// catalog, the backend and image HTTP clients, the image inspector, and
// finally the store and generator. Both the API server and the command
// line runner build on it.
//
// Example Usage:
//
//	a, err := app.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	a.Generator.UpdateLink("example.com")
package app
