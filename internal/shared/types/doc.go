// Package types provides the shared data model of the manifest generator.
//
// Core Types:
//   - Manifest, ManifestContent: the web app manifest under edit
//   - Icon: image reference with declared "WxH" sizes
//   - Asset: generated binary returned by the missing-images call
//   - State: the single workflow record owned by the generator store
//
// Transport Types:
//   - ManifestRequest, ManifestResult: manifest generation call
//   - GeneratedImages: missing-images call
//
// Capabilities:
//   - File: user supplied file (disk or memory backed)
//
// Example Usage:
//
//	state := types.NewState()
//	state.Icons = append(state.Icons, types.Icon{Src: "https://x.com/a.png", Sizes: "192x192"})
package types
