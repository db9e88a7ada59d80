package types

import "encoding/json"

// ManifestResult is the body of a successful manifest generation call
type ManifestResult struct {
	Content            *ManifestContent `json:"content"`
	ID                 string           `json:"id"`
	SiteServiceWorkers json.RawMessage  `json:"siteServiceWorkers"`
	Suggestions        []string         `json:"suggestions"`
	Warnings           []string         `json:"warnings"`
	Errors             []string         `json:"errors"`
}

// GeneratedImages is the body of a successful missing-images call
type GeneratedImages struct {
	Content *ManifestContent `json:"content"`
	Assets  []Asset          `json:"assets"`
}

// ManifestRequest is the body sent to the manifest generation endpoint
type ManifestRequest struct {
	SiteURL string `json:"siteUrl"`
}
