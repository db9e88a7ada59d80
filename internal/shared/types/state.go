package types

import "encoding/json"

// State is the whole workflow record for one session. Only mutations
// committed through the generator store may change it.
type State struct {
	URL                *string         `json:"url"`
	Error              *string         `json:"error"`
	Manifest           *Manifest       `json:"manifest"`
	ManifestID         *string         `json:"manifestId"`
	SiteServiceWorkers json.RawMessage `json:"siteServiceWorkers"`
	Icons              []Icon          `json:"icons"`
	Suggestions        []string        `json:"suggestions"`
	Warnings           []string        `json:"warnings"`
	Errors             []string        `json:"errors"`
	Assets             []Asset         `json:"assets"`
}

// NewState returns the initial empty state
func NewState() State {
	return State{Icons: []Icon{}}
}

// Clone returns a deep copy safe to hand out of the store
func (s State) Clone() State {
	c := State{
		URL:        cloneString(s.URL),
		Error:      cloneString(s.Error),
		Manifest:   s.Manifest.Clone(),
		ManifestID: cloneString(s.ManifestID),
		Icons:      append([]Icon{}, s.Icons...),
	}
	if s.SiteServiceWorkers != nil {
		c.SiteServiceWorkers = append(json.RawMessage(nil), s.SiteServiceWorkers...)
	}
	if s.Suggestions != nil {
		c.Suggestions = append([]string{}, s.Suggestions...)
	}
	if s.Warnings != nil {
		c.Warnings = append([]string{}, s.Warnings...)
	}
	if s.Errors != nil {
		c.Errors = append([]string{}, s.Errors...)
	}
	if s.Assets != nil {
		c.Assets = make([]Asset, len(s.Assets))
		for i, a := range s.Assets {
			c.Assets[i] = Asset{Filename: a.Filename, Data: append([]byte(nil), a.Data...)}
		}
	}
	return c
}

// ManifestContent joins the manifest with the current icon list, the shape
// written out as manifest.json. It returns nil when no manifest is loaded.
func (s State) ManifestContent() *ManifestContent {
	if s.Manifest == nil {
		return nil
	}
	return &ManifestContent{Manifest: *s.Manifest, Icons: s.Icons}
}
