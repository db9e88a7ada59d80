package types

// Manifest is the web app manifest under edit. Optional members are nil
// when the backend left them out.
type Manifest struct {
	BackgroundColor           *string  `json:"background_color"`
	Description               *string  `json:"description"`
	Dir                       *string  `json:"dir"`
	Display                   string   `json:"display"`
	Lang                      *string  `json:"lang"`
	Name                      *string  `json:"name"`
	Orientation               *string  `json:"orientation"`
	PreferRelatedApplications bool     `json:"prefer_related_applications"`
	RelatedApplications       []string `json:"related_applications"`
	Scope                     *string  `json:"scope"`
	ShortName                 *string  `json:"short_name"`
	StartURL                  *string  `json:"start_url"`
	ThemeColor                *string  `json:"theme_color"`
}

// ManifestContent is the manifest payload the backend returns, icons included
type ManifestContent struct {
	Manifest
	Icons []Icon `json:"icons"`
}

// Icon references one image with its declared pixel size ("WxH")
type Icon struct {
	Src       string `json:"src"`
	Sizes     string `json:"sizes"`
	Generated bool   `json:"generated,omitempty"`
}

// Asset is a binary artifact produced by the missing-images round-trip.
// Data travels base64 encoded in JSON.
type Asset struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// Dimensions holds natural image size in pixels
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Mode is one selectable catalog entry (display mode, orientation, language)
type Mode struct {
	Code string `json:"code" yaml:"code" toml:"code"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

// StartURLOrEmpty returns the manifest start_url, or "" when unset
func (m *Manifest) StartURLOrEmpty() string {
	if m == nil || m.StartURL == nil {
		return ""
	}
	return *m.StartURL
}

// Clone returns a deep copy of the manifest
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}
	c := *m
	c.BackgroundColor = cloneString(m.BackgroundColor)
	c.Description = cloneString(m.Description)
	c.Dir = cloneString(m.Dir)
	c.Lang = cloneString(m.Lang)
	c.Name = cloneString(m.Name)
	c.Orientation = cloneString(m.Orientation)
	c.Scope = cloneString(m.Scope)
	c.ShortName = cloneString(m.ShortName)
	c.StartURL = cloneString(m.StartURL)
	c.ThemeColor = cloneString(m.ThemeColor)
	if m.RelatedApplications != nil {
		c.RelatedApplications = append([]string(nil), m.RelatedApplications...)
	}
	return &c
}

// String returns a pointer to s
func String(s string) *string {
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
