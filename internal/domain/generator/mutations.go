package generator

import (
	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
)

// MutationKind enumerates every state transition the store accepts
type MutationKind int

const (
	KindUpdateLink MutationKind = iota
	KindUpdateError
	KindUpdateWithManifest
	KindOverwriteManifest
	KindSetDefaultsManifest
	KindUpdateIcons
	KindAddIcon
	KindAddAssets
	KindResetStates
)

// String returns the wire name of the mutation kind
func (k MutationKind) String() string {
	switch k {
	case KindUpdateLink:
		return "UPDATE_LINK"
	case KindUpdateError:
		return "UPDATE_ERROR"
	case KindUpdateWithManifest:
		return "UPDATE_WITH_MANIFEST"
	case KindOverwriteManifest:
		return "OVERRIDE_MANIFEST"
	case KindSetDefaultsManifest:
		return "SET_DEFAULTS_MANIFEST"
	case KindUpdateIcons:
		return "UPDATE_ICONS"
	case KindAddIcon:
		return "ADD_ICON"
	case KindAddAssets:
		return "ADD_ASSETS"
	case KindResetStates:
		return "RESET_STATES"
	default:
		return "UNKNOWN"
	}
}

// Mutation is a synchronous transformation of the workflow state.
// The set is closed: only types in this package implement it.
type Mutation interface {
	Kind() MutationKind
	apply(s *types.State)
}

// UpdateLink stores a validated site URL and clears any error
type UpdateLink struct {
	URL string
}

// UpdateError records a user facing error message
type UpdateError struct {
	Message string
}

// UpdateWithManifest installs a freshly generated manifest and its diagnostics
type UpdateWithManifest struct {
	Result *types.ManifestResult
}

// OverwriteManifest replaces manifest and icons after image regeneration.
// The manifest id is kept.
type OverwriteManifest struct {
	Result *types.GeneratedImages
}

// SetDefaultsManifest fills unset manifest members from the mode catalog
type SetDefaultsManifest struct {
	DefaultDisplay     string
	DefaultOrientation string
}

// UpdateIcons replaces the icon list
type UpdateIcons struct {
	Icons []types.Icon
}

// AddIcon appends one icon
type AddIcon struct {
	Icon types.Icon
}

// AddAssets replaces the generated assets
type AddAssets struct {
	Assets []types.Asset
}

// ResetStates returns the session to its initial state. Assets survive.
type ResetStates struct{}

func (UpdateLink) Kind() MutationKind          { return KindUpdateLink }
func (UpdateError) Kind() MutationKind         { return KindUpdateError }
func (UpdateWithManifest) Kind() MutationKind  { return KindUpdateWithManifest }
func (OverwriteManifest) Kind() MutationKind   { return KindOverwriteManifest }
func (SetDefaultsManifest) Kind() MutationKind { return KindSetDefaultsManifest }
func (UpdateIcons) Kind() MutationKind         { return KindUpdateIcons }
func (AddIcon) Kind() MutationKind             { return KindAddIcon }
func (AddAssets) Kind() MutationKind           { return KindAddAssets }
func (ResetStates) Kind() MutationKind         { return KindResetStates }

func (m UpdateLink) apply(s *types.State) {
	s.URL = types.String(m.URL)
	s.Error = nil
}

func (m UpdateError) apply(s *types.State) {
	s.Error = types.String(m.Message)
}

func (m UpdateWithManifest) apply(s *types.State) {
	r := m.Result
	// a manifest id is only ever stored alongside its manifest
	if r == nil || r.Content == nil {
		return
	}

	s.Manifest = r.Content.Manifest.Clone()
	icons := r.Content.Icons
	s.ManifestID = types.String(r.ID)
	s.SiteServiceWorkers = r.SiteServiceWorkers

	base := s.Manifest.StartURLOrEmpty()
	if base == "" && s.URL != nil {
		base = *s.URL
	}
	s.Icons = NormalizeIcons(icons, base)

	s.Suggestions = r.Suggestions
	s.Warnings = r.Warnings
	s.Errors = r.Errors
}

func (m OverwriteManifest) apply(s *types.State) {
	r := m.Result
	if r == nil || r.Content == nil {
		return
	}

	s.Manifest = r.Content.Manifest.Clone()
	s.Icons = append([]types.Icon{}, r.Content.Icons...)
}

func (m SetDefaultsManifest) apply(s *types.State) {
	if s.Manifest == nil {
		return
	}

	if s.Manifest.Lang == nil {
		s.Manifest.Lang = types.String("")
	}
	if s.Manifest.Display == "" {
		s.Manifest.Display = m.DefaultDisplay
	}
	if s.Manifest.Orientation == nil || *s.Manifest.Orientation == "" {
		s.Manifest.Orientation = types.String(m.DefaultOrientation)
	}
}

func (m UpdateIcons) apply(s *types.State) {
	s.Icons = append([]types.Icon{}, m.Icons...)
}

func (m AddIcon) apply(s *types.State) {
	s.Icons = append(s.Icons, m.Icon)
}

func (m AddAssets) apply(s *types.State) {
	s.Assets = m.Assets
}

func (ResetStates) apply(s *types.State) {
	assets := s.Assets
	*s = types.NewState()
	s.Assets = assets
}
