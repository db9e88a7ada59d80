package generator

import (
	"encoding/json"
	"testing"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationKindNames(t *testing.T) {
	tests := []struct {
		m    Mutation
		name string
	}{
		{UpdateLink{}, "UPDATE_LINK"},
		{UpdateError{}, "UPDATE_ERROR"},
		{UpdateWithManifest{}, "UPDATE_WITH_MANIFEST"},
		{OverwriteManifest{}, "OVERRIDE_MANIFEST"},
		{SetDefaultsManifest{}, "SET_DEFAULTS_MANIFEST"},
		{UpdateIcons{}, "UPDATE_ICONS"},
		{AddIcon{}, "ADD_ICON"},
		{AddAssets{}, "ADD_ASSETS"},
		{ResetStates{}, "RESET_STATES"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.m.Kind().String())
	}
	assert.Equal(t, "UNKNOWN", MutationKind(99).String())
}

func TestUpdateLinkClearsError(t *testing.T) {
	s := types.NewState()
	UpdateError{Message: "boom"}.apply(&s)
	require.NotNil(t, s.Error)

	UpdateLink{URL: "https://a.com"}.apply(&s)
	assert.Nil(t, s.Error)
	assert.Equal(t, "https://a.com", *s.URL)
}

func TestUpdateWithManifest(t *testing.T) {
	t.Run("normalizes against start_url", func(t *testing.T) {
		s := types.NewState()
		UpdateWithManifest{Result: &types.ManifestResult{
			Content: &types.ManifestContent{
				Manifest: types.Manifest{StartURL: types.String("https://ex.com/")},
				Icons:    []types.Icon{{Src: "icon.png"}},
			},
			ID:                 "m1",
			SiteServiceWorkers: json.RawMessage(`[{"id":1}]`),
			Warnings:           []string{"w1"},
		}}.apply(&s)

		require.NotNil(t, s.Manifest)
		assert.Equal(t, "m1", *s.ManifestID)
		assert.Equal(t, []types.Icon{{Src: "https://ex.com/icon.png"}}, s.Icons)
		assert.Equal(t, []string{"w1"}, s.Warnings)
		assert.Nil(t, s.Suggestions)
		assert.JSONEq(t, `[{"id":1}]`, string(s.SiteServiceWorkers))
	})

	t.Run("falls back to session url", func(t *testing.T) {
		s := types.NewState()
		UpdateLink{URL: "https://site.com/"}.apply(&s)
		UpdateWithManifest{Result: &types.ManifestResult{
			Content: &types.ManifestContent{Icons: []types.Icon{{Src: "i.png"}}},
			ID:      "m2",
		}}.apply(&s)

		assert.Equal(t, "https://site.com/i.png", s.Icons[0].Src)
	})

	t.Run("no icons gives empty list", func(t *testing.T) {
		s := types.NewState()
		UpdateWithManifest{Result: &types.ManifestResult{Content: &types.ManifestContent{}, ID: "m3"}}.apply(&s)
		assert.NotNil(t, s.Icons)
		assert.Empty(t, s.Icons)
	})

	t.Run("missing content leaves state untouched", func(t *testing.T) {
		s := types.NewState()
		UpdateLink{URL: "https://site.com/"}.apply(&s)
		before := s.Clone()

		UpdateWithManifest{Result: &types.ManifestResult{ID: "m4", Warnings: []string{"w"}}}.apply(&s)

		assert.Nil(t, s.Manifest)
		assert.Nil(t, s.ManifestID)
		assert.Equal(t, before, s)
	})
}

func TestOverwriteManifestKeepsID(t *testing.T) {
	s := types.NewState()
	UpdateWithManifest{Result: &types.ManifestResult{Content: &types.ManifestContent{}, ID: "m1"}}.apply(&s)

	OverwriteManifest{Result: &types.GeneratedImages{
		Content: &types.ManifestContent{
			Manifest: types.Manifest{Name: types.String("New")},
			Icons:    []types.Icon{{Src: "gen.png", Generated: true}},
		},
	}}.apply(&s)

	assert.Equal(t, "m1", *s.ManifestID)
	assert.Equal(t, "New", *s.Manifest.Name)
	assert.Equal(t, []types.Icon{{Src: "gen.png", Generated: true}}, s.Icons)

	t.Run("nil icons become empty list", func(t *testing.T) {
		OverwriteManifest{Result: &types.GeneratedImages{Content: &types.ManifestContent{}}}.apply(&s)
		assert.NotNil(t, s.Icons)
		assert.Empty(t, s.Icons)
	})
}

func TestSetDefaultsManifest(t *testing.T) {
	defaults := SetDefaultsManifest{DefaultDisplay: "fullscreen", DefaultOrientation: "any"}

	t.Run("no manifest is a no-op", func(t *testing.T) {
		s := types.NewState()
		defaults.apply(&s)
		assert.Nil(t, s.Manifest)
	})

	t.Run("fills empty members", func(t *testing.T) {
		s := types.NewState()
		s.Manifest = &types.Manifest{}
		defaults.apply(&s)

		require.NotNil(t, s.Manifest.Lang)
		assert.Equal(t, "", *s.Manifest.Lang)
		assert.Equal(t, "fullscreen", s.Manifest.Display)
		assert.Equal(t, "any", *s.Manifest.Orientation)
	})

	t.Run("keeps set members", func(t *testing.T) {
		s := types.NewState()
		s.Manifest = &types.Manifest{
			Lang:        types.String("en"),
			Display:     "standalone",
			Orientation: types.String("portrait"),
		}
		defaults.apply(&s)

		assert.Equal(t, "en", *s.Manifest.Lang)
		assert.Equal(t, "standalone", s.Manifest.Display)
		assert.Equal(t, "portrait", *s.Manifest.Orientation)
	})
}

func TestResetStatesPreservesAssets(t *testing.T) {
	s := types.NewState()
	UpdateLink{URL: "https://a.com"}.apply(&s)
	UpdateWithManifest{Result: &types.ManifestResult{
		Content:  &types.ManifestContent{Icons: []types.Icon{{Src: "x"}}},
		ID:       "m1",
		Warnings: []string{"w"},
	}}.apply(&s)
	AddAssets{Assets: []types.Asset{{Filename: "a.png", Data: []byte{1}}}}.apply(&s)

	ResetStates{}.apply(&s)

	expected := types.NewState()
	expected.Assets = []types.Asset{{Filename: "a.png", Data: []byte{1}}}
	assert.Equal(t, expected, s)
}

func TestAddIconAndUpdateIcons(t *testing.T) {
	s := types.NewState()
	AddIcon{Icon: types.Icon{Src: "a", Sizes: "1x1"}}.apply(&s)
	AddIcon{Icon: types.Icon{Src: "b", Sizes: "2x2"}}.apply(&s)
	assert.Len(t, s.Icons, 2)

	UpdateIcons{Icons: []types.Icon{{Src: "c"}}}.apply(&s)
	assert.Equal(t, []types.Icon{{Src: "c"}}, s.Icons)

	UpdateIcons{}.apply(&s)
	assert.NotNil(t, s.Icons)
}
