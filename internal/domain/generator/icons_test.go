package generator

import (
	"testing"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeIcons(t *testing.T) {
	icons := []types.Icon{{Src: "/a.png", Sizes: "48x48"}}

	normalized := NormalizeIcons(icons, "https://x.com/")
	assert.Equal(t, []types.Icon{{Src: "https://x.com//a.png", Sizes: "48x48"}}, normalized)

	// input untouched
	assert.Equal(t, "/a.png", icons[0].Src)

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, normalized, NormalizeIcons(normalized, "https://x.com/"))
	})

	t.Run("absolute sources untouched", func(t *testing.T) {
		in := []types.Icon{{Src: "http://cdn.x.com/b.png"}, {Src: "c.png"}}
		out := NormalizeIcons(in, "https://x.com/")
		assert.Equal(t, "http://cdn.x.com/b.png", out[0].Src)
		assert.Equal(t, "https://x.com/c.png", out[1].Src)
	})

	t.Run("nil input yields empty list", func(t *testing.T) {
		out := NormalizeIcons(nil, "https://x.com/")
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestFormatSizes(t *testing.T) {
	assert.Equal(t, "192x96", FormatSizes(types.Dimensions{Width: 192, Height: 96}))
	assert.Equal(t, "0x0", FormatSizes(types.Dimensions{}))
}

func TestRemoveIconHelper(t *testing.T) {
	icons := []types.Icon{{Src: "a"}, {Src: "b"}, {Src: "a"}}

	out, ok := removeIcon(icons, "a")
	assert.True(t, ok)
	assert.Equal(t, []types.Icon{{Src: "b"}, {Src: "a"}}, out)
	assert.Len(t, icons, 3)

	_, ok = removeIcon(icons, "z")
	assert.False(t, ok)
}
