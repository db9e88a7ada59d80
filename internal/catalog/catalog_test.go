package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "fullscreen", c.DefaultDisplay())
	assert.Equal(t, "any", c.DefaultOrientation())
	assert.Len(t, c.Displays(), 4)
	assert.NotEmpty(t, c.Languages())
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()

	displays := c.Displays()
	displays[0].Name = "mutated"

	assert.Equal(t, "fullscreen", c.DefaultDisplay())
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
displays:
  - code: standalone
    name: standalone
orientations: []
`)
	c, err := Parse(data, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "standalone", c.DefaultDisplay())
	assert.Equal(t, "", c.DefaultOrientation())
	assert.Empty(t, c.Languages())
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[[displays]]
code = "minimal-ui"
name = "minimal-ui"

[[orientations]]
code = "portrait"
name = "portrait"
`)
	c, err := Parse(data, FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "minimal-ui", c.DefaultDisplay())
	assert.Equal(t, "portrait", c.DefaultOrientation())
}

func TestParseRejectsNamelessModes(t *testing.T) {
	_, err := Parse([]byte("displays:\n  - code: x\n"), FormatYAML)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("displays:\n  - {code: browser, name: browser}\n"), 0o644))

	c, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "browser", c.DefaultDisplay())

	c, err = Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), c)

	_, err = Load(filepath.Join(dir, "catalog.json"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
