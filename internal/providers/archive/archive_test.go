package archive

import (
	"bytes"
	"io"
	"testing"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/GriffinCanCode/manifestgen/internal/testutil"
	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = body
	}
	return files
}

func TestWrite(t *testing.T) {
	pngData := testutil.PNG(t, 2, 2)
	state := types.NewState()
	state.Manifest = &types.Manifest{Name: types.String("Example"), Display: "standalone"}
	state.Icons = []types.Icon{{Src: "https://ex.com/icon.png", Sizes: "192x192"}}
	state.Assets = []types.Asset{
		{Filename: "icons/512.png", Data: []byte("a")},
		{Filename: "512.png", Data: []byte("b")},
		{Filename: "splash", Data: pngData},
		{Filename: "", Data: []byte("c")},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, state))
	files := readArchive(t, buf.Bytes())

	require.Contains(t, files, ManifestFile)
	var content types.ManifestContent
	require.NoError(t, sonic.Unmarshal(files[ManifestFile], &content))
	assert.Equal(t, "Example", *content.Name)
	assert.Equal(t, state.Icons, content.Icons)

	assert.Equal(t, []byte("a"), files["512.png"])
	assert.Equal(t, []byte("b"), files["512-2.png"])
	assert.Equal(t, pngData, files["splash.png"])
	assert.Equal(t, []byte("c"), files["asset-4.txt"])
}

func TestWriteWithoutManifest(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, types.NewState()), ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestWriteNeverRepeatsEntryNames(t *testing.T) {
	state := types.NewState()
	state.Manifest = &types.Manifest{Display: "standalone"}
	state.Assets = []types.Asset{
		{Filename: "a.png", Data: []byte("1")},
		{Filename: "a.png", Data: []byte("2")},
		{Filename: "a-2.png", Data: []byte("3")},
		{Filename: "a.png", Data: []byte("4")},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, state))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{ManifestFile, "a.png", "a-2.png", "a-2-2.png", "a-3.png"}, names)

	files := readArchive(t, buf.Bytes())
	assert.Equal(t, []byte("3"), files["a-2-2.png"])
	assert.Equal(t, []byte("4"), files["a-3.png"])
}

func TestUniqueName(t *testing.T) {
	seen := map[string]int{ManifestFile: 1}
	assert.Equal(t, "manifest-2.json", uniqueName(seen, ManifestFile))
	assert.Equal(t, "x", uniqueName(seen, "x"))
	assert.Equal(t, "x-2", uniqueName(seen, "x"))
	assert.Equal(t, "x-2-2", uniqueName(seen, "x-2"))
	assert.Equal(t, "x-3", uniqueName(seen, "x"))
}
