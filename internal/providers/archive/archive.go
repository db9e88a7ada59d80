// Package archive bundles a generated manifest and its assets into a zip.
package archive

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/zip"
)

// ManifestFile is the archive entry holding the manifest
const ManifestFile = "manifest.json"

// ErrNothingToExport is returned when the state holds no manifest
var ErrNothingToExport = errors.New("no manifest to export")

// Write streams manifest.json followed by every asset into w
func Write(w io.Writer, state types.State) error {
	if state.Manifest == nil {
		return ErrNothingToExport
	}

	zw := zip.NewWriter(w)
	modified := time.Now()

	data, err := sonic.ConfigStd.MarshalIndent(state.ManifestContent(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := writeEntry(zw, ManifestFile, data, modified); err != nil {
		return err
	}

	seen := map[string]int{ManifestFile: 1}
	for i, asset := range state.Assets {
		name := uniqueName(seen, entryName(asset, i))
		if err := writeEntry(zw, name, asset.Data, modified); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte, modified time.Time) error {
	f, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// entryName keeps the asset's base name, deriving an extension from the
// content when the backend sent none
func entryName(asset types.Asset, index int) string {
	name := path.Base(strings.ReplaceAll(asset.Filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "asset-" + strconv.Itoa(index+1)
	}
	if path.Ext(name) == "" {
		name += mimetype.Detect(asset.Data).Extension()
	}
	return name
}

// uniqueName returns name, or name with a -N suffix, never handing out an
// entry name twice
func uniqueName(seen map[string]int, name string) string {
	if seen[name] == 0 {
		seen[name] = 1
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := seen[name] + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if seen[candidate] == 0 {
			seen[name] = n
			seen[candidate] = 1
			return candidate
		}
	}
}
