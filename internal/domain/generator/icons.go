package generator

import (
	"strconv"
	"strings"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
)

// NormalizeIcons prefixes baseURL onto every icon src that does not already
// contain "http". The result is a new slice in the same order; applying it
// twice is the same as applying it once.
func NormalizeIcons(icons []types.Icon, baseURL string) []types.Icon {
	out := make([]types.Icon, len(icons))
	for i, icon := range icons {
		if !strings.Contains(icon.Src, "http") {
			icon.Src = baseURL + icon.Src
		}
		out[i] = icon
	}
	return out
}

// FormatSizes renders pixel dimensions the way manifests declare them
func FormatSizes(d types.Dimensions) string {
	return strconv.Itoa(d.Width) + "x" + strconv.Itoa(d.Height)
}

func removeIcon(icons []types.Icon, src string) ([]types.Icon, bool) {
	for i, icon := range icons {
		if icon.Src == src {
			out := make([]types.Icon, 0, len(icons)-1)
			out = append(out, icons[:i]...)
			return append(out, icons[i+1:]...), true
		}
	}
	return nil, false
}
