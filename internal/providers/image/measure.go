package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/PuerkitoBio/goquery"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for content that is not a known image format
var ErrUnsupported = errors.New("unsupported image format")

const svgMediaType = "image/svg+xml"

// Measure reads the pixel size from encoded image data
func Measure(data []byte) (types.Dimensions, error) {
	if mediaType(data) == svgMediaType {
		return measureSVG(data)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return types.Dimensions{}, ErrUnsupported
		}
		return types.Dimensions{}, fmt.Errorf("decode image header: %w", err)
	}
	return types.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

func measureSVG(data []byte) (types.Dimensions, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return types.Dimensions{}, fmt.Errorf("parse svg: %w", err)
	}

	svg := doc.Find("svg").First()
	if svg.Length() == 0 {
		return types.Dimensions{}, ErrUnsupported
	}

	width, wok := parseLength(svg.AttrOr("width", ""))
	height, hok := parseLength(svg.AttrOr("height", ""))
	if wok && hok {
		return types.Dimensions{Width: width, Height: height}, nil
	}

	// the HTML parser restores the SVG casing of viewBox; plain lowercase
	// is still accepted from hand-written markup
	viewBox, ok := svg.Attr("viewBox")
	if !ok {
		viewBox = svg.AttrOr("viewbox", "")
	}
	if vw, vh, ok := parseViewBox(viewBox); ok {
		switch {
		case wok:
			height = width * vh / vw
		case hok:
			width = height * vw / vh
		default:
			width, height = vw, vh
		}
		return types.Dimensions{Width: width, Height: height}, nil
	}

	return types.Dimensions{}, fmt.Errorf("svg has no usable size")
}

func parseLength(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasSuffix(v, "%") {
		return 0, false
	}
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return int(f + 0.5), true
}

func parseViewBox(v string) (int, int, bool) {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, err1 := strconv.ParseFloat(fields[2], 64)
	h, err2 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return int(w + 0.5), int(h + 0.5), true
}
