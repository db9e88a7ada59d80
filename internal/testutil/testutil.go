// Package testutil provides mocks and fixtures shared by package tests.
package testutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of the manifest backend.
type MockBackend struct {
	mock.Mock
}

// FetchManifest mocks the FetchManifest method.
func (m *MockBackend) FetchManifest(ctx context.Context, siteURL string) (*types.ManifestResult, error) {
	args := m.Called(ctx, siteURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ManifestResult), args.Error(1)
}

// GenerateMissingImages mocks the GenerateMissingImages method.
func (m *MockBackend) GenerateMissingImages(ctx context.Context, manifestID string, file types.File) (*types.GeneratedImages, error) {
	args := m.Called(ctx, manifestID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeneratedImages), args.Error(1)
}

// MockInspector is a mock implementation of the image inspector.
type MockInspector struct {
	mock.Mock
}

// MeasureImage mocks the MeasureImage method.
func (m *MockInspector) MeasureImage(ctx context.Context, src string) (types.Dimensions, error) {
	args := m.Called(ctx, src)
	return args.Get(0).(types.Dimensions), args.Error(1)
}

// ReadFileAsDataURI mocks the ReadFileAsDataURI method.
func (m *MockInspector) ReadFileAsDataURI(ctx context.Context, file types.File) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

// NewMockInspector creates an inspector that measures every image as size x size.
func NewMockInspector(t *testing.T, size int) *MockInspector {
	t.Helper()
	m := new(MockInspector)

	m.On("MeasureImage", mock.Anything, mock.Anything).
		Return(types.Dimensions{Width: size, Height: size}, nil).
		Maybe()

	return m
}

// StaticModes is a fixed display/orientation default pair.
type StaticModes struct {
	Display     string
	Orientation string
}

// DefaultDisplay returns the display default.
func (s StaticModes) DefaultDisplay() string { return s.Display }

// DefaultOrientation returns the orientation default.
func (s StaticModes) DefaultOrientation() string { return s.Orientation }

// CreateTestResult creates the backend response used across workflow tests.
func CreateTestResult(t *testing.T) *types.ManifestResult {
	t.Helper()

	return &types.ManifestResult{
		Content: &types.ManifestContent{
			Manifest: types.Manifest{
				Name:     types.String("Example"),
				StartURL: types.String("https://ex.com/"),
				Display:  "",
			},
			Icons: []types.Icon{{Src: "icon.png", Sizes: "192x192"}},
		},
		ID:          "m1",
		Suggestions: []string{},
		Warnings:    []string{"w1"},
		Errors:      []string{},
	}
}

// PNG encodes a solid square PNG of the given size.
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
