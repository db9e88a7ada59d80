package image

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/GriffinCanCode/manifestgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	data map[string][]byte
	urls []string
}

func (f *stubFetcher) Fetch(ctx context.Context, url string, maxBytes int64) ([]byte, error) {
	f.urls = append(f.urls, url)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a deadline")
	}
	data, ok := f.data[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func TestMeasureImageRemote(t *testing.T) {
	fetcher := &stubFetcher{data: map[string][]byte{
		"https://ex.com/icon.png": testutil.PNG(t, 48, 24),
	}}
	inspector := NewInspector(Config{Timeout: time.Second}, fetcher, nil)

	dims, err := inspector.MeasureImage(context.Background(), "https://ex.com/icon.png")
	require.NoError(t, err)
	assert.Equal(t, types.Dimensions{Width: 48, Height: 24}, dims)

	_, err = inspector.MeasureImage(context.Background(), "https://ex.com/missing.png")
	assert.Error(t, err)
}

func TestMeasureImageDataURI(t *testing.T) {
	inspector := NewInspector(Config{}, nil, nil)
	src := EncodeDataURI("image/png", testutil.PNG(t, 16, 16))

	dims, err := inspector.MeasureImage(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, types.Dimensions{Width: 16, Height: 16}, dims)
}

func TestMeasureImageHeadless(t *testing.T) {
	fetcher := &stubFetcher{}
	inspector := NewInspector(Config{Headless: true}, fetcher, nil)

	dims, err := inspector.MeasureImage(context.Background(), "https://ex.com/icon.png")
	require.NoError(t, err)
	assert.Equal(t, types.Dimensions{}, dims)
	assert.Empty(t, fetcher.urls)
}

func TestMeasureImageSizeCap(t *testing.T) {
	inspector := NewInspector(Config{MaxBytes: 10}, nil, nil)
	src := EncodeDataURI("image/png", testutil.PNG(t, 8, 8))

	_, err := inspector.MeasureImage(context.Background(), src)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestMeasureImageWithoutFetcher(t *testing.T) {
	inspector := NewInspector(Config{}, nil, nil)
	_, err := inspector.MeasureImage(context.Background(), "https://ex.com/a.png")
	assert.Error(t, err)
}

func TestReadFileAsDataURI(t *testing.T) {
	inspector := NewInspector(Config{}, nil, nil)
	pngData := testutil.PNG(t, 4, 4)

	uri, err := inspector.ReadFileAsDataURI(context.Background(), types.NewMemoryFile("icon.png", pngData))
	require.NoError(t, err)
	assert.Contains(t, uri, "data:image/png;base64,")

	mediaType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, pngData, data)

	t.Run("size cap", func(t *testing.T) {
		small := NewInspector(Config{MaxBytes: 8}, nil, nil)
		_, err := small.ReadFileAsDataURI(context.Background(), types.NewMemoryFile("icon.png", pngData))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := inspector.ReadFileAsDataURI(ctx, types.NewMemoryFile("icon.png", pngData))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := inspector.ReadFileAsDataURI(context.Background(), types.NewLocalFile("/nonexistent/icon.png"))
		assert.Error(t, err)
	})
}
