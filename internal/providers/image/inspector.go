package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/logging"
	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// ErrTooLarge is returned when an image or file exceeds the read cap
var ErrTooLarge = errors.New("image exceeds size limit")

// Config configures an Inspector
type Config struct {
	Headless bool
	Timeout  time.Duration
	MaxBytes int64
}

// Fetcher downloads remote images
type Fetcher interface {
	Fetch(ctx context.Context, url string, maxBytes int64) ([]byte, error)
}

// Inspector measures images and reads local files
type Inspector struct {
	cfg     Config
	fetcher Fetcher
	logger  *logging.Logger
}

// NewInspector creates an inspector. fetcher may be nil when only data
// URIs will be measured.
func NewInspector(cfg Config, fetcher Fetcher, logger *logging.Logger) *Inspector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 10 << 20
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Inspector{cfg: cfg, fetcher: fetcher, logger: logger.Named("image")}
}

// MeasureImage returns the natural pixel size of the image at src
func (i *Inspector) MeasureImage(ctx context.Context, src string) (types.Dimensions, error) {
	if i.cfg.Headless {
		return types.Dimensions{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	data, err := i.load(ctx, src)
	if err != nil {
		return types.Dimensions{}, err
	}

	dims, err := Measure(data)
	if err != nil {
		i.logger.Debug("image not measurable", zap.String("src", truncate(src, 80)), zap.Error(err))
		return types.Dimensions{}, err
	}
	return dims, nil
}

// ReadFileAsDataURI reads file and encodes it as a base64 data URI typed
// by content sniffing
func (i *Inspector) ReadFileAsDataURI(ctx context.Context, file types.File) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	r, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", file.Name(), err)
	}
	defer r.Close()

	data, err := i.readLimited(ctx, r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file.Name(), err)
	}

	return EncodeDataURI(mediaType(data), data), nil
}

func (i *Inspector) load(ctx context.Context, src string) ([]byte, error) {
	if IsDataURI(src) {
		_, data, err := DecodeDataURI(src)
		if err != nil {
			return nil, err
		}
		if int64(len(data)) > i.cfg.MaxBytes {
			return nil, ErrTooLarge
		}
		return data, nil
	}

	if i.fetcher == nil {
		return nil, fmt.Errorf("cannot load %s: no fetcher configured", src)
	}
	return i.fetcher.Fetch(ctx, src, i.cfg.MaxBytes)
}

func (i *Inspector) readLimited(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, i.cfg.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > i.cfg.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, ctx.Err()
}

func mediaType(data []byte) string {
	mt, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return mt
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
