package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/logging"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/GriffinCanCode/manifestgen/internal/shared/utils"
	"go.uber.org/zap"
)

// Backend is the manifest generation service
type Backend interface {
	FetchManifest(ctx context.Context, siteURL string) (*types.ManifestResult, error)
	GenerateMissingImages(ctx context.Context, manifestID string, file types.File) (*types.GeneratedImages, error)
}

// Inspector measures images and reads local files
type Inspector interface {
	MeasureImage(ctx context.Context, src string) (types.Dimensions, error)
	ReadFileAsDataURI(ctx context.Context, file types.File) (string, error)
}

// ModeCatalog supplies the defaults filled into a fresh manifest
type ModeCatalog interface {
	DefaultDisplay() string
	DefaultOrientation() string
}

// Generator runs workflow actions against a store
type Generator struct {
	store     *Store
	backend   Backend
	inspector Inspector
	modes     ModeCatalog
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// NewGenerator creates a generator bound to store
func NewGenerator(store *Store, backend Backend, inspector Inspector, modes ModeCatalog, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{
		store:     store,
		backend:   backend,
		inspector: inspector,
		modes:     modes,
		logger:    logger.Named("generator").WithSession(store.SessionID().String()),
	}
}

// WithMetrics adds metrics tracking to the generator
func (g *Generator) WithMetrics(metrics *monitoring.Metrics) *Generator {
	g.metrics = metrics
	return g
}

// Store returns the store the generator commits to
func (g *Generator) Store() *Store {
	return g.store
}

// State returns a snapshot of the current state
func (g *Generator) State() types.State {
	return g.store.State()
}

// UpdateLink validates a user typed URL, adding https:// when no scheme is
// given, and stores it. Invalid input is reported through state.error.
func (g *Generator) UpdateLink(url string) {
	url = utils.EnsureScheme(url)

	if !utils.IsValidURL(url) {
		g.logger.Debug("rejected link", zap.String("url", url))
		g.store.Commit(UpdateError{Message: MsgInvalidURL})
		return
	}

	g.store.Commit(UpdateLink{URL: url})
}

// GetManifestInformation asks the backend to generate a manifest for the
// stored URL. Failures are committed to state.error and also returned.
func (g *Generator) GetManifestInformation(ctx context.Context) (err error) {
	timer := monitoring.NewTimer(g.metrics, "get_manifest")
	defer func() { timer.Stop(err) }()

	state := g.store.State()
	if state.URL == nil || *state.URL == "" {
		g.store.Commit(UpdateError{Message: MsgEmptyURL})
		return nil
	}

	log := g.logger.With(zap.String("action", "get_manifest"), zap.String("url", *state.URL))
	log.Debug("fetching manifest")

	result, err := g.backend.FetchManifest(ctx, *state.URL)
	if err != nil {
		log.Warn("manifest fetch failed", zap.Error(err))
		g.store.Commit(UpdateError{Message: ErrorMessage(err)})
		return err
	}

	g.store.Commit(UpdateWithManifest{Result: result})
	g.store.Commit(SetDefaultsManifest{
		DefaultDisplay:     g.defaultDisplay(),
		DefaultOrientation: g.defaultOrientation(),
	})

	log.Info("manifest fetched",
		zap.String("manifest_id", result.ID),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("errors", len(result.Errors)),
	)
	return nil
}

// RemoveIcon drops the first icon whose src equals icon.Src
func (g *Generator) RemoveIcon(icon types.Icon) {
	icons, ok := removeIcon(g.store.State().Icons, icon.Src)
	if !ok {
		return
	}
	g.store.Commit(UpdateIcons{Icons: icons})
}

// ResetStates clears the session. Generated assets are kept.
func (g *Generator) ResetStates() {
	g.store.Commit(ResetStates{})
}

// AddIconFromURL measures the image at src and appends it as an icon.
// Relative sources resolve against the manifest start_url, or the site
// URL when no manifest exists yet.
func (g *Generator) AddIconFromURL(ctx context.Context, src string) (err error) {
	if src == "" {
		return nil
	}

	timer := monitoring.NewTimer(g.metrics, "add_icon")
	defer func() { timer.Stop(err) }()

	src = strings.TrimPrefix(src, "/")
	if !strings.Contains(src, "http") {
		src = g.iconPrefix() + src
	}

	dims, err := g.inspector.MeasureImage(ctx, src)
	if err != nil {
		g.logger.Warn("icon measurement failed", zap.String("action", "add_icon"), zap.String("src", src), zap.Error(err))
		return fmt.Errorf("measure icon %s: %w", src, err)
	}

	g.store.Commit(AddIcon{Icon: types.Icon{Src: src, Sizes: FormatSizes(dims)}})
	return nil
}

// UploadIcon embeds a local image as a data URI icon
func (g *Generator) UploadIcon(ctx context.Context, file types.File) (err error) {
	if file == nil {
		return ErrNoFile
	}

	timer := monitoring.NewTimer(g.metrics, "upload_icon")
	defer func() { timer.Stop(err) }()

	dataURI, err := g.inspector.ReadFileAsDataURI(ctx, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file.Name(), err)
	}

	dims, err := g.inspector.MeasureImage(ctx, dataURI)
	if err != nil {
		return fmt.Errorf("measure %s: %w", file.Name(), err)
	}

	g.store.Commit(AddIcon{Icon: types.Icon{Src: dataURI, Sizes: FormatSizes(dims)}})
	g.logger.Info("icon uploaded", zap.String("action", "upload_icon"), zap.String("file", file.Name()))
	return nil
}

// GenerateMissingImages sends file to the backend, which derives the
// missing icon sizes. Unlike GetManifestInformation, failures are only
// returned and never written to state.error.
func (g *Generator) GenerateMissingImages(ctx context.Context, file types.File) (err error) {
	timer := monitoring.NewTimer(g.metrics, "generate_missing_images")
	defer func() { timer.Stop(err) }()

	state := g.store.State()
	if state.ManifestID == nil || *state.ManifestID == "" {
		return ErrNoManifest
	}
	if file == nil {
		return ErrNoFile
	}

	log := g.logger.With(zap.String("action", "generate_missing_images"), zap.String("manifest_id", *state.ManifestID))
	log.Debug("generating missing images", zap.String("file", file.Name()))

	result, err := g.backend.GenerateMissingImages(ctx, *state.ManifestID, file)
	if err != nil {
		log.Warn("missing image generation failed", zap.Error(err))
		return err
	}

	g.store.Commit(OverwriteManifest{Result: result})
	g.store.Commit(AddAssets{Assets: result.Assets})
	if g.metrics != nil {
		g.metrics.AddAssets(len(result.Assets))
	}

	log.Info("missing images generated", zap.Int("assets", len(result.Assets)))
	return nil
}

func (g *Generator) iconPrefix() string {
	state := g.store.State()
	if state.Manifest != nil {
		return state.Manifest.StartURLOrEmpty()
	}
	if state.URL != nil {
		return *state.URL
	}
	return ""
}

func (g *Generator) defaultDisplay() string {
	if g.modes == nil {
		return ""
	}
	return g.modes.DefaultDisplay()
}

func (g *Generator) defaultOrientation() string {
	if g.modes == nil {
		return ""
	}
	return g.modes.DefaultOrientation()
}
