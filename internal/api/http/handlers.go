package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/GriffinCanCode/manifestgen/internal/catalog"
	"github.com/GriffinCanCode/manifestgen/internal/domain/generator"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/logging"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/manifestgen/internal/providers/archive"
	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/GriffinCanCode/manifestgen/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	generator *generator.Generator
	catalog   *catalog.Catalog
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(gen *generator.Generator, modes *catalog.Catalog, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		generator: gen,
		catalog:   modes,
		metrics:   metrics,
		logger:    logger.Named("api"),
	}
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/catalog", h.Catalog)
	r.POST("/logs", h.StreamLogs)

	r.GET("/state", h.State)
	r.POST("/reset", h.Reset)
	r.POST("/link", h.UpdateLink)
	r.POST("/manifest", h.GetManifest)

	r.POST("/icons", h.AddIcon)
	r.POST("/icons/remove", h.RemoveIcon)
	r.POST("/icons/upload", h.UploadIcon)

	r.POST("/images/missing", h.GenerateMissingImages)
	r.GET("/assets.zip", h.DownloadAssets)
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":     "healthy",
		"session_id": h.generator.Store().SessionID().String(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// Catalog lists the selectable display modes, orientations and languages
func (h *Handlers) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Document())
}

// State returns the current workflow state
func (h *Handlers) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.generator.State())
}

// Reset clears the session
func (h *Handlers) Reset(c *gin.Context) {
	h.generator.ResetStates()
	c.JSON(http.StatusOK, h.generator.State())
}

// UpdateLink stores the site URL. An invalid URL is reported in state.error.
func (h *Handlers) UpdateLink(c *gin.Context) {
	var req types.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateString(req.URL, "url", 0, utils.MaxSrcLength, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.generator.UpdateLink(req.URL)
	c.JSON(http.StatusOK, h.generator.State())
}

// GetManifest asks the backend for a manifest of the stored URL
func (h *Handlers) GetManifest(c *gin.Context) {
	if err := h.generator.GetManifestInformation(c.Request.Context()); err != nil {
		h.fail(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, h.generator.State())
}

// AddIcon adds an icon by URL
func (h *Handlers) AddIcon(c *gin.Context) {
	var req types.IconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateIconSrc(req.Src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.generator.AddIconFromURL(c.Request.Context(), req.Src); err != nil {
		h.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	c.JSON(http.StatusOK, h.generator.State())
}

// RemoveIcon removes the first icon with the given src
func (h *Handlers) RemoveIcon(c *gin.Context) {
	var req types.IconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.generator.RemoveIcon(types.Icon{Src: req.Src})
	c.JSON(http.StatusOK, h.generator.State())
}

// UploadIcon adds an icon from a multipart "file" upload
func (h *Handlers) UploadIcon(c *gin.Context) {
	file, ok := h.formFile(c)
	if !ok {
		return
	}

	if err := h.generator.UploadIcon(c.Request.Context(), file); err != nil {
		h.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	c.JSON(http.StatusOK, h.generator.State())
}

// GenerateMissingImages forwards a multipart "file" upload to the backend
func (h *Handlers) GenerateMissingImages(c *gin.Context) {
	file, ok := h.formFile(c)
	if !ok {
		return
	}

	if err := h.generator.GenerateMissingImages(c.Request.Context(), file); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, generator.ErrNoManifest) {
			status = http.StatusConflict
		}
		h.fail(c, status, err)
		return
	}
	c.JSON(http.StatusOK, h.generator.State())
}

// DownloadAssets streams the manifest and generated assets as a zip
func (h *Handlers) DownloadAssets(c *gin.Context) {
	state := h.generator.State()
	if state.Manifest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": archive.ErrNothingToExport.Error()})
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="assets.zip"`)
	c.Status(http.StatusOK)
	if err := archive.Write(c.Writer, state); err != nil {
		h.logger.Error("asset export failed", zap.Error(err))
		_ = c.Error(err)
	}
}

func (h *Handlers) formFile(c *gin.Context) (types.File, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxUploadSize+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, false
	}
	if header.Size > utils.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return types.NewMemoryFile(header.Filename, data), true
}

func (h *Handlers) fail(c *gin.Context, status int, err error) {
	h.logger.Warn("request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.JSON(status, gin.H{
		"error": generator.ErrorMessage(err),
		"state": h.generator.State(),
	})
}
