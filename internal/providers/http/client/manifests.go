package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/GriffinCanCode/manifestgen/internal/shared/id"
	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// ErrMissingManifestID is returned when regeneration is asked for without an id
var ErrMissingManifestID = errors.New("manifest id is required")

// Metric labels for the two backend endpoints
const (
	EndpointManifests     = "manifests"
	EndpointMissingImages = "generatemissingimages"
)

// ManifestService calls the manifest generation backend
type ManifestService struct {
	client   *Client
	endpoint string
}

// NewManifestService creates a service posting to endpoint, the full
// ".../manifests" URL
func NewManifestService(client *Client, endpoint string) *ManifestService {
	return &ManifestService{
		client:   client,
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

// FetchManifest asks the backend to analyse siteURL
func (s *ManifestService) FetchManifest(ctx context.Context, siteURL string) (*types.ManifestResult, error) {
	resp, err := s.client.Do(ctx, EndpointManifests, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("X-Request-ID", id.NewRequestID().String()).
			SetBody(types.ManifestRequest{SiteURL: siteURL}).
			Post(s.endpoint)
	})
	if err != nil {
		return nil, err
	}

	var result types.ManifestResult
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &PayloadError{Endpoint: EndpointManifests, Reason: "malformed JSON", Err: err}
	}
	if result.Content == nil {
		return nil, &PayloadError{Endpoint: EndpointManifests, Reason: "missing content"}
	}
	return &result, nil
}

// GenerateMissingImages uploads file so the backend can derive the icon
// sizes the manifest lacks
func (s *ManifestService) GenerateMissingImages(ctx context.Context, manifestID string, file types.File) (*types.GeneratedImages, error) {
	if manifestID == "" {
		return nil, ErrMissingManifestID
	}

	body, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Name(), err)
	}
	defer body.Close()

	target := fmt.Sprintf("%s/%s/%s", s.endpoint, url.PathEscape(manifestID), EndpointMissingImages)
	resp, err := s.client.Do(ctx, EndpointMissingImages, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("X-Request-ID", id.NewRequestID().String()).
			SetFileReader("file", file.Name(), body).
			Post(target)
	})
	if err != nil {
		return nil, err
	}

	var result types.GeneratedImages
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &PayloadError{Endpoint: EndpointMissingImages, Reason: "malformed JSON", Err: err}
	}
	if result.Content == nil {
		return nil, &PayloadError{Endpoint: EndpointMissingImages, Reason: "missing content"}
	}
	return &result, nil
}
