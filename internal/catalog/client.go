// Package catalog is the HTTP adapter for the remote imagery catalog:
// session handshake, cloud-masked composite queries, thumbnail rendering,
// and the final image download.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emberlab/firefetch/internal/geo"
)

// Config holds catalog client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Project string

	Timeout       time.Duration
	CloudCoverMax float64
	ThumbSize     int
	VisMin        float64
	VisMax        float64
	RetryAttempts int

	// Clock drives retry backoff; nil means the real clock.
	Clock clockwork.Clock
}

// Client interacts with the imagery catalog API. The session token obtained
// by Authenticate is read-only afterwards, so a single client is safe for
// concurrent use by the dispatcher workers.
type Client struct {
	baseURL string
	apiKey  string
	project string

	httpClient *http.Client
	retry      retryPolicy

	cloudCoverMax float64
	thumbSize     int
	visMin        float64
	visMax        float64

	sessionToken string
}

// NewClient creates a catalog client. Zero config fields fall back to the
// service defaults.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CloudCoverMax <= 0 {
		cfg.CloudCoverMax = 20
	}
	if cfg.ThumbSize <= 0 {
		cfg.ThumbSize = 512
	}
	if cfg.VisMax <= cfg.VisMin {
		cfg.VisMin, cfg.VisMax = 0, 0.5
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		project: cfg.Project,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		retry: retryPolicy{
			attempts:  cfg.RetryAttempts,
			baseDelay: 500 * time.Millisecond,
			maxDelay:  5 * time.Second,
			clock:     cfg.Clock,
		},
		cloudCoverMax: cfg.CloudCoverMax,
		thumbSize:     cfg.ThumbSize,
		visMin:        cfg.VisMin,
		visMax:        cfg.VisMax,
	}
}

// Authenticate performs the session handshake, binding the project identity
// for billing on all subsequent queries. Must be called once before any
// query; failure is fatal to the whole run.
func (c *Client) Authenticate(ctx context.Context) error {
	body, err := json.Marshal(sessionRequest{Project: c.project})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sessions", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Message: fmt.Sprintf("session handshake: %v", err)}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		return &AuthError{StatusCode: response.StatusCode}
	}

	var session sessionResponse
	if err := json.NewDecoder(response.Body).Decode(&session); err != nil {
		return &ClientError{Message: fmt.Sprintf("decode session response: %v", err)}
	}
	if session.SessionToken == "" {
		return &ClientError{Message: "session response missing token"}
	}

	c.sessionToken = session.SessionToken
	slog.InfoContext(ctx, "catalog session established", "project", c.project)
	return nil
}

// QueryComposite asks the catalog for a cloud-masked median composite of
// the visible bands over the rectangle and day window. Zero matching scenes
// yields ErrEmptyCollection.
func (c *Client) QueryComposite(ctx context.Context, rect geo.Rectangle, window geo.DateWindow) (CompositeRef, error) {
	payload := compositeRequest{
		Collection:       defaultCollection,
		Region:           rect.BBox(),
		StartDate:        window.Start.Format("2006-01-02"),
		EndDate:          window.End.Format("2006-01-02"),
		MaxCloudCover:    c.cloudCoverMax,
		Bands:            visibleBands,
		Reducer:          "median",
		QABand:           qaBandName,
		QAMaskBits:       maskBits(),
		ReflectanceScale: reflectanceScale,
	}

	var ref CompositeRef
	err := c.retry.do(ctx, "query_composite", func() error {
		resp, err := c.postJSON(ctx, "/v1/composites", payload)
		if err != nil {
			return err
		}
		ref = CompositeRef{ID: resp.CompositeID, ImageCount: resp.ImageCount}
		return nil
	})
	if err != nil {
		return CompositeRef{}, err
	}

	if ref.ImageCount == 0 {
		return CompositeRef{}, ErrEmptyCollection
	}
	return ref, nil
}

// ThumbnailURL requests a provider-rendered PNG thumbnail for the composite:
// fixed reflectance range, fixed output size, region clipped to the
// rectangle. The returned URL is time-limited.
func (c *Client) ThumbnailURL(ctx context.Context, ref CompositeRef, rect geo.Rectangle) (string, error) {
	payload := thumbnailRequest{
		Region:     rect.BBox(),
		Dimensions: c.thumbSize,
		Min:        c.visMin,
		Max:        c.visMax,
		Format:     "png",
	}

	var url string
	err := c.retry.do(ctx, "thumbnail_url", func() error {
		body, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		response, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/composites/%s/thumbnail", ref.ID), bytes.NewBuffer(body))
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return &apiError{StatusCode: response.StatusCode, Message: "thumbnail request failed"}
		}

		var thumb thumbnailResponse
		if err := json.NewDecoder(response.Body).Decode(&thumb); err != nil {
			return err
		}
		url = thumb.URL
		return nil
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// Download fetches the rendered thumbnail bytes. The caller must close the
// returned body.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	var body io.ReadCloser
	err := c.retry.do(ctx, "download", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return &apiError{StatusCode: resp.StatusCode, Message: "thumbnail download failed"}
		}

		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// postJSON posts a composite request and decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, payload compositeRequest) (*compositeResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	response, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &apiError{StatusCode: response.StatusCode, Message: "composite request failed"}
	}

	var resp compositeResponse
	if err := json.NewDecoder(response.Body).Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.sessionToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}
