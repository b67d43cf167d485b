package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tropicaldog17/oraclewatch/internal/models"
)

// maxPreloadBody caps one fetched oracle view.
const maxPreloadBody = 8 << 20

// PreloadFetcher plays the web4 host between the two phases: it fetches declared preload URLs
// and returns them keyed the way the dashboard expects them back.
type PreloadFetcher interface {
	Fetch(ctx context.Context, urls []string) (map[string]models.Web4Response, error)
}

// HTTPPreloadFetcher resolves preload URLs against a web4 gateway
type HTTPPreloadFetcher struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPPreloadFetcher(baseURL string) *HTTPPreloadFetcher {
	return &HTTPPreloadFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch gets every URL in order and stops at the first failure.
func (f *HTTPPreloadFetcher) Fetch(ctx context.Context, urls []string) (map[string]models.Web4Response, error) {
	preloads := make(map[string]models.Web4Response, len(urls))
	for _, u := range urls {
		resp, err := f.fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		preloads[u] = *resp
	}
	return preloads, nil
}

func (f *HTTPPreloadFetcher) fetch(ctx context.Context, path string) (*models.Web4Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPreloadBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out := &models.Web4Response{Body: body}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		out.ContentType = &ct
	}
	status := uint32(resp.StatusCode)
	out.Status = &status
	return out, nil
}

// RenderWithFetcher runs both phases of a web4 request, fetching the declared preloads in between.
func RenderWithFetcher(ctx context.Context, svc Web4Service, fetcher PreloadFetcher, path string) (*models.Web4Response, error) {
	declared, err := svc.Handle(ctx, &models.Web4Request{Path: path})
	if err != nil {
		return nil, err
	}
	if declared.PreloadURLs == nil {
		return declared, nil
	}

	preloads, err := fetcher.Fetch(ctx, declared.PreloadURLs)
	if err != nil {
		return nil, err
	}
	return svc.Handle(ctx, &models.Web4Request{Path: path, Preloads: preloads})
}
