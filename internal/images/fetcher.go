package images

//go:generate mockgen -package=mocks -destination=mocks/mock_fetcher.go github.com/codygriffin/cardboard/internal/images Fetcher

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"time"

	// Register decoders for the catalog's artwork formats
	_ "image/jpeg"
	_ "image/png"
)

// Fetcher retrieves and decodes remote card artwork
type Fetcher interface {
	// Fetch downloads and decodes the image at url
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// HTTPFetcherConfig holds configuration for the HTTP fetcher
type HTTPFetcherConfig struct {
	// Optional HTTP client; a default with a request timeout is used
	// when nil
	Client *http.Client
}

// HTTPFetcher implements Fetcher over plain HTTP
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTP-backed artwork fetcher
func NewHTTPFetcher(cfg *HTTPFetcherConfig) *HTTPFetcher {
	client := &http.Client{Timeout: 15 * time.Second}
	if cfg != nil && cfg.Client != nil {
		client = cfg.Client
	}

	return &HTTPFetcher{
		client: client,
	}
}

// Fetch downloads and decodes the image at url
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, errors.New("url cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build artwork request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("artwork fetch returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artwork: %w", err)
	}

	return img, nil
}
