// Package images fetches card artwork and renders multi-card composites.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"sync"

	"github.com/codygriffin/cardboard/internal/common/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// slotWidth and slotHeight are the canvas area for one card
	slotWidth  = 300
	slotHeight = 420

	// slotSpacing is the horizontal gap between cards
	slotSpacing = 20
)

// CompositorConfig holds configuration for the compositor
type CompositorConfig struct {
	// Artwork fetcher
	Fetcher Fetcher

	// Logger
	Logger *zap.SugaredLogger

	// Metrics counters
	Metrics *metrics.Metrics
}

// Compositor renders three-card composites. Both raw fetches and encoded
// composites are cached for the process lifetime and never evicted: the
// catalog is bounded and grows slowly, so the memory trade-off is accepted.
type Compositor struct {
	fetcher Fetcher
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics

	mu         sync.Mutex
	images     map[string]image.Image
	composites map[string][]byte
}

// NewCompositor creates a compositor
func NewCompositor(cfg *CompositorConfig) (*Compositor, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Fetcher == nil {
		return nil, errors.New("fetcher cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Metrics == nil {
		return nil, errors.New("metrics cannot be nil")
	}

	return &Compositor{
		fetcher:    cfg.Fetcher,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		images:     make(map[string]image.Image),
		composites: make(map[string][]byte),
	}, nil
}

// Compose renders the three images side by side on a transparent canvas and
// returns the PNG encoding. A repeated identical triple is served from the
// composite cache without fetching or re-rendering. Any fetch or decode
// failure fails the whole composite; there is no partial result.
func (c *Compositor) Compose(ctx context.Context, url1, url2, url3 string) ([]byte, error) {
	urls := []string{url1, url2, url3}
	key := strings.Join(urls, "|")

	c.mu.Lock()
	if cached, ok := c.composites[key]; ok {
		c.mu.Unlock()
		c.metrics.CompositeCacheHits.Inc()
		return cached, nil
	}
	c.mu.Unlock()

	imgs := make([]image.Image, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			img, err := c.fetchCached(gctx, url)
			if err != nil {
				return err
			}
			imgs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compose card images: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, len(urls)*slotWidth+(len(urls)-1)*slotSpacing, slotHeight))
	for i, img := range imgs {
		origin := image.Pt(i*(slotWidth+slotSpacing), 0)
		slot := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(slotWidth, slotHeight))}
		draw.Draw(canvas, slot, img, img.Bounds().Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode composite: %w", err)
	}

	encoded := buf.Bytes()

	c.mu.Lock()
	c.composites[key] = encoded
	c.mu.Unlock()

	return encoded, nil
}

// fetchCached serves an image from the URL cache, fetching on a miss
func (c *Compositor) fetchCached(ctx context.Context, url string) (image.Image, error) {
	c.mu.Lock()
	if img, ok := c.images[url]; ok {
		c.mu.Unlock()
		c.metrics.ImageCacheHits.Inc()
		return img, nil
	}
	c.mu.Unlock()

	c.metrics.ImageFetches.Inc()
	img, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[url] = img
	c.mu.Unlock()

	return img, nil
}
