// Package metrics exposes Prometheus counters for the card economy.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cardboard"

// Metrics holds the bot's counters. Each Metrics value owns its own
// registry so tests can construct one per case without collisions.
type Metrics struct {
	registry *prometheus.Registry

	Draws              prometheus.Counter
	PacksOpened        prometheus.Counter
	PicksStarted       prometheus.Counter
	PicksResolved      prometheus.Counter
	CardsTrashed       prometheus.Counter
	TradesAccepted     prometheus.Counter
	TradesDeclined     prometheus.Counter
	ImageFetches       prometheus.Counter
	ImageCacheHits     prometheus.Counter
	CompositeCacheHits prometheus.Counter
}

// New creates a Metrics with all counters registered
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	counter := func(subsystem, name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Metrics{
		registry:           registry,
		Draws:              counter("collection", "draws_total", "Single card draws performed."),
		PacksOpened:        counter("collection", "packs_opened_total", "Packs opened."),
		PicksStarted:       counter("collection", "picks_started_total", "Pick sessions started."),
		PicksResolved:      counter("collection", "picks_resolved_total", "Pick sessions resolved into a card."),
		CardsTrashed:       counter("collection", "cards_trashed_total", "Cards removed via trash."),
		TradesAccepted:     counter("trade", "accepted_total", "Trade offers accepted."),
		TradesDeclined:     counter("trade", "declined_total", "Trade offers declined."),
		ImageFetches:       counter("images", "fetches_total", "Artwork fetches that went to the network."),
		ImageCacheHits:     counter("images", "cache_hits_total", "Artwork fetches served from cache."),
		CompositeCacheHits: counter("images", "composite_cache_hits_total", "Composites served from cache."),
	}
}

// Handler returns an HTTP handler serving the registry in Prometheus format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
