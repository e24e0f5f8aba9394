// Package resolve queries external parts-lookup sources for vehicle-make
// compatibility. Sources are pluggable strategies tried in a fixed priority
// order with per-source rate limiting; the first source that yields makes
// wins and later sources are never contacted.
package resolve

import (
	"context"
	"log/slog"
	"time"

	"github.com/partscout/partscout/internal/model"
)

// Source is one external parts-lookup service. Lookup returns the vehicle
// makes it lists for the key, an empty slice when the source has no match,
// or an error on transport/parse failure. Errors are recovered by falling
// back to the next source, never by reattempting.
type Source interface {
	Name() string
	Lookup(ctx context.Context, key, description string) ([]string, error)
}

// Chain resolves lookup keys against an ordered list of sources.
type Chain struct {
	pacer   *Pacer
	sources []Source
}

// Config holds resolver chain settings.
type Config struct {
	Timeout     time.Duration
	MinInterval time.Duration
	MaxInterval time.Duration
}

// DefaultConfig returns the production resolver settings.
func DefaultConfig() Config {
	return Config{
		Timeout:     10 * time.Second,
		MinInterval: time.Second,
		MaxInterval: 1500 * time.Millisecond,
	}
}

// NewChain builds a chain over the given sources in priority order.
func NewChain(pacer *Pacer, sources ...Source) *Chain {
	return &Chain{pacer: pacer, sources: sources}
}

// NewDefaultChain builds the production chain: RockAuto first, web search
// as fallback.
func NewDefaultChain(cfg Config) *Chain {
	return NewChain(
		NewPacer(cfg.MinInterval, cfg.MaxInterval),
		NewRockAutoSource(cfg.Timeout),
		NewWebSearchSource(cfg.Timeout),
	)
}

// Resolve tries each source in order, pacing requests per source. A source
// failure counts as "no match from this source" and fallback continues; the
// NotFound sentinel is returned only when every source is exhausted. Context
// cancellation aborts immediately, including a pending pacing wait.
func (c *Chain) Resolve(ctx context.Context, key, description string) (*model.ResolutionResult, error) {
	for _, source := range c.sources {
		if err := c.pacer.Wait(ctx, source.Name()); err != nil {
			return nil, err
		}

		makes, err := source.Lookup(ctx, key, description)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("source lookup failed, falling back",
				"source", source.Name(),
				"part", key,
				"error", err)
			continue
		}

		if len(makes) > 0 {
			slog.Info("resolved part",
				"source", source.Name(),
				"part", key,
				"makes", makes)
			return model.NewFoundResult(source.Name(), makes), nil
		}

		slog.Debug("no makes from source", "source", source.Name(), "part", key)
	}

	return model.NewNotFoundResult(), nil
}
