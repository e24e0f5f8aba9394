package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/partscout/partscout/internal/common"
	"github.com/partscout/partscout/internal/config"
	"github.com/partscout/partscout/internal/engine"
	"github.com/partscout/partscout/internal/model"
	"github.com/partscout/partscout/internal/resolve"
	"github.com/partscout/partscout/internal/service"
	"github.com/partscout/partscout/internal/storage"
	"github.com/partscout/partscout/internal/tabular"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Store, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/partscout/partscout.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolverConfig builds the resolver chain settings from config, falling
// back to production defaults.
func resolverConfig() resolve.Config {
	cfg := resolve.DefaultConfig()
	if v := viper.GetDuration("resolver.timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v := viper.GetDuration("resolver.min_interval"); v > 0 {
		cfg.MinInterval = v
	}
	if v := viper.GetDuration("resolver.max_interval"); v >= cfg.MinInterval {
		cfg.MaxInterval = v
	}
	return cfg
}

// buildChain assembles the resolver chain. The source order is
// configurable via resolver.sources; the default is RockAuto with web
// search as fallback.
func buildChain() (*resolve.Chain, error) {
	cfg := resolverConfig()

	names := viper.GetStringSlice("resolver.sources")
	if len(names) == 0 {
		return resolve.NewDefaultChain(cfg), nil
	}

	var sources []resolve.Source
	for _, name := range names {
		switch strings.ToLower(name) {
		case "rockauto":
			sources = append(sources, resolve.NewRockAutoSource(cfg.Timeout))
		case "websearch":
			sources = append(sources, resolve.NewWebSearchSource(cfg.Timeout))
		default:
			return nil, fmt.Errorf("%w: unknown resolver source %q", common.ErrInvalidConfig, name)
		}
	}
	return resolve.NewChain(resolve.NewPacer(cfg.MinInterval, cfg.MaxInterval), sources...), nil
}

// newEngine wires the engine with the configured resolver chain and an
// event bus for progress display.
func newEngine(store service.Store) (*engine.Engine, *engine.EventBus, error) {
	chain, err := buildChain()
	if err != nil {
		return nil, nil, err
	}

	bus := engine.NewEventBus()
	return engine.New(store, chain, bus), bus, nil
}

// loadInput reads the manifest and classifies its rows into the engine.
func loadInput(eng *engine.Engine, path string) (engine.CategoryCounts, error) {
	items, err := tabular.ReadLineItems(path)
	if err != nil {
		return engine.CategoryCounts{}, err
	}

	counts := eng.Load(items)
	return counts, nil
}

// watchEvents renders a progress bar from the engine's event stream until a
// terminal event arrives. The returned channel closes when rendering is done.
func watchEvents(events <-chan service.Event, rangeSize, alreadyDone int) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		bar := progressbar.NewOptions(rangeSize,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Resolving parts..."),
		)
		if alreadyDone > 0 {
			_ = bar.Set(alreadyDone)
		}

		for event := range events {
			switch event.Type {
			case service.EventProgress:
				_ = bar.Set(event.ProcessedCount)
			case service.EventResult:
				// Progress events carry the counters; nothing extra to draw.
			case service.EventCompleted:
				_ = bar.Finish()
				fmt.Fprintln(os.Stderr)
				slog.Info("✅ Processing completed",
					"processed", event.ProcessedCount,
					"success_rate", fmt.Sprintf("%.1f%%", event.SuccessRate))
				return
			case service.EventStopped:
				fmt.Fprintln(os.Stderr)
				slog.Info("🛑 Processing stopped",
					"partial_results", event.ProcessedCount,
					"session_id", event.SessionID)
				return
			case service.EventError:
				fmt.Fprintln(os.Stderr)
				slog.Error("Processing failed", "error", event.Message)
				return
			}
		}
	}()

	return done
}

// printLeaderboard writes the top makes table to stdout.
func printLeaderboard(entries []model.LeaderboardEntry) {
	if len(entries) == 0 {
		return
	}

	fmt.Println("\n🏆 Top makes:")
	for i, entry := range entries {
		fmt.Printf("  %2d. %-15s %4d parts  (weighted %d)\n",
			i+1, entry.Make, entry.Count, entry.WeightedCount)
	}
}

// defaultExportPath generates a timestamped export filename, placed in the
// configured export directory when one is set.
func defaultExportPath() string {
	name := fmt.Sprintf("enriched_parts_%s.csv", time.Now().Format("20060102_150405"))
	if dir := viper.GetString("export.directory"); dir != "" {
		return filepath.Join(config.ExpandPath(dir), name)
	}
	return name
}
