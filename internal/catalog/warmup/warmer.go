package warmup

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"cineforo/internal/catalog/tmdb"
)

// Lists is the part of the movie service the warmer pre-fetches through.
// Going through the service means every fetched page lands in the catalog cache.
type Lists interface {
	Popular(ctx context.Context, page int) (*tmdb.MoviePage, error)
	NowPlaying(ctx context.Context, page int) (*tmdb.MoviePage, error)
	Upcoming(ctx context.Context, page int) (*tmdb.MoviePage, error)
}

type Options struct {
	Pages    int           // leading pages of each list to fetch, 0 disables warming
	Workers  int
	Interval time.Duration // re-warm period, usually the cache TTL
	Logger   *slog.Logger
}

// Result summarises one warm pass
type Result struct {
	Fetched int
	Failed  int
}

type Warmer struct {
	lists Lists
	opts  Options
}

func NewWarmer(lists Lists, opts Options) *Warmer {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Warmer{lists: lists, opts: opts}
}

// Enabled reports whether there is anything to pre-fetch
func (w *Warmer) Enabled() bool {
	return w.opts.Pages > 0
}

// Warm fetches the first Pages pages of every list once
func (w *Warmer) Warm(ctx context.Context) Result {
	if !w.Enabled() {
		return Result{}
	}

	var fetched, failed atomic.Int64
	pool := NewWorkerPool(ctx, w.opts.Workers, w.opts.Logger)
	pool.Start()

	lists := []struct {
		name  string
		fetch func(context.Context, int) (*tmdb.MoviePage, error)
	}{
		{"popular", w.lists.Popular},
		{"now_playing", w.lists.NowPlaying},
		{"upcoming", w.lists.Upcoming},
	}

	for _, list := range lists {
		list := list
		for page := 1; page <= w.opts.Pages; page++ {
			page := page
			submitted := pool.Submit(func(ctx context.Context) error {
				if _, err := list.fetch(ctx, page); err != nil {
					failed.Add(1)
					return fmt.Errorf("warm %s page %d: %w", list.name, page, err)
				}
				fetched.Add(1)
				return nil
			})
			if !submitted {
				failed.Add(1)
			}
		}
	}
	pool.Wait()

	res := Result{Fetched: int(fetched.Load()), Failed: int(failed.Load())}
	w.opts.Logger.Info("catalog_warmed", "fetched", res.Fetched, "failed", res.Failed)
	return res
}

// Run warms immediately and then every Interval until ctx is done
func (w *Warmer) Run(ctx context.Context) {
	if !w.Enabled() {
		return
	}
	w.Warm(ctx)
	if w.opts.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Warm(ctx)
		}
	}
}
