package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cineforo/internal/cache"
	"cineforo/internal/catalog/tmdb"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrEmptyQuery    = errors.New("search query is required")
)

// MovieCatalog is the remote movie catalog
type MovieCatalog interface {
	Popular(ctx context.Context, page int) (*tmdb.MoviePage, error)
	NowPlaying(ctx context.Context, page int) (*tmdb.MoviePage, error)
	Upcoming(ctx context.Context, page int) (*tmdb.MoviePage, error)
	Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error)
	Details(ctx context.Context, id int64) (*tmdb.Movie, error)
}

type MovieService interface {
	Popular(ctx context.Context, page int) (*tmdb.MoviePage, error)
	NowPlaying(ctx context.Context, page int) (*tmdb.MoviePage, error)
	Upcoming(ctx context.Context, page int) (*tmdb.MoviePage, error)
	Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error)
	Details(ctx context.Context, id int64) (*tmdb.Movie, error)
}

type movieService struct {
	catalog MovieCatalog
	cache   cache.Cache
	ttl     time.Duration
}

// NewMovieService puts movieCache in front of catalog; a nil cache disables caching
func NewMovieService(catalog MovieCatalog, movieCache cache.Cache, ttl time.Duration) MovieService {
	return &movieService{catalog: catalog, cache: movieCache, ttl: ttl}
}

func (s *movieService) Popular(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return cached(ctx, s, cache.Key("movies", "popular", page), func() (*tmdb.MoviePage, error) {
		return s.catalog.Popular(ctx, page)
	})
}

func (s *movieService) NowPlaying(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return cached(ctx, s, cache.Key("movies", "now_playing", page), func() (*tmdb.MoviePage, error) {
		return s.catalog.NowPlaying(ctx, page)
	})
}

func (s *movieService) Upcoming(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return cached(ctx, s, cache.Key("movies", "upcoming", page), func() (*tmdb.MoviePage, error) {
		return s.catalog.Upcoming(ctx, page)
	})
}

func (s *movieService) Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return cached(ctx, s, cache.Key("movies", "search", query, page), func() (*tmdb.MoviePage, error) {
		return s.catalog.Search(ctx, query, page)
	})
}

func (s *movieService) Details(ctx context.Context, id int64) (*tmdb.Movie, error) {
	movie, err := cached(ctx, s, cache.Key("movies", "details", id), func() (*tmdb.Movie, error) {
		return s.catalog.Details(ctx, id)
	})
	if errors.Is(err, tmdb.ErrNotFound) {
		return nil, ErrMovieNotFound
	}
	return movie, err
}

// cached serves key from the cache when present, otherwise fetches and stores it.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *movieService, key string, fetch func() (*T, error)) (*T, error) {
	if s.cache != nil {
		var hit T
		found, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			slog.Warn("catalog cache read failed", "key", key, "error", err)
		} else if found {
			return &hit, nil
		}
	}

	value, err := fetch()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
			slog.Warn("catalog cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}
