package client

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"cineforo/internal/catalog/tmdb"
)

// MovieLists the catalog browses by
var MovieLists = []string{"popular", "now-playing", "upcoming"}

func (c *HTTPClient) Movies(list string, page int) (*tmdb.MoviePage, error) {
	if !slices.Contains(MovieLists, list) {
		return nil, fmt.Errorf("unknown movie list %q", list)
	}
	var result tmdb.MoviePage
	if err := c.do(http.MethodGet, "/api/movies/"+list, pageQuery(page, 0), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) SearchMovies(query string, page int) (*tmdb.MoviePage, error) {
	values := pageQuery(page, 0)
	values.Set("q", query)
	var result tmdb.MoviePage
	if err := c.do(http.MethodGet, "/api/movies/search", values, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Movie(movieID int64) (*tmdb.Movie, error) {
	var result tmdb.Movie
	if err := c.do(http.MethodGet, moviePath(movieID), url.Values{}, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
