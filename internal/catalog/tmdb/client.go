package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultImageURL = "https://image.tmdb.org/t/p"

	// the catalog allows roughly 40 requests per second per key
	rateLimit = 20
	rateBurst = 40

	maxRetries   = 3
	initialDelay = 500 * time.Millisecond
	maxDelay     = 8 * time.Second
)

var (
	ErrNotFound     = errors.New("movie not found")
	ErrUnauthorized = errors.New("catalog rejected the API key")
)

// Options configures a Client; zero values fall back to the public endpoints
type Options struct {
	BaseURL    string
	ImageURL   string
	APIKey     string
	Language   string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the movie catalog with rate limiting and retry logic
type Client struct {
	baseURL     string
	imageURL    string
	apiKey      string
	language    string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	initialWait time.Duration
}

func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		imageURL:    opts.ImageURL,
		apiKey:      opts.APIKey,
		language:    opts.Language,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		initialWait: initialDelay,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.imageURL == "" {
		c.imageURL = DefaultImageURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Popular fetches the current popular movies
func (c *Client) Popular(ctx context.Context, page int) (*MoviePage, error) {
	return c.list(ctx, "/movie/popular", page, nil)
}

func (c *Client) NowPlaying(ctx context.Context, page int) (*MoviePage, error) {
	return c.list(ctx, "/movie/now_playing", page, nil)
}

func (c *Client) Upcoming(ctx context.Context, page int) (*MoviePage, error) {
	return c.list(ctx, "/movie/upcoming", page, nil)
}

// Search looks movies up by title
func (c *Client) Search(ctx context.Context, query string, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.list(ctx, "/search/movie", page, params)
}

// Details fetches a single movie
func (c *Client) Details(ctx context.Context, id int64) (*Movie, error) {
	var dto MovieDTO
	if err := c.doRequest(ctx, fmt.Sprintf("/movie/%d", id), url.Values{}, &dto); err != nil {
		return nil, fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}
	movie := dto.ToMovie(c.imageURL)
	return &movie, nil
}

func (c *Client) list(ctx context.Context, endpoint string, page int, params url.Values) (*MoviePage, error) {
	if params == nil {
		params = url.Values{}
	}
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	var response MoviesResponse
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	return response.ToPage(c.imageURL), nil
}

// doRequest performs a GET with rate limiting and retry on 429/5xx
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	var lastErr error
	delay := c.initialWait

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "CineForo/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries && ctx.Err() == nil {
				c.logger.Warn("catalog request failed, retrying",
					"endpoint", endpoint, "attempt", attempt+1, "delay", delay, "error", err)
				if err := sleep(ctx, delay); err != nil {
					return err
				}
				delay = min(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", attempt+1, err)
		}

		retry, err := c.handleResponse(resp, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || attempt == maxRetries {
			return err
		}

		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if secs, perr := strconv.Atoi(retryAfter); perr == nil {
				delay = min(time.Duration(secs)*time.Second, maxDelay)
			}
		}
		c.logger.Warn("catalog returned retryable status",
			"endpoint", endpoint, "status", resp.StatusCode, "attempt", attempt+1, "delay", delay)
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay = min(delay*2, maxDelay)
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, lastErr)
}

// handleResponse decodes a successful body into result; the bool reports whether a failure is retryable
func (c *Client) handleResponse(resp *http.Response, result any) (bool, error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return false, fmt.Errorf("failed to parse response: %w", err)
		}
		return false, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return false, ErrUnauthorized
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr errorResponse
	msg := string(body)
	if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
		msg = apiErr.StatusMessage
	}
	return shouldRetry(resp.StatusCode), fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
