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
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second

	// apiKeyParam carries the shared access credential on every request
	apiKeyParam = "api_key"
)

// Client implements domain.Catalogue for the TMDB v3 API
type Client struct {
	baseURL      string
	apiKey       string
	imageBaseURL string
	placeholder  string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *slog.Logger
}

var _ domain.Catalogue = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRateLimit paces outbound requests. A zero limit disables pacing.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewClient creates a new TMDB API client
func NewClient(baseURL, apiKey, imageBaseURL, placeholder string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		placeholder:  placeholder,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest issues the GET described by q, with the access credential attached.
// It never retries: every failure is returned to the caller as-is.
func (c *Client) doRequest(ctx context.Context, q domain.CatalogueQuery) ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	path := q.Path()
	params := q.Params()
	params.Set(apiKeyParam, c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// Log the path and params without the credential
	c.logger.Debug("tmdb request", "kind", q.Kind.String(), "path", path, "query", q.Params().Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL, credential included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &domain.RemoteError{StatusCode: resp.StatusCode}
		var status StatusResponse
		if json.Unmarshal(body, &status) == nil {
			remoteErr.Code = status.StatusCode
			remoteErr.StatusMessage = status.StatusMessage
		}
		c.logger.Warn("tmdb request error",
			"path", path,
			"status", resp.StatusCode,
			"code", remoteErr.Code,
			"message", remoteErr.StatusMessage,
		)
		return nil, remoteErr
	}

	return body, nil
}

// get runs q and unmarshals the response body into dest
func (c *Client) get(ctx context.Context, q domain.CatalogueQuery, dest any) error {
	body, err := c.doRequest(ctx, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("tmdb decode failed", "path", q.Path(), "error", err)
		return &domain.DecodeError{Path: q.Path(), Err: err}
	}
	return nil
}

func (c *Client) fetchPage(ctx context.Context, q domain.CatalogueQuery) (*domain.MoviePage, error) {
	var resp ListResponse
	if err := c.get(ctx, q, &resp); err != nil {
		return nil, err
	}
	page, err := MapMoviePage(q.Path(), resp)
	if err != nil {
		return nil, err
	}
	if page.Page == 0 {
		page.Page = q.EffectivePage()
	}
	return page, nil
}

// FetchPopular returns one page of popular movies
func (c *Client) FetchPopular(ctx context.Context, page int) (*domain.MoviePage, error) {
	return c.fetchPage(ctx, domain.PopularQuery(page))
}

// SearchByTitle returns one page of movies matching title.
// A blank title returns an empty page and issues no request.
func (c *Client) SearchByTitle(ctx context.Context, title string, page int) (*domain.MoviePage, error) {
	q := domain.SearchQuery(title, page)
	if q.Title == "" {
		return &domain.MoviePage{Items: []domain.MovieSummary{}, Page: q.EffectivePage()}, nil
	}
	return c.fetchPage(ctx, q)
}

// FetchMovieDetail returns the full record for one movie
func (c *Client) FetchMovieDetail(ctx context.Context, movieID int) (*domain.MovieDetail, error) {
	q := domain.MovieQuery(movieID)
	var dto MovieDetailDTO
	if err := c.get(ctx, q, &dto); err != nil {
		return nil, err
	}
	return MapMovieDetail(q.Path(), dto)
}

// FetchCredits returns the cast of one movie
func (c *Client) FetchCredits(ctx context.Context, movieID int) (*domain.Credits, error) {
	q := domain.CreditsQuery(movieID)
	var resp CreditsResponse
	if err := c.get(ctx, q, &resp); err != nil {
		return nil, err
	}
	return MapCredits(q.Path(), resp)
}

// FetchGenres returns every movie genre
func (c *Client) FetchGenres(ctx context.Context) (domain.GenreSet, error) {
	q := domain.GenresQuery()
	var resp GenreListResponse
	if err := c.get(ctx, q, &resp); err != nil {
		return nil, err
	}
	return MapGenreSet(q.Path(), resp)
}

// FetchByGenre returns one page of movies in a genre
func (c *Client) FetchByGenre(ctx context.Context, genreID, page int) (*domain.MoviePage, error) {
	return c.fetchPage(ctx, domain.DiscoverQuery(genreID, page))
}

// ImageURL returns the full image URL for a relative path, or the placeholder
// for an empty one. Paths without a leading "/" get one, so "abc.jpg" and
// "/abc.jpg" resolve to the same URL.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return c.placeholder
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + path
}
