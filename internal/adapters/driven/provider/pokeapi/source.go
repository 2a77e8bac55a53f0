// Package pokeapi lists Pokémon from the public PokeAPI (https://pokeapi.co).
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	DefaultTimeout = 15 * time.Second

	// DefaultRate keeps well under PokeAPI's fair-use guidance.
	DefaultRate = 5
)

// Config holds configuration for the PokeAPI source.
type Config struct {
	// BaseURL is the API root (default: https://pokeapi.co/api/v2).
	BaseURL string

	// PageSize is the number of Pokémon per page.
	PageSize int

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration

	// RequestsPerSecond paces requests (default: 5).
	RequestsPerSecond float64
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pokeapi error (status %d)", e.Code)
	}
	return fmt.Sprintf("pokeapi error (status %d): %s", e.Code, e.Body)
}

// Unwrap maps HTTP statuses onto domain errors.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		if e.Code >= 500 {
			return domain.ErrProviderUnavailable
		}
		return nil
	}
}

// Source fetches pages of the /pokemon resource list.
type Source struct {
	client   *http.Client
	baseURL  string
	pageSize int
	limiter  *rate.Limiter
}

type listResponse struct {
	Count   int            `json:"count"`
	Next    *string        `json:"next"`
	Results []namedPokemon `json:"results"`
}

type namedPokemon struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NewSource creates a PokeAPI source.
func NewSource(cfg Config) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPageSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRate
	}

	return &Source{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		pageSize: cfg.PageSize,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Name identifies the source.
func (s *Source) Name() string {
	return "pokeapi"
}

// FetchPage retrieves one page of Pokémon.
// The page is the last when the API reports no next link.
func (s *Source) FetchPage(ctx context.Context, page int) (driven.Page, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return driven.Page{}, err
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(s.pageSize))
	query.Set("offset", strconv.Itoa(page*s.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/pokemon?"+query.Encode(), nil)
	if err != nil {
		return driven.Page{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return driven.Page{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return driven.Page{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return driven.Page{}, fmt.Errorf("decode response: %w", err)
	}

	items := make([]domain.Item, 0, len(list.Results))
	for _, p := range list.Results {
		items = append(items, domain.Item{ID: idFromURL(p.URL, p.Name), Name: p.Name, URL: p.URL})
	}
	return driven.Page{Items: items, Last: list.Next == nil || len(items) == 0}, nil
}

// IsRateLimited reports whether err came from a 429 response.
func IsRateLimited(err error) bool {
	return errors.Is(err, domain.ErrRateLimited)
}

// idFromURL extracts the numeric id from ".../pokemon/25/", falling back to name.
func idFromURL(raw, name string) string {
	trimmed := strings.TrimRight(raw, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return name
	}
	id := trimmed[idx+1:]
	if _, err := strconv.Atoi(id); err != nil {
		return name
	}
	return id
}
