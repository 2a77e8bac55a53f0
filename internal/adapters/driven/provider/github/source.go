// Package github lists repositories of a GitHub user, organisation or of the
// authenticated user.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxPerPage is the largest page size the API accepts.
	MaxPerPage = 100
)

// Config holds configuration for the GitHub source.
type Config struct {
	// Owner is the user or organisation whose repositories are listed.
	// Empty lists the authenticated user's repositories and requires Token.
	Owner string

	// Token is an optional personal access token.
	Token string

	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	BaseURL string

	// PageSize is the number of repositories per page (max 100).
	PageSize int

	// RequestsPerSecond paces requests (default: 1.2).
	RequestsPerSecond float64
}

// Source pages through repositories.
type Source struct {
	gh          *gh.Client
	owner       string
	pageSize    int
	rateLimiter *RateLimiter
}

// NewSource creates a GitHub source.
func NewSource(cfg Config) (*Source, error) {
	if cfg.Owner == "" && cfg.Token == "" {
		return nil, fmt.Errorf("%w: github source needs an owner or a token", domain.ErrInvalidInput)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPageSize
	}
	cfg.PageSize = min(cfg.PageSize, MaxPerPage)

	hc := &http.Client{Timeout: DefaultTimeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = oauth2.NewClient(context.Background(), ts)
		hc.Timeout = DefaultTimeout
	}

	client := gh.NewClient(hc)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: github base url: %v", domain.ErrInvalidInput, err)
		}
		client.BaseURL = base
	}

	return &Source{
		gh:          client,
		owner:       cfg.Owner,
		pageSize:    cfg.PageSize,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// Name identifies the source.
func (s *Source) Name() string {
	return "github"
}

// RateLimiter returns the limiter for inspection.
func (s *Source) RateLimiter() *RateLimiter {
	return s.rateLimiter
}

// FetchPage retrieves one page of repositories, sorted by full name.
// GitHub pages are 1-based; page 0 maps to the API's page 1.
func (s *Source) FetchPage(ctx context.Context, page int) (driven.Page, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return driven.Page{}, fmt.Errorf("rate limit wait: %w", err)
	}

	list := gh.ListOptions{Page: page + 1, PerPage: s.pageSize}

	var (
		repos []*gh.Repository
		resp  *gh.Response
		err   error
	)
	if s.owner != "" {
		repos, resp, err = s.gh.Repositories.ListByUser(ctx, s.owner, &gh.RepositoryListByUserOptions{
			Sort:        "full_name",
			ListOptions: list,
		})
	} else {
		repos, resp, err = s.gh.Repositories.ListByAuthenticatedUser(ctx, &gh.RepositoryListByAuthenticatedUserOptions{
			Sort:        "full_name",
			ListOptions: list,
		})
	}
	if resp != nil {
		s.rateLimiter.Update(resp.Response)
	}
	if err != nil {
		return driven.Page{}, s.wrapError(err, "list repos")
	}

	items := make([]domain.Item, 0, len(repos))
	for _, repo := range repos {
		items = append(items, domain.Item{
			ID:   strconv.FormatInt(repo.GetID(), 10),
			Name: repo.GetFullName(),
			URL:  repo.GetHTMLURL(),
		})
	}
	return driven.Page{Items: items, Last: resp.NextPage == 0}, nil
}

// wrapError converts go-github errors to our error types.
func (s *Source) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &APIError{StatusCode: ghErr.Response.StatusCode, Message: ghErr.Message}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
