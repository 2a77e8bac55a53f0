// Package drive lists files from Google Drive.
package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
	"github.com/custodia-labs/catalogue-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// MaxPageSize is the largest page size the Drive API accepts.
const MaxPageSize = 1000

const listFields = "nextPageToken, files(id, name, webViewLink)"

// Config holds configuration for the Drive source.
type Config struct {
	// Token is an OAuth2 access token with a Drive read scope.
	Token string

	// FolderID restricts the listing to the direct children of one folder.
	FolderID string

	// PageSize is the number of files per page.
	PageSize int

	// Endpoint overrides the API endpoint.
	Endpoint string

	// HTTPClient replaces the token-authenticated client. Used by tests.
	HTTPClient *http.Client
}

// Source pages through Drive files ordered by name.
//
// Drive paginates with opaque tokens, so the token for each page index is
// remembered as pages are fetched.
type Source struct {
	svc      *drive.FilesService
	query    string
	pageSize int

	mu     sync.Mutex
	tokens []string
	ended  bool
}

// NewSource creates a Drive source.
func NewSource(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Token == "" && cfg.HTTPClient == nil {
		return nil, fmt.Errorf("%w: drive source needs an access token", domain.ErrAuthRequired)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = domain.DefaultPageSize
	}
	cfg.PageSize = min(cfg.PageSize, MaxPageSize)

	var opts []option.ClientOption
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		opts = append(opts, option.WithTokenSource(ts))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(cfg.Endpoint, "/")+"/"))
	}

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Source{
		svc:      svc.Files,
		query:    buildQuery(cfg.FolderID),
		pageSize: cfg.PageSize,
		tokens:   []string{""},
	}, nil
}

// Name identifies the source.
func (s *Source) Name() string {
	return "drive"
}

// FetchPage retrieves the page at index page, walking forward through
// page tokens that have not been seen yet.
func (s *Source) FetchPage(ctx context.Context, page int) (driven.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.tokens) - 1; i < page; i++ {
		if s.ended {
			return driven.Page{Last: true}, nil
		}
		if _, err := s.list(ctx, i); err != nil {
			return driven.Page{}, err
		}
	}
	if page >= len(s.tokens) {
		return driven.Page{Last: true}, nil
	}
	return s.list(ctx, page)
}

// list fetches page i and records the token of page i+1. Caller holds mu.
func (s *Source) list(ctx context.Context, i int) (driven.Page, error) {
	call := s.svc.List().
		Context(ctx).
		Q(s.query).
		OrderBy("name").
		PageSize(int64(s.pageSize)).
		Fields(listFields)
	if token := s.tokens[i]; token != "" {
		call = call.PageToken(token)
	}

	resp, err := call.Do()
	if err != nil {
		return driven.Page{}, wrapError(err)
	}

	items := make([]domain.Item, 0, len(resp.Files))
	for _, f := range resp.Files {
		items = append(items, domain.Item{ID: f.Id, Name: f.Name, URL: f.WebViewLink})
	}

	last := resp.NextPageToken == ""
	if last {
		s.ended = true
		s.tokens = s.tokens[:i+1]
	} else if len(s.tokens) == i+1 {
		s.tokens = append(s.tokens, resp.NextPageToken)
	}
	return driven.Page{Items: items, Last: last}, nil
}

func buildQuery(folderID string) string {
	q := "trashed = false"
	if folderID != "" {
		q += fmt.Sprintf(" and '%s' in parents", strings.ReplaceAll(folderID, "'", `\'`))
	}
	return q
}

// wrapError maps Google API errors onto domain errors.
func wrapError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("list files: %w", err)
	}
	switch {
	case gerr.Code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", domain.ErrAuthRequired, err)
	case gerr.Code == http.StatusNotFound:
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case gerr.Code == http.StatusTooManyRequests || isRateLimitReason(gerr):
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	case gerr.Code >= 500:
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	default:
		return fmt.Errorf("list files: %w", err)
	}
}

func isRateLimitReason(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
			return true
		}
	}
	return false
}
