package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalogue-cli/internal/core/domain"
)

func newTestSource(t *testing.T, cfg Config, handler http.HandlerFunc) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	cfg.RequestsPerSecond = 1000
	source, err := NewSource(cfg)
	require.NoError(t, err)
	return source
}

func TestNewSource_RequiresOwnerOrToken(t *testing.T) {
	_, err := NewSource(Config{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSource_FetchPage_ByOwner(t *testing.T) {
	var serverURL string
	source := newTestSource(t, Config{Owner: "octocat", PageSize: 2}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		assert.Equal(t, "full_name", r.URL.Query().Get("sort"))

		w.Header().Set("Link", fmt.Sprintf(`<%s/users/octocat/repos?page=2>; rel="next"`, serverURL))
		fmt.Fprint(w, `[
			{"id": 1, "full_name": "octocat/hello-world", "html_url": "https://github.com/octocat/hello-world"},
			{"id": 2, "full_name": "octocat/spoon-knife", "html_url": "https://github.com/octocat/spoon-knife"}
		]`)
	})
	serverURL = source.gh.BaseURL.String()

	page, err := source.FetchPage(context.Background(), 0)

	require.NoError(t, err)
	assert.False(t, page.Last)
	assert.Equal(t, []domain.Item{
		{ID: "1", Name: "octocat/hello-world", URL: "https://github.com/octocat/hello-world"},
		{ID: "2", Name: "octocat/spoon-knife", URL: "https://github.com/octocat/spoon-knife"},
	}, page.Items)
}

func TestSource_FetchPage_LastPage(t *testing.T) {
	source := newTestSource(t, Config{Owner: "octocat", PageSize: 2}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		fmt.Fprint(w, `[{"id": 5, "full_name": "octocat/linguist"}]`)
	})

	page, err := source.FetchPage(context.Background(), 2)

	require.NoError(t, err)
	assert.True(t, page.Last)
	assert.Len(t, page.Items, 1)
}

func TestSource_FetchPage_AuthenticatedUser(t *testing.T) {
	source := newTestSource(t, Config{Token: "ghp_test"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/repos", r.URL.Path)
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	})

	page, err := source.FetchPage(context.Background(), 0)

	require.NoError(t, err)
	assert.True(t, page.Last)
	assert.Empty(t, page.Items)
}

func TestSource_FetchPage_NotFound(t *testing.T) {
	source := newTestSource(t, Config{Owner: "ghost"}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	_, err := source.FetchPage(context.Background(), 0)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not Found", apiErr.Message)
}

func TestSource_FetchPage_RateLimited(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	source := newTestSource(t, Config{Owner: "octocat"}, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRateLimit, "60")
		w.Header().Set(HeaderRateRemaining, "0")
		w.Header().Set(HeaderRateReset, strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	})

	_, err := source.FetchPage(context.Background(), 0)

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 0, source.RateLimiter().Remaining())
	assert.Equal(t, reset, source.RateLimiter().ResetTime().Unix())
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	limiter := NewRateLimiter(1000)
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "0")
	resp.Header.Set(HeaderRateReset, strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
	limiter.Update(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_Update(t *testing.T) {
	limiter := NewRateLimiter(0)
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateLimit, "5000")
	resp.Header.Set(HeaderRateRemaining, "4999")

	limiter.Update(resp)
	limiter.Update(nil)

	assert.Equal(t, 5000, limiter.Limit())
	assert.Equal(t, 4999, limiter.Remaining())
	assert.NoError(t, limiter.Wait(context.Background()))
}

func TestAPIError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{StatusCode: 401}, domain.ErrAuthRequired)
	assert.ErrorIs(t, &APIError{StatusCode: 503}, domain.ErrProviderUnavailable)
	assert.NotErrorIs(t, &APIError{StatusCode: 422}, domain.ErrNotFound)
}
