// Package github constructs the GitHub API client and re-exports the
// go-github types the controllers depend on, so controller packages don't
// import the versioned go-github path directly.
package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

type (
	Client                      = github.Client
	ListOptions                 = github.ListOptions
	ListCursorOptions           = github.ListCursorOptions
	Response                    = github.Response
	Repository                  = github.Repository
	Timestamp                   = github.Timestamp
	User                        = github.User
	RepositoryListByOrgOptions  = github.RepositoryListByOrgOptions
	RepositoryContent           = github.RepositoryContent
	RepositoryContentGetOptions = github.RepositoryContentGetOptions
	Issue                       = github.Issue
	IssueRequest                = github.IssueRequest
	IssueListByRepoOptions      = github.IssueListByRepoOptions
	Label                       = github.Label
	DependabotAlert             = github.DependabotAlert
	DependabotSecurityAdvisory  = github.DependabotSecurityAdvisory
	Dependency                  = github.Dependency
	VulnerabilityPackage        = github.VulnerabilityPackage
	ListAlertsOptions           = github.ListAlertsOptions
	Rate                        = github.Rate
	SearchOptions               = github.SearchOptions
	CodeSearchResult            = github.CodeSearchResult
	CodeResult                  = github.CodeResult
	ErrorResponse               = github.ErrorResponse
	RateLimitError              = github.RateLimitError
)

// New creates a GitHub API client. An empty token yields an
// unauthenticated client, which is enough for public organizations.
func New(ctx context.Context, token string) *Client {
	return github.NewClient(httpClient(ctx, token))
}

func httpClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
}

// Ptr returns a pointer to the provided value.
func Ptr[T any](v T) *T {
	return github.Ptr(v)
}
