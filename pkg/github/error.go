package github

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v74/github"
)

// IsNotFound reports whether err is a GitHub API 404.
// Callers reclassify 404s: a missing .github/workflows directory means
// "no workflows", a missing action.yml means "not a composite action".
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsAlreadyExists reports whether err is a 422 validation error, which the
// label API returns when a label with the same name exists.
func IsAlreadyExists(err error) bool {
	return hasStatus(err, http.StatusUnprocessableEntity)
}

func hasStatus(err error, status int) bool {
	var gerr *github.ErrorResponse
	if errors.As(err, &gerr) && gerr.Response != nil {
		return gerr.Response.StatusCode == status
	}
	return false
}

// AsRateLimit extracts a rate limit error so callers can sleep until the
// reset time instead of failing the run.
func AsRateLimit(err error) (*github.RateLimitError, bool) {
	var rlerr *github.RateLimitError
	if errors.As(err, &rlerr) {
		return rlerr, true
	}
	return nil, false
}
