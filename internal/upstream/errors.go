package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v84/github"

	"github.com/grokify/releasegate/pkg/model"
)

// ErrorCategory classifies upstream API failures so operators can tell a bad
// token from a missing repository from a rate limit without reading traces.
type ErrorCategory string

const (
	CategoryUnauthorized ErrorCategory = "unauthorized"
	CategoryForbidden    ErrorCategory = "forbidden"
	CategoryNotFound     ErrorCategory = "not-found"
	CategoryRateLimited  ErrorCategory = "rate-limited"
	CategoryBadPayload   ErrorCategory = "bad-payload"
	CategoryOther        ErrorCategory = "other"
)

// FetchError is a transport-level failure (DNS, connection, timeout) reaching
// the hosting API for the primary tag listing. Fatal for the resolution.
type FetchError struct {
	Repo model.RepoRef
	Err  error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching tag listing for %s: %v", e.Repo.FullName(), e.Err)
}

// Unwrap returns the underlying transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// DataError is a response the hosting API did send: a non-success status or a
// payload that did not decode. Fatal for the resolution.
type DataError struct {
	Repo       model.RepoRef
	Category   ErrorCategory
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *DataError) Error() string {
	repo := e.Repo.FullName()
	switch e.Category {
	case CategoryUnauthorized:
		return fmt.Sprintf("listing tags for %s: authentication failed (check the GitHub token): %v", repo, e.Err)
	case CategoryForbidden:
		return fmt.Sprintf("listing tags for %s: access forbidden: %v", repo, e.Err)
	case CategoryNotFound:
		return fmt.Sprintf("listing tags for %s: repository not found: %v", repo, e.Err)
	case CategoryRateLimited:
		return fmt.Sprintf("listing tags for %s: API rate limit exceeded: %v", repo, e.Err)
	case CategoryBadPayload:
		return fmt.Sprintf("listing tags for %s: unexpected response payload: %v", repo, e.Err)
	default:
		return fmt.Sprintf("listing tags for %s: upstream API error (HTTP %d): %v", repo, e.StatusCode, e.Err)
	}
}

// Unwrap returns the underlying API error.
func (e *DataError) Unwrap() error {
	return e.Err
}

// classifyListError sorts a primary-listing failure into the taxonomy: API
// responses become DataErrors with an operator-facing category, everything
// else is a transport FetchError.
func classifyListError(repo model.RepoRef, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &DataError{Repo: repo, Category: CategoryRateLimited, StatusCode: http.StatusForbidden, Err: err}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &DataError{Repo: repo, Category: CategoryRateLimited, StatusCode: http.StatusForbidden, Err: err}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		status := 0
		if respErr.Response != nil {
			status = respErr.Response.StatusCode
		}

		category := CategoryOther
		switch status {
		case http.StatusUnauthorized:
			category = CategoryUnauthorized
		case http.StatusForbidden:
			category = CategoryForbidden
		case http.StatusNotFound:
			category = CategoryNotFound
		case http.StatusTooManyRequests:
			category = CategoryRateLimited
		}

		return &DataError{Repo: repo, Category: category, StatusCode: status, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &DataError{Repo: repo, Category: CategoryBadPayload, Err: err}
	}

	return &FetchError{Repo: repo, Err: err}
}
