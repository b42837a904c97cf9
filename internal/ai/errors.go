package ai

import (
	"fmt"
	"net/http"
)

// FailureCategory labels why a provider call failed. The gateway treats every
// category the same for fallback purposes but logs them distinctly.
type FailureCategory string

const (
	CategoryNetwork   FailureCategory = "network"
	CategoryAuth      FailureCategory = "auth"
	CategoryQuota     FailureCategory = "quota"
	CategoryMalformed FailureCategory = "malformed_response"
)

type ProviderError struct {
	Category FailureCategory
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func networkErr(err error) *ProviderError {
	return &ProviderError{Category: CategoryNetwork, Err: err}
}

func malformedErr(err error) *ProviderError {
	return &ProviderError{Category: CategoryMalformed, Err: err}
}

// statusErr maps an HTTP error status to a failure category.
func statusErr(status int, body []byte) *ProviderError {
	category := CategoryMalformed
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		category = CategoryAuth
	case status == http.StatusTooManyRequests:
		category = CategoryQuota
	case status >= 500:
		category = CategoryNetwork
	}
	return &ProviderError{
		Category: category,
		Err:      fmt.Errorf("response status %d: %s", status, string(body)),
	}
}
