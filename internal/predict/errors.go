package predict

import (
	"fmt"
	"strings"
)

// FailureKind is the closed set of upstream invocation failure categories.
// The HTTP layer maps each kind to a distinct status code, so the kind must
// survive wrapping.
type FailureKind int

const (
	// FailureGeneric covers transient or unrecognized upstream failures
	FailureGeneric FailureKind = iota
	// FailureQuota indicates exhausted quota or rate limiting
	FailureQuota
	// FailureAuth indicates bad or missing upstream credentials
	FailureAuth
)

// String returns a stable identifier for the failure kind
func (k FailureKind) String() string {
	switch k {
	case FailureQuota:
		return "quota_exceeded"
	case FailureAuth:
		return "auth_error"
	default:
		return "upstream_error"
	}
}

// UpstreamError wraps a generation invocation failure with its classified kind
type UpstreamError struct {
	Kind FailureKind
	Err  error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case FailureQuota:
		return fmt.Sprintf("API quota exceeded: %v", e.Err)
	case FailureAuth:
		return fmt.Sprintf("API key error: %v", e.Err)
	default:
		return fmt.Sprintf("prediction service error: %v", e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// quota patterns are checked before auth patterns so that messages carrying
// both (e.g. "rate limit reached for invalid tier") resolve as quota
var (
	quotaPatterns = []string{"quota", "limit", "rate limit", "429"}
	authPatterns  = []string{"api key", "invalid", "401", "403"}
)

// ClassifyUpstreamError maps an invocation error onto the failure taxonomy.
// The upstream SDK exposes failures as message text, so substring matching
// against known signal patterns is the only classification available; it is
// isolated here so it can be swapped for structured error codes later.
func ClassifyUpstreamError(err error) *UpstreamError {
	msg := strings.ToLower(err.Error())

	for _, p := range quotaPatterns {
		if strings.Contains(msg, p) {
			return &UpstreamError{Kind: FailureQuota, Err: err}
		}
	}
	for _, p := range authPatterns {
		if strings.Contains(msg, p) {
			return &UpstreamError{Kind: FailureAuth, Err: err}
		}
	}

	return &UpstreamError{Kind: FailureGeneric, Err: err}
}
