package infinitode

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned by every operation issued after Close.
	ErrSessionClosed = errors.New("infinitode: session is closed")

	// ErrMissingSession is returned by follow-up fetches called with a nil session.
	ErrMissingSession = errors.New("infinitode: a session is required")

	// ErrNotFetched is returned by Player.DailyQuest and Player.SkillPoint before
	// the corresponding fetch has run.
	ErrNotFetched = errors.New("infinitode: score has not been fetched yet")

	// ErrOutOfRange is wrapped by Leaderboard.Index and Leaderboard.Slice when the
	// requested bounds fall outside the score sequence.
	ErrOutOfRange = errors.New("infinitode: index out of range")
)

// BadArgumentError reports an invalid or missing caller argument. It is always
// returned before any network call is made.
type BadArgumentError struct {
	Param  string
	Value  string
	Reason string
}

func (e *BadArgumentError) Error() string {
	return fmt.Sprintf("infinitode: bad argument %s=%q: %s", e.Param, e.Value, e.Reason)
}

// APIError reports a failed exchange with the service: a connection error, a
// non-2xx status, or an error envelope returned by the API itself. StatusCode
// is zero when no response was received.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	cause      error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("infinitode: %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Message)
	case e.cause != nil:
		return fmt.Sprintf("infinitode: %s: %v", e.Endpoint, e.cause)
	default:
		return fmt.Sprintf("infinitode: %s: %s", e.Endpoint, e.Message)
	}
}

func (e *APIError) Unwrap() error { return e.cause }

// MalformedResponseError reports a response body that decoded but did not match
// the endpoint's contract: a missing required key or an unparseable numeric.
type MalformedResponseError struct {
	Endpoint string
	Field    string
	cause    error
}

func (e *MalformedResponseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("infinitode: %s: malformed response field %q: %v", e.Endpoint, e.Field, e.cause)
	}
	return fmt.Sprintf("infinitode: %s: malformed response: missing %q", e.Endpoint, e.Field)
}

func (e *MalformedResponseError) Unwrap() error { return e.cause }

// PageStructureError reports an HTML page that no longer carries an anchor the
// scraper depends on. It signals an upstream page-format change rather than a
// partial result.
type PageStructureError struct {
	Page   string
	Anchor string
}

func (e *PageStructureError) Error() string {
	return fmt.Sprintf("infinitode: unexpected %s page structure: anchor %q not found", e.Page, e.Anchor)
}
