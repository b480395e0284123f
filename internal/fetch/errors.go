package fetch

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies a fetch failure.
type Kind int

const (
	KindTransport Kind = iota
	KindServer
	KindClient
	KindNotReady
	KindDecode
)

// String returns a string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	case KindNotReady:
		return "not-ready"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RateLimit holds the X-RateLimit-* headers of a response.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     int64 // Unix seconds
	Known     bool  // false when the response carried no rate limit headers

	// HasRemaining is set only when X-RateLimit-Remaining was present.
	HasRemaining bool
}

// ResetTime returns Reset as a time, or the zero time when unknown.
func (r RateLimit) ResetTime() time.Time {
	if !r.Known || r.Reset == 0 {
		return time.Time{}
	}
	return time.Unix(r.Reset, 0)
}

// Exhausted reports whether the response said no requests are left.
func (r RateLimit) Exhausted() bool {
	return r.HasRemaining && r.Remaining == 0
}

func parseRateLimit(h http.Header) RateLimit {
	var rl RateLimit
	if v := h.Get("X-RateLimit-Limit"); v != "" {
		rl.Limit, _ = strconv.Atoi(v)
		rl.Known = true
	}
	if v := h.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rl.Remaining = n
			rl.HasRemaining = true
		}
		rl.Known = true
	}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		rl.Reset, _ = strconv.ParseInt(v, 10, 64)
		rl.Known = true
	}
	return rl
}

// Error is returned for every failed request. Values are never modified after
// construction.
type Error struct {
	Kind       Kind
	URL        string
	HTTPStatus int // 0 for transport failures
	Attempt    int
	RateLimit  RateLimit

	msg string
	err error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func transportError(req Request, msg string, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		URL:     req.URL,
		Attempt: req.Attempt,
		msg:     msg,
		err:     err,
	}
}

func responseError(kind Kind, msg string, req Request, resp *http.Response, cause error) *Error {
	return &Error{
		Kind:       kind,
		URL:        req.URL,
		HTTPStatus: resp.StatusCode,
		Attempt:    req.Attempt,
		RateLimit:  parseRateLimit(resp.Header),
		msg:        msg,
		err:        cause,
	}
}
