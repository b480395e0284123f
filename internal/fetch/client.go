package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"

	"github.com/masmgr/contribspots/internal/logger"
)

// DefaultTimeout bounds a single HTTP round trip.
const DefaultTimeout = 30 * time.Second

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues API requests. It holds no per-request state and may be shared.
type Client struct {
	doer  Doer
	delay func(attempt int) time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithDoer replaces the HTTP client used for requests.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.doer = &http.Client{Timeout: timeout}
	}
}

// WithRetryDelay replaces the backoff schedule used for 202 retries.
func WithRetryDelay(delay func(attempt int) time.Duration) Option {
	return func(c *Client) {
		c.delay = delay
	}
}

// NewClient creates a client using http.Client with DefaultTimeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		doer:  &http.Client{Timeout: DefaultTimeout},
		delay: RetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET for req and decodes the JSON body into T.
//
// A 202 response is retried with exponential backoff while req.Retry is set
// and the attempt count has not exceeded MaxAttempt; the retries are invisible
// to the caller when a later attempt succeeds. Every other failure is returned
// immediately as an *Error.
func Get[T any](ctx context.Context, c *Client, req Request) (*Page[T], error) {
	bo := newAttemptBackOff(req.Attempt, c.delay)
	current := req

	op := func() (*Page[T], error) {
		page, err := getOnce[T](ctx, c, current)
		if err == nil {
			return page, nil
		}
		if !current.Retry || !IsKind(err, KindNotReady) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notify := func(err error, delay time.Duration) {
		current = current.NextAttempt()
		kind := KindTransport
		if fe, ok := AsError(err); ok {
			kind = fe.Kind
		}
		logger.Debug(ctx, "API still computing, retrying",
			"url", req.URL, "kind", kind.String(), "attempt", current.Attempt, "delay", delay)
	}

	page, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
	if err != nil {
		if _, ok := AsError(err); !ok {
			return nil, transportError(req, "request aborted on url "+req.URL, err)
		}
		return nil, err
	}
	return page, nil
}

func getOnce[T any](ctx context.Context, c *Client, req Request) (*Page[T], error) {
	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return nil, transportError(req, "invalid request for url "+req.URL, err)
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, transportError(req, "request failed on url "+req.URL, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, responseError(KindServer, "server error on url "+req.URL, req, resp, nil)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, responseError(KindClient, "client error on url "+req.URL, req, resp, nil)
	case resp.StatusCode == http.StatusAccepted:
		return nil, responseError(KindNotReady, "API returned status 202. Try again in a few moments.", req, resp, nil)
	}

	var body T
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, responseError(KindDecode, "invalid response body on url "+req.URL, req, resp, err)
	}

	return &Page[T]{
		Body:        body,
		NextPageURL: NextPageURL(resp.Header.Get("Link")),
	}, nil
}

func newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", req.userAgent())
	httpReq.Header.Set("Accept", "application/json")
	if req.Token != "" {
		token := &oauth2.Token{AccessToken: req.Token, TokenType: "token"}
		token.SetAuthHeader(httpReq)
	}
	return httpReq, nil
}
