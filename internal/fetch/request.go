package fetch

// DefaultUserAgent is sent when a request carries no user agent.
const DefaultUserAgent = "request"

// MaxAttempt is the highest attempt count that may still be retried after a
// 202 response. A request whose attempt count exceeds it fails.
const MaxAttempt = 4

// Request describes one call to the API. It is passed by value; the With*
// methods return modified copies.
type Request struct {
	URL       string
	UserAgent string
	Token     string // optional credential, sent as "Authorization: token <Token>"
	Retry     bool   // retry 202 responses with backoff
	Attempt   int
}

// WithURL returns a copy of r pointing at url with a fresh attempt count.
func (r Request) WithURL(url string) Request {
	r.URL = url
	r.Attempt = 0
	return r
}

// NextAttempt returns a copy of r with the attempt count incremented.
func (r Request) NextAttempt() Request {
	r.Attempt++
	return r
}

func (r Request) userAgent() string {
	if r.UserAgent == "" {
		return DefaultUserAgent
	}
	return r.UserAgent
}

// Page is the result of one successful GET.
type Page[T any] struct {
	Body        T
	NextPageURL string // empty when there are no further pages
}

// HasNext reports whether the response pointed at another page.
func (p *Page[T]) HasNext() bool {
	return p.NextPageURL != ""
}
