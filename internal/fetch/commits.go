package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v80/github"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultPerPage is the largest page size the commits endpoint accepts.
const DefaultPerPage = 100

// CommitsURL builds the first-page URL of the commit listing for owner/repo.
// A non-empty to is sent as the sha parameter so listing starts at that ref.
func CommitsURL(baseURL, owner, repo, to string, perPage int) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	query := fmt.Sprintf("?page=1&per_page=%d", perPage)
	if to != "" {
		query += "&sha=" + url.QueryEscape(to)
	}

	return strings.TrimRight(baseURL, "/") + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/commits" + query
}

// PaginateCommits walks the commit listing starting at req until the commit
// with SHA boundary, inclusive.
func PaginateCommits(ctx context.Context, c *Client, req Request, boundary string) ([]*github.RepositoryCommit, error) {
	return Paginate(ctx, c, req, boundary, (*github.RepositoryCommit).GetSHA)
}

// CommitQuery identifies a range of remote history.
type CommitQuery struct {
	BaseURL   string
	Owner     string
	Repo      string
	To        string // ref to start listing from; default branch when empty
	Boundary  string // SHA that ends the range, inclusive
	PerPage   int
	UserAgent string
	Token     string
	Retry     bool
}

// Request returns the first-page request for the query.
func (q CommitQuery) Request() Request {
	return Request{
		URL:       CommitsURL(q.BaseURL, q.Owner, q.Repo, q.To, q.PerPage),
		UserAgent: q.UserAgent,
		Token:     q.Token,
		Retry:     q.Retry,
	}
}

// CommitLister reads a commit range from the API.
type CommitLister struct {
	client *Client
	query  CommitQuery
}

// NewCommitLister creates a lister for query using client.
func NewCommitLister(client *Client, query CommitQuery) *CommitLister {
	return &CommitLister{client: client, query: query}
}

// ReadCommits fetches the commit range, newest first.
func (l *CommitLister) ReadCommits(ctx context.Context) ([]*github.RepositoryCommit, error) {
	return PaginateCommits(ctx, l.client, l.query.Request(), l.query.Boundary)
}
