package git

import (
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
)

// CommitInfo represents minimal information about a Git commit.
type CommitInfo struct {
	SHA     string
	When    time.Time
	Author  AuthorInfo
	Message string
	Parents []string
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// ContributorKey returns a normalized identifier for grouping contributors.
func (a AuthorInfo) ContributorKey() string {
	return strings.ToLower(a.Email)
}

// IsMerge reports whether the commit has more than one parent.
func (c CommitInfo) IsMerge() bool {
	return len(c.Parents) > 1
}

// ToRecord converts the commit into the API commit shape so local and remote
// history share one aggregation path. The contributor key stands in for the
// account login; commits without an author email get no linked author.
func (c CommitInfo) ToRecord() *github.RepositoryCommit {
	parents := make([]*github.Commit, 0, len(c.Parents))
	for _, p := range c.Parents {
		parents = append(parents, &github.Commit{SHA: github.Ptr(p)})
	}

	record := &github.RepositoryCommit{
		SHA:     github.Ptr(c.SHA),
		Parents: parents,
		Commit: &github.Commit{
			SHA:     github.Ptr(c.SHA),
			Message: github.Ptr(c.Message),
			Author: &github.CommitAuthor{
				Name:  github.Ptr(c.Author.Name),
				Email: github.Ptr(c.Author.Email),
				Date:  &github.Timestamp{Time: c.When},
			},
		},
	}
	if key := c.Author.ContributorKey(); key != "" {
		record.Author = &github.User{Login: github.Ptr(key)}
	}
	return record
}

// ReadOptions configures the history reader.
type ReadOptions struct {
	RepoPath string
	To       string // revision to start from; HEAD when empty
	Boundary string // revision that ends the walk, inclusive; full history when empty
}
