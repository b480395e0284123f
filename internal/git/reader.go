package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/google/go-github/v80/github"

	"github.com/masmgr/contribspots/internal/logger"
)

// HistoryReader reads commit history from a local Git repository.
type HistoryReader struct {
	repo *git.Repository
	opts ReadOptions
}

// NewHistoryReader creates a new history reader for the given repository.
func NewHistoryReader(opts ReadOptions) (*HistoryReader, error) {
	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, err
	}
	return &HistoryReader{repo: repo, opts: opts}, nil
}

// ReadHistory walks the log from the start revision, newest first, and stops
// after the boundary commit. If the boundary is never reached the whole
// reachable history is returned.
func (r *HistoryReader) ReadHistory(ctx context.Context) ([]CommitInfo, error) {
	from, err := r.resolveStart()
	if err != nil {
		return nil, err
	}
	boundary := r.resolveBoundary()

	cIter, err := r.repo.Log(&git.LogOptions{From: from, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer cIter.Close()

	var results []CommitInfo

	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		results = append(results, toCommitInfo(c))

		if boundary != "" && c.Hash.String() == boundary {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	merges := 0
	for _, c := range results {
		if c.IsMerge() {
			merges++
		}
	}
	logger.Debug(ctx, "read local history", "count", len(results), "merges", merges)

	return results, nil
}

// ReadCommits reads the history and converts it to API commit records.
func (r *HistoryReader) ReadCommits(ctx context.Context) ([]*github.RepositoryCommit, error) {
	history, err := r.ReadHistory(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*github.RepositoryCommit, 0, len(history))
	for _, c := range history {
		records = append(records, c.ToRecord())
	}
	return records, nil
}

func (r *HistoryReader) resolveStart() (plumbing.Hash, error) {
	if r.opts.To == "" {
		ref, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return ref.Hash(), nil
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(r.opts.To))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %q: %w", r.opts.To, err)
	}
	return *hash, nil
}

// resolveBoundary expands abbreviated hashes and ref names to a full hash.
// An unresolvable boundary is compared verbatim, which means it is never hit.
func (r *HistoryReader) resolveBoundary() string {
	if r.opts.Boundary == "" {
		return ""
	}
	if hash, err := r.repo.ResolveRevision(plumbing.Revision(r.opts.Boundary)); err == nil {
		return hash.String()
	}
	return strings.ToLower(r.opts.Boundary)
}

func toCommitInfo(c *object.Commit) CommitInfo {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}

	// Extract first line of commit message
	message := c.Message
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}

	return CommitInfo{
		SHA:     c.Hash.String(),
		When:    c.Author.When,
		Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		Message: message,
		Parents: parents,
	}
}
