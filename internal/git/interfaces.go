package git

import (
	"context"

	"github.com/google/go-github/v80/github"
)

// RepositoryReader defines the interface for reading Git repository history.
// This abstraction allows for easier testing and potential alternative implementations.
type RepositoryReader interface {
	// ReadCommits returns commits from the start revision back to the boundary, newest first.
	ReadCommits(ctx context.Context) ([]*github.RepositoryCommit, error)
}

// Compile-time interface conformance check.
var _ RepositoryReader = (*HistoryReader)(nil)
