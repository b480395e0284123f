package git

import (
	"context"

	"github.com/google/go-github/v80/github"
)

// MockHistoryReader is a test double for HistoryReader.
// It allows tests to provide predefined commit data without needing a real Git repository.
type MockHistoryReader struct {
	Commits []CommitInfo
	Error   error
}

// NewMockHistoryReader creates a new MockHistoryReader with the given data.
func NewMockHistoryReader(commits []CommitInfo, err error) *MockHistoryReader {
	return &MockHistoryReader{
		Commits: commits,
		Error:   err,
	}
}

// ReadCommits returns the predefined commits as records, or the error.
func (m *MockHistoryReader) ReadCommits(_ context.Context) ([]*github.RepositoryCommit, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	records := make([]*github.RepositoryCommit, 0, len(m.Commits))
	for _, c := range m.Commits {
		records = append(records, c.ToRecord())
	}
	return records, nil
}

// Compile-time interface conformance check.
var _ RepositoryReader = (*MockHistoryReader)(nil)
