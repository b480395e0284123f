package output

import (
	"time"

	"github.com/google/go-github/v80/github"
	"github.com/masmgr/contribspots/internal/aggregation"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	// ContributorReportWriter implementations
	_ ContributorReportWriter = (*ConsoleContributorWriter)(nil)
	_ ContributorReportWriter = (*JSONContributorWriter)(nil)
	_ ContributorReportWriter = (*CSVContributorWriter)(nil)
	_ ContributorReportWriter = (*MarkdownContributorWriter)(nil)
	_ ContributorReportWriter = (*CIContributorWriter)(nil)

	// CommitListWriter implementations
	_ CommitListWriter = (*ConsoleCommitListWriter)(nil)
	_ CommitListWriter = (*JSONCommitListWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
}

// ContributorReport holds the ranked contributors for a commit range.
type ContributorReport struct {
	Repo            string // owner/repo for remote history, a path for local history
	Boundary        string
	To              string // empty means the default branch or HEAD
	GeneratedAt     time.Time
	TotalCommits    int
	EligibleCommits int
	Items           []aggregation.ContributorEntry
}

// CommitListReport holds the raw commits fetched for a range.
type CommitListReport struct {
	Repo        string
	Boundary    string
	To          string
	GeneratedAt time.Time
	Commits     []*github.RepositoryCommit
}

// ContributorReportWriter writes contributor reports.
type ContributorReportWriter interface {
	Write(report *ContributorReport, options OutputOptions) error
}

// CommitListWriter writes commit list reports.
type CommitListWriter interface {
	Write(report *CommitListReport, options OutputOptions) error
}

// NewContributorReportWriter creates a report writer for the specified format.
func NewContributorReportWriter(format OutputFormat) ContributorReportWriter {
	switch format {
	case FormatJSON:
		return &JSONContributorWriter{}
	case FormatCSV:
		return &CSVContributorWriter{}
	case FormatMarkdown:
		return &MarkdownContributorWriter{}
	case FormatCI:
		return &CIContributorWriter{}
	default:
		return &ConsoleContributorWriter{}
	}
}

// NewCommitListWriter creates a commit list writer for the specified format.
// Only console and JSON are supported; other formats fall back to console.
func NewCommitListWriter(format OutputFormat) CommitListWriter {
	switch format {
	case FormatJSON:
		return &JSONCommitListWriter{}
	default:
		return &ConsoleCommitListWriter{}
	}
}
