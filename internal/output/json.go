package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONContributorWriter writes contributor reports as JSON.
type JSONContributorWriter struct{}

// JSONContributorReport is the JSON output structure for contributor analysis.
type JSONContributorReport struct {
	Repo              string                `json:"repo"`
	Boundary          string                `json:"boundary"`
	To                *string               `json:"to,omitempty"`
	GeneratedAt       string                `json:"generatedAt"`
	TotalCommits      int                   `json:"totalCommits"`
	EligibleCommits   int                   `json:"eligibleCommits"`
	TotalContributors int                   `json:"totalContributors"`
	Items             []JSONContributorItem `json:"items"`
}

// JSONContributorItem is the JSON output structure for a single contributor.
type JSONContributorItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CommitCount int     `json:"commitCount"`
	Share       float64 `json:"share"`
}

// Write outputs the contributor report as JSON.
func (w *JSONContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	jsonItems := make([]JSONContributorItem, len(items))
	for i, item := range items {
		jsonItems[i] = JSONContributorItem{
			ID:          item.ID,
			Name:        item.Name,
			CommitCount: item.CommitCount,
			Share:       share(item.CommitCount, report.EligibleCommits),
		}
	}

	jsonReport := JSONContributorReport{
		Repo:              report.Repo,
		Boundary:          report.Boundary,
		To:                optionalString(report.To),
		GeneratedAt:       report.GeneratedAt.Format(time.RFC3339),
		TotalCommits:      report.TotalCommits,
		EligibleCommits:   report.EligibleCommits,
		TotalContributors: len(report.Items),
		Items:             jsonItems,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

// JSONCommitListWriter writes commit lists as JSON.
type JSONCommitListWriter struct{}

// JSONCommitListReport is the JSON output structure for a commit list.
type JSONCommitListReport struct {
	Repo         string           `json:"repo"`
	Boundary     string           `json:"boundary"`
	To           *string          `json:"to,omitempty"`
	GeneratedAt  string           `json:"generatedAt"`
	TotalCommits int              `json:"totalCommits"`
	Items        []JSONCommitItem `json:"items"`
}

// JSONCommitItem is the JSON output structure for a single commit.
type JSONCommitItem struct {
	SHA        string  `json:"sha"`
	Author     *string `json:"author"`
	AuthorName string  `json:"authorName"`
	Parents    int     `json:"parents"`
	Message    string  `json:"message"`
}

// Write outputs the commit list as JSON.
func (w *JSONCommitListWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	jsonItems := make([]JSONCommitItem, len(commits))
	for i, c := range commits {
		var author *string
		if c.Author != nil {
			login := c.Author.GetLogin()
			author = &login
		}
		jsonItems[i] = JSONCommitItem{
			SHA:        c.GetSHA(),
			Author:     author,
			AuthorName: c.GetCommit().GetAuthor().GetName(),
			Parents:    len(c.Parents),
			Message:    firstLine(c.GetCommit().GetMessage()),
		}
	}

	jsonReport := JSONCommitListReport{
		Repo:         report.Repo,
		Boundary:     report.Boundary,
		To:           optionalString(report.To),
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCommits: len(report.Commits),
		Items:        jsonItems,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeJSON(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
