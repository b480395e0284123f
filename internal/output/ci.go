package output

// CIContributorWriter writes contributor reports as NDJSON (one JSON object per line) for CI pipelines.
type CIContributorWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type              string `json:"type"`
	Repo              string `json:"repo"`
	Boundary          string `json:"boundary"`
	TotalCommits      int    `json:"totalCommits"`
	EligibleCommits   int    `json:"eligibleCommits"`
	TotalContributors int    `json:"totalContributors"`
	TopContributor    string `json:"topContributor,omitempty"`
}

// CIContributorEntry represents a single contributor entry in CI output.
type CIContributorEntry struct {
	Type        string  `json:"type"`
	Rank        int     `json:"rank"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CommitCount int     `json:"commitCount"`
	Share       float64 `json:"share"`
}

// Write outputs the contributor report as NDJSON.
func (w *CIContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write summary line
	summary := CISummary{
		Type:              "summary",
		Repo:              report.Repo,
		Boundary:          report.Boundary,
		TotalCommits:      report.TotalCommits,
		EligibleCommits:   report.EligibleCommits,
		TotalContributors: len(report.Items),
	}
	if len(report.Items) > 0 {
		summary.TopContributor = report.Items[0].ID
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	// Write contributor entries
	for i, item := range items {
		entry := CIContributorEntry{
			Type:        "contributor",
			Rank:        i + 1,
			ID:          item.ID,
			Name:        item.Name,
			CommitCount: item.CommitCount,
			Share:       share(item.CommitCount, report.EligibleCommits),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}
