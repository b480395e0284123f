package output

import (
	"fmt"
	"strings"
)

// MarkdownContributorWriter writes contributor reports as Markdown.
type MarkdownContributorWriter struct{}

// Write outputs the contributor report as Markdown.
func (w *MarkdownContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Contributor Analysis Results")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", escapeMarkdown(report.Repo))
	fmt.Fprintf(out, "**Range:** `%s`\n\n", rangeValue(report.Boundary, report.To))
	fmt.Fprintf(out, "**Generated:** %s\n\n", report.GeneratedAt.Format(reportDateTimeLayout))
	fmt.Fprintf(out, "**Commits Counted:** %d of %d\n\n", report.EligibleCommits, report.TotalCommits)

	fmt.Fprintln(out, "## Contributors")
	fmt.Fprintln(out)
	if len(items) == 0 {
		fmt.Fprintln(out, "_No contributors found._")
		return nil
	}

	// Table
	fmt.Fprintln(out, "| # | Login | Name | Commits | Share |")
	fmt.Fprintln(out, "|---|-------|------|---------|-------|")
	for i, item := range items {
		fmt.Fprintf(out, "| %d | `%s` | %s | %d | %.1f%% |\n",
			i+1, item.ID, escapeMarkdown(item.Name), item.CommitCount,
			share(item.CommitCount, report.EligibleCommits)*100)
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
