package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleContributorWriter writes contributor reports to the console.
type ConsoleContributorWriter struct{}

// Write outputs the contributor report to the console.
func (w *ConsoleContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Contributor Analysis Results")
	fmt.Fprintf(out, "Repository: %s\n", report.Repo)
	fmt.Fprintf(out, "Range: %s\n", rangeValue(report.Boundary, report.To))
	fmt.Fprintf(out, "Commits fetched: %d, counted: %d, contributors: %d\n\n",
		report.TotalCommits, report.EligibleCommits, len(report.Items))

	if len(items) == 0 {
		fmt.Fprintln(out, "No contributors found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	// Write header
	fmt.Fprintln(tw, "#\tLogin\tName\tCommits\tShare")

	// Write rows
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%5.1f%%\n",
			i+1,
			item.ID,
			item.Name,
			item.CommitCount,
			share(item.CommitCount, report.EligibleCommits)*100,
		)
	}

	return tw.Flush()
}

// ConsoleCommitListWriter writes commit lists to the console.
type ConsoleCommitListWriter struct{}

// Write outputs the commit list to the console.
func (w *ConsoleCommitListWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Commit History")
	fmt.Fprintf(out, "Repository: %s\n", report.Repo)
	fmt.Fprintf(out, "Range: %s\n", rangeValue(report.Boundary, report.To))
	fmt.Fprintf(out, "Total commits: %d\n\n", len(report.Commits))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tSHA\tAuthor\tParents\tMessage")

	for i, c := range commits {
		author := c.GetAuthor().GetLogin()
		if author == "" {
			author = color.YellowString("(unlinked)")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			i+1,
			shortSHA(c.GetSHA()),
			author,
			len(c.Parents),
			truncateMessage(firstLine(c.GetCommit().GetMessage()), 50),
		)
	}

	return tw.Flush()
}
