package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/contribspots/internal/logger"
	"github.com/masmgr/contribspots/internal/output"
)

// executeWithContext reads the history selected by c from source and hands it to run.
func executeWithContext(c *cli.Context, source historySource, run func(*CommandContext, *cli.Context) error) error {
	ctx, err := NewCommandContext(c, source)
	if err != nil {
		return err
	}
	if !ctx.HasCommits() {
		logger.Warn(commandContext(c), "no commits found in the specified range")
	}
	return run(ctx, c)
}

func writeContributorReport(c *cli.Context, ctx *CommandContext, report *output.ContributorReport) error {
	opts := ctx.OutputOptions(c)
	writer := output.NewContributorReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeCommitList(c *cli.Context, ctx *CommandContext, report *output.CommitListReport) error {
	opts := ctx.OutputOptions(c)
	writer := output.NewCommitListWriter(opts.Format)
	return writer.Write(report, opts)
}
