package cmd

import (
	"time"

	"github.com/masmgr/contribspots/internal/aggregation"
	"github.com/masmgr/contribspots/internal/output"
	"github.com/urfave/cli/v2"
)

// ContributorsCmd returns the contributors command.
func ContributorsCmd() *cli.Command {
	return &cli.Command{
		Name:      "contributors",
		Aliases:   []string{"c"},
		Usage:     "Rank contributors of a remote commit range",
		ArgsUsage: "[<owner> <repo> <commit>]",
		Flags:     concatFlags(remoteFlags(), rangeFlags(), contributorFlags(), outputFlags()),
		Action:    contributorsAction,
	}
}

func contributorsAction(c *cli.Context) error {
	return executeWithContext(c, remoteSource, writeContributors)
}

// writeContributors aggregates the range and writes the contributor report.
func writeContributors(ctx *CommandContext, c *cli.Context) error {
	opts, err := contributorOptions(ctx.Config)
	if err != nil {
		return err
	}

	calculator := aggregation.NewContributorCalculator(opts)
	report := &output.ContributorReport{
		Repo:            ctx.Repo,
		Boundary:        ctx.Boundary,
		To:              ctx.To,
		GeneratedAt:     time.Now(),
		TotalCommits:    len(ctx.Commits),
		EligibleCommits: calculator.CountEligible(ctx.Commits),
		Items:           calculator.Calculate(ctx.Commits),
	}

	return writeContributorReport(c, ctx, report)
}
