package cmd

import (
	"time"

	"github.com/masmgr/contribspots/internal/output"
	"github.com/urfave/cli/v2"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	return &cli.Command{
		Name:      "commits",
		Usage:     "List the commits of a remote range as fetched, without aggregation",
		ArgsUsage: "[<owner> <repo> <commit>]",
		Flags:     concatFlags(remoteFlags(), rangeFlags(), outputFlags()),
		Action:    commitsAction,
	}
}

func commitsAction(c *cli.Context) error {
	return executeWithContext(c, remoteSource, func(ctx *CommandContext, c *cli.Context) error {
		report := &output.CommitListReport{
			Repo:        ctx.Repo,
			Boundary:    ctx.Boundary,
			To:          ctx.To,
			GeneratedAt: time.Now(),
			Commits:     ctx.Commits,
		}
		return writeCommitList(c, ctx, report)
	})
}
