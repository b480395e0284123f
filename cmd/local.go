package cmd

import (
	"github.com/urfave/cli/v2"
)

// LocalCmd returns the local command.
func LocalCmd() *cli.Command {
	flags := concatFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Path to Git repository",
				Value:   ".",
			},
		},
		rangeFlags(), contributorFlags(), outputFlags(),
	)

	return &cli.Command{
		Name:    "local",
		Aliases: []string{"l"},
		Usage:   "Rank contributors of a commit range in a local clone (login: author email)",
		Flags:   flags,
		Action:  localAction,
	}
}

func localAction(c *cli.Context) error {
	return executeWithContext(c, localSource, writeContributors)
}
