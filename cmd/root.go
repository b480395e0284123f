package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/masmgr/contribspots/config"
	"github.com/masmgr/contribspots/internal/aggregation"
	"github.com/masmgr/contribspots/internal/fetch"
	"github.com/masmgr/contribspots/internal/logger"
	"github.com/masmgr/contribspots/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "contribspots",
		Usage:     "Rank the contributors of a commit range",
		UsageText: "contribspots [global options] command [command options]\n   contribspots <owner> <repo> <commit>",
		Version:   "1.0.0",
		Commands: []*cli.Command{
			ContributorsCmd(),
			LocalCmd(),
			CommitsCmd(),
		},
		Flags: concatFlags(
			[]cli.Flag{
				&cli.StringFlag{
					Name:    "config",
					Aliases: []string{"c"},
					Usage:   "Path to configuration file",
				},
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Log progress messages",
				},
				&cli.BoolFlag{
					Name:  "debug",
					Usage: "Log every request and retry",
				},
			},
			// Accepted at the root for the legacy positional form
			remoteFlags(), rangeFlags(), contributorFlags(), outputFlags(),
		),
		Before: setupLogger,
		Action: legacyAction,
	}
}

func setupLogger(c *cli.Context) error {
	logger.Initialize(logger.Options{
		Verbose: c.Bool("verbose"),
		Debug:   c.Bool("debug"),
	})
	return nil
}

// Flags for reading history from the API
func remoteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "owner",
			Aliases: []string{"u"},
			Usage:   "Repository owner (user or organisation)",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Repository name",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token sent as the Authorization header",
			EnvVars: []string{"GITHUB_TOKEN", "CONTRIBSPOTS_TOKEN"},
		},
		&cli.StringFlag{
			Name:  "user-agent",
			Usage: "User-Agent header (default: the repository owner)",
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: "Base URL of the REST API (default: from config)",
		},
		&cli.BoolFlag{
			Name:  "retry",
			Usage: "Retry when the API answers 202 while it prepares the listing",
			Value: true,
		},
	}
}

// Flags that select the commit range
func rangeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "commit",
			Usage: "Boundary commit SHA; history is read back to and including it (required)",
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "Branch, tag or SHA to start from (default: default branch or HEAD)",
		},
	}
}

// Flags controlling contributor counting
func contributorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "exclude-bot",
			Usage: "Drop commits authored by the configured bot account",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of logins to drop (can be specified multiple times)",
		},
	}
}

// Common output flags shared across commands
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of top results to show (0: all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

func concatFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch strings.ToLower(s) {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults and applies CLI overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if apiURL := c.String("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if userAgent := c.String("user-agent"); userAgent != "" {
		cfg.API.UserAgent = userAgent
	}
	if c.IsSet("retry") {
		cfg.API.Retry = c.Bool("retry")
	}
	if c.Bool("exclude-bot") {
		cfg.Contributors.ExcludeBot = true
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Contributors.ExcludePatterns = excludes
	}
	if format := c.String("format"); format != "" {
		cfg.Output.Format = string(getOutputFormat(format))
	}
	if c.IsSet("top") {
		cfg.Output.Top = c.Int("top")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// contributorOptions builds aggregation options from configuration.
func contributorOptions(cfg *config.Config) (aggregation.ContributorOptions, error) {
	for _, pattern := range cfg.Contributors.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return aggregation.ContributorOptions{}, fmt.Errorf("invalid exclude pattern: %q", pattern)
		}
	}
	return aggregation.ContributorOptions{
		ExcludeBot:      cfg.Contributors.ExcludeBot,
		BotLogin:        cfg.Contributors.BotLogin,
		ExcludePatterns: cfg.Contributors.ExcludePatterns,
	}, nil
}

// legacyAction handles the default (legacy) command behavior.
// Given <owner> <repo> <commit> as arguments, or the equivalent flags, it runs the contributors command.
func legacyAction(c *cli.Context) error {
	// If no args and no subcommand, show help
	if c.NArg() == 0 && !c.IsSet("commit") {
		return cli.ShowAppHelp(c)
	}
	if c.NArg() != 0 && c.NArg() != 3 {
		return fmt.Errorf("expected <owner> <repo> <commit>, got %d argument(s)", c.NArg())
	}

	return contributorsAction(c)
}

// rateLimitHint explains an exhausted rate limit carried by err, if any.
func rateLimitHint(err error) string {
	fe, ok := fetch.AsError(err)
	if !ok || !fe.RateLimit.Exhausted() {
		return ""
	}
	hint := fmt.Sprintf("API rate limit of %d requests exhausted", fe.RateLimit.Limit)
	if reset := fe.RateLimit.ResetTime(); !reset.IsZero() {
		hint += "; resets at " + reset.Format(time.RFC1123)
	}
	return hint
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := rateLimitHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}
