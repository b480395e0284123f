package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-github/v80/github"
	"github.com/masmgr/contribspots/config"
	"github.com/masmgr/contribspots/internal/fetch"
	"github.com/masmgr/contribspots/internal/git"
	"github.com/masmgr/contribspots/internal/logger"
	"github.com/masmgr/contribspots/internal/output"
	"github.com/urfave/cli/v2"
)

var errMissingCommit = errors.New("boundary commit is required (--commit)")

// historyReader is satisfied by both the API lister and the local Git reader.
type historyReader interface {
	ReadCommits(ctx context.Context) ([]*github.RepositoryCommit, error)
}

// historySource opens a reader for the range selected on the command line and
// returns it together with a label naming the repository.
type historySource func(c *cli.Context, cfg *config.Config) (historyReader, string, error)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config   *config.Config
	Repo     string
	Boundary string
	To       string
	Commits  []*github.RepositoryCommit
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading, opening the history source and reading the range.
func NewCommandContext(c *cli.Context, source historySource) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	boundary := boundaryArg(c)
	if boundary == "" {
		return nil, errMissingCommit
	}

	reader, repo, err := source(c, cfg)
	if err != nil {
		return nil, err
	}

	ctx := logger.With(commandContext(c), "repo", repo)
	logger.Info(ctx, "reading history", "boundary", boundary, "to", c.String("to"))

	start := time.Now()
	commits, err := reader.ReadCommits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	logger.Info(ctx, "history read", "count", len(commits), "elapsed", time.Since(start).Round(time.Millisecond))

	return &CommandContext{
		Config:   cfg,
		Repo:     repo,
		Boundary: boundary,
		To:       c.String("to"),
		Commits:  commits,
	}, nil
}

// HasCommits returns true if commits were found in the specified range.
func (ctx *CommandContext) HasCommits() bool {
	return len(ctx.Commits) > 0
}

// OutputOptions creates OutputOptions from CLI flags and configuration.
func (ctx *CommandContext) OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(ctx.Config.Output.Format),
		Top:        ctx.Config.Output.Top,
		OutputPath: c.String("output"),
	}
}

// remoteSource reads the range from the commits API.
func remoteSource(c *cli.Context, cfg *config.Config) (historyReader, string, error) {
	owner := firstNonEmpty(c.String("owner"), c.Args().Get(0))
	repo := firstNonEmpty(c.String("repo"), c.Args().Get(1))
	if owner == "" || repo == "" {
		return nil, "", errors.New("repository owner and name are required (--owner, --repo)")
	}

	client := fetch.NewClient(fetch.WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second))
	query := fetch.CommitQuery{
		BaseURL:   cfg.API.BaseURL,
		Owner:     owner,
		Repo:      repo,
		To:        c.String("to"),
		Boundary:  boundaryArg(c),
		PerPage:   cfg.API.PerPage,
		UserAgent: firstNonEmpty(cfg.API.UserAgent, owner),
		Token:     c.String("token"),
		Retry:     cfg.API.Retry,
	}

	return fetch.NewCommitLister(client, query), owner + "/" + repo, nil
}

// localSource reads the range from a local clone.
func localSource(c *cli.Context, cfg *config.Config) (historyReader, string, error) {
	repoPath := firstNonEmpty(c.String("path"), ".")
	reader, err := git.NewHistoryReader(git.ReadOptions{
		RepoPath: repoPath,
		To:       c.String("to"),
		Boundary: boundaryArg(c),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to open repository: %w", err)
	}
	return reader, repoPath, nil
}

// boundaryArg returns the --commit flag, or the third positional argument in legacy form.
func boundaryArg(c *cli.Context) string {
	return firstNonEmpty(c.String("commit"), c.Args().Get(2))
}

func commandContext(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
