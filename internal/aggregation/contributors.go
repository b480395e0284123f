package aggregation

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-github/v80/github"
)

// DefaultBotLogin is the automation account dropped when ExcludeBot is set.
const DefaultBotLogin = "greenkeeperio-bot"

// ContributorEntry is one distinct author with the number of commits credited to it.
type ContributorEntry struct {
	ID          string // account login
	Name        string // display name from the first counted commit
	CommitCount int
}

// ContributorOptions controls which commits are counted.
type ContributorOptions struct {
	ExcludeBot      bool
	BotLogin        string   // defaults to DefaultBotLogin
	ExcludePatterns []string // doublestar globs matched against the login
}

// ContributorCalculator reduces commit records to a ranked contributor list.
type ContributorCalculator struct {
	opts ContributorOptions
}

// NewContributorCalculator creates a new contributor calculator.
func NewContributorCalculator(opts ContributorOptions) *ContributorCalculator {
	if opts.BotLogin == "" {
		opts.BotLogin = DefaultBotLogin
	}
	return &ContributorCalculator{opts: opts}
}

// Contributors is a shorthand for NewContributorCalculator(opts).Calculate(commits).
func Contributors(commits []*github.RepositoryCommit, opts ContributorOptions) []ContributorEntry {
	return NewContributorCalculator(opts).Calculate(commits)
}

// IsEligible reports whether a commit is credited to a contributor.
// Only commits with exactly one parent and a linked author count, so merges
// and root commits are skipped.
func (c *ContributorCalculator) IsEligible(commit *github.RepositoryCommit) bool {
	if commit == nil || len(commit.Parents) != 1 || commit.Author == nil {
		return false
	}

	login := commit.GetAuthor().GetLogin()
	if c.opts.ExcludeBot && login == c.opts.BotLogin {
		return false
	}
	for _, pattern := range c.opts.ExcludePatterns {
		if matched, _ := doublestar.Match(pattern, login); matched {
			return false
		}
	}
	return true
}

// Calculate counts eligible commits per author login and returns the entries
// ordered by commit count, highest first. Authors with equal counts keep the
// order in which they were first seen. The input is not modified.
func (c *ContributorCalculator) Calculate(commits []*github.RepositoryCommit) []ContributorEntry {
	entries := make([]ContributorEntry, 0)
	index := make(map[string]int)

	for _, commit := range commits {
		if !c.IsEligible(commit) {
			continue
		}

		id := commit.GetAuthor().GetLogin()
		if i, ok := index[id]; ok {
			entries[i].CommitCount++
			continue
		}

		index[id] = len(entries)
		entries = append(entries, ContributorEntry{
			ID:          id,
			Name:        commit.GetCommit().GetAuthor().GetName(),
			CommitCount: 1,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CommitCount > entries[j].CommitCount
	})

	return entries
}

// CountEligible returns how many commits Calculate would credit.
func (c *ContributorCalculator) CountEligible(commits []*github.RepositoryCommit) int {
	n := 0
	for _, commit := range commits {
		if c.IsEligible(commit) {
			n++
		}
	}
	return n
}
