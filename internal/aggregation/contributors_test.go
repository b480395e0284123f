package aggregation

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-github/v80/github"
)

func loadFixture(t *testing.T) []*github.RepositoryCommit {
	t.Helper()

	data, err := os.ReadFile("testdata/commits.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var commits []*github.RepositoryCommit
	if err := json.Unmarshal(data, &commits); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return commits
}

func newCommit(login, name string, parents int) *github.RepositoryCommit {
	c := &github.RepositoryCommit{
		SHA:    github.Ptr(login + name),
		Commit: &github.Commit{Author: &github.CommitAuthor{Name: github.Ptr(name)}},
	}
	for i := 0; i < parents; i++ {
		c.Parents = append(c.Parents, &github.Commit{})
	}
	if login != "" {
		c.Author = &github.User{Login: github.Ptr(login)}
	}
	return c
}

func TestContributors_Fixture(t *testing.T) {
	commits := loadFixture(t)

	t.Run("all unique contributors", func(t *testing.T) {
		result := Contributors(commits, ContributorOptions{})
		if len(result) != 4 {
			t.Fatalf("len = %d, expected 4: %+v", len(result), result)
		}
	})

	t.Run("bot excluded", func(t *testing.T) {
		result := Contributors(commits, ContributorOptions{ExcludeBot: true})
		if len(result) != 3 {
			t.Fatalf("len = %d, expected 3: %+v", len(result), result)
		}
		for _, e := range result {
			if e.ID == DefaultBotLogin {
				t.Fatalf("bot commit counted: %+v", e)
			}
		}
	})

	t.Run("details and order", func(t *testing.T) {
		result := Contributors(commits, ContributorOptions{ExcludeBot: true})
		expected := []ContributorEntry{
			{ID: "kirrg001", Name: "Katharina Irrgang", CommitCount: 7},
			{ID: "kevinansfield", Name: "Kevin Ansfield", CommitCount: 2},
			{ID: "acburdine", Name: "Austin Burdine", CommitCount: 1},
		}
		if len(result) != len(expected) {
			t.Fatalf("len = %d, expected %d", len(result), len(expected))
		}
		for i := range expected {
			if result[i] != expected[i] {
				t.Errorf("result[%d] = %+v, expected %+v", i, result[i], expected[i])
			}
		}
	})
}

func TestContributorCalculator_IsEligible(t *testing.T) {
	calc := NewContributorCalculator(ContributorOptions{
		ExcludeBot:      true,
		ExcludePatterns: []string{"*\\[bot\\]", "renovate*"},
	})

	tests := []struct {
		name     string
		commit   *github.RepositoryCommit
		expected bool
	}{
		{name: "Regular commit", commit: newCommit("ErisDS", "Hannah Wolfe", 1), expected: true},
		{name: "Merge commit", commit: newCommit("ErisDS", "Hannah Wolfe", 2), expected: false},
		{name: "Root commit", commit: newCommit("ErisDS", "Hannah Wolfe", 0), expected: false},
		{name: "No linked author", commit: newCommit("", "Someone", 1), expected: false},
		{name: "Default bot", commit: newCommit(DefaultBotLogin, "greenkeeper", 1), expected: false},
		{name: "Bracket bot pattern", commit: newCommit("dependabot[bot]", "dependabot", 1), expected: false},
		{name: "Prefix pattern", commit: newCommit("renovate-bot", "Renovate", 1), expected: false},
		{name: "Nil commit", commit: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.IsEligible(tt.commit); got != tt.expected {
				t.Errorf("IsEligible() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestContributorCalculator_CustomBotLogin(t *testing.T) {
	commits := []*github.RepositoryCommit{
		newCommit("greenkeeperio-bot", "greenkeeper", 1),
		newCommit("release-bot", "Release", 1),
	}

	result := Contributors(commits, ContributorOptions{ExcludeBot: true, BotLogin: "release-bot"})
	if len(result) != 1 || result[0].ID != "greenkeeperio-bot" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestContributorCalculator_NameFromCommitAuthor(t *testing.T) {
	commits := []*github.RepositoryCommit{
		newCommit("kirrg001", "Katharina Irrgang", 1),
		newCommit("kirrg001", "katharina", 1),
	}

	result := Contributors(commits, ContributorOptions{})
	if len(result) != 1 {
		t.Fatalf("len = %d, expected 1", len(result))
	}
	if result[0].ID != "kirrg001" || result[0].Name != "Katharina Irrgang" || result[0].CommitCount != 2 {
		t.Errorf("unexpected entry %+v", result[0])
	}
}

func TestContributorCalculator_TiesKeepFirstSeenOrder(t *testing.T) {
	commits := []*github.RepositoryCommit{
		newCommit("c", "C", 1),
		newCommit("a", "A", 1),
		newCommit("b", "B", 1),
		newCommit("b", "B", 1),
	}

	result := Contributors(commits, ContributorOptions{})
	got := []string{result[0].ID, result[1].ID, result[2].ID}
	expected := []string{"b", "c", "a"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", got, expected)
		}
	}
}

func TestContributorCalculator_Empty(t *testing.T) {
	result := Contributors(nil, ContributorOptions{})
	if result == nil || len(result) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", result)
	}
}

func TestContributorCalculator_CountEligible(t *testing.T) {
	commits := loadFixture(t)

	if got := NewContributorCalculator(ContributorOptions{}).CountEligible(commits); got != 11 {
		t.Errorf("CountEligible() = %d, expected 11", got)
	}
	if got := NewContributorCalculator(ContributorOptions{ExcludeBot: true}).CountEligible(commits); got != 10 {
		t.Errorf("CountEligible(excludeBot) = %d, expected 10", got)
	}
}
