package output

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestCIContributorWriter_Write(t *testing.T) {
	report := sampleContributorReport()

	// Write to a temp file
	tmpFile := filepath.Join(t.TempDir(), "ci_output.ndjson")
	options := OutputOptions{
		Format:     FormatCI,
		OutputPath: tmpFile,
	}

	writer := &CIContributorWriter{}
	if err := writer.Write(report, options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 { // 1 summary + 3 contributors
		t.Fatalf("expected 4 lines, got %d: %s", len(lines), string(data))
	}

	// Verify summary line
	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.Type != "summary" {
		t.Errorf("summary.Type = %q, want %q", summary.Type, "summary")
	}
	if summary.TotalCommits != 15 {
		t.Errorf("summary.TotalCommits = %d, want 15", summary.TotalCommits)
	}
	if summary.EligibleCommits != 10 {
		t.Errorf("summary.EligibleCommits = %d, want 10", summary.EligibleCommits)
	}
	if summary.TotalContributors != 3 {
		t.Errorf("summary.TotalContributors = %d, want 3", summary.TotalContributors)
	}
	if summary.TopContributor != "kirrg001" {
		t.Errorf("summary.TopContributor = %q, want %q", summary.TopContributor, "kirrg001")
	}

	// Verify contributor entries
	expected := []struct {
		id    string
		count int
	}{
		{"kirrg001", 7},
		{"kevinansfield", 2},
		{"acburdine", 1},
	}
	for i, exp := range expected {
		var entry CIContributorEntry
		if err := json.Unmarshal([]byte(lines[i+1]), &entry); err != nil {
			t.Fatalf("Failed to parse entry %d: %v", i, err)
		}
		if entry.Type != "contributor" {
			t.Errorf("entry[%d].Type = %q, want %q", i, entry.Type, "contributor")
		}
		if entry.Rank != i+1 {
			t.Errorf("entry[%d].Rank = %d, want %d", i, entry.Rank, i+1)
		}
		if entry.ID != exp.id {
			t.Errorf("entry[%d].ID = %q, want %q", i, entry.ID, exp.id)
		}
		if entry.CommitCount != exp.count {
			t.Errorf("entry[%d].CommitCount = %d, want %d", i, entry.CommitCount, exp.count)
		}
	}
}

func TestCIContributorWriter_WriteWithTop(t *testing.T) {
	report := sampleContributorReport()

	tmpFile := filepath.Join(t.TempDir(), "ci_top.ndjson")
	options := OutputOptions{
		Format:     FormatCI,
		Top:        1,
		OutputPath: tmpFile,
	}

	writer := &CIContributorWriter{}
	if err := writer.Write(report, options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 { // 1 summary + 1 contributor
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), string(data))
	}

	// The summary still describes the whole report
	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.TotalContributors != 3 {
		t.Errorf("summary.TotalContributors = %d, want 3", summary.TotalContributors)
	}
}

func TestCIContributorWriter_EmptyReport(t *testing.T) {
	report := &ContributorReport{Repo: "acme/widgets", Boundary: "abc1234"}

	tmpFile := filepath.Join(t.TempDir(), "ci_empty.ndjson")
	writer := &CIContributorWriter{}
	if err := writer.Write(report, OutputOptions{Format: FormatCI, OutputPath: tmpFile}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), string(data))
	}
	if strings.Contains(lines[0], "topContributor") {
		t.Errorf("summary should omit topContributor when empty: %s", lines[0])
	}
}
