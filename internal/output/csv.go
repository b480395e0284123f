package output

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVContributorWriter writes contributor reports as CSV.
type CSVContributorWriter struct{}

// Write outputs the contributor report as CSV.
func (w *CSVContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Write header
	if err := writer.Write([]string{"Rank", "ID", "Name", "CommitCount", "Share"}); err != nil {
		return err
	}

	// Write data
	for i, item := range items {
		row := []string{
			fmt.Sprintf("%d", i+1),
			item.ID,
			item.Name,
			fmt.Sprintf("%d", item.CommitCount),
			fmt.Sprintf("%.6f", share(item.CommitCount, report.EligibleCommits)),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
