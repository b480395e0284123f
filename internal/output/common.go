package output

import (
	"io"
	"os"
	"strings"
)

const (
	reportDateTimeLayout = "2006-01-02T15:04:05"
	shortSHALength       = 8
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// rangeValue renders the commit range as "<boundary>..<to>".
func rangeValue(boundary, to string) string {
	if to == "" {
		to = "HEAD"
	}
	return shortSHA(boundary) + ".." + shortSHA(to)
}

func shortSHA(sha string) string {
	if len(sha) == 40 && strings.TrimLeft(sha, "0123456789abcdef") == "" {
		return sha[:shortSHALength]
	}
	return sha
}

func share(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func firstLine(msg string) string {
	if idx := strings.IndexByte(msg, '\n'); idx != -1 {
		return strings.TrimRight(msg[:idx], "\r")
	}
	return msg
}

func truncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if len(runes) <= maxLen {
		return msg
	}
	return string(runes[:maxLen-3]) + "..."
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
