package fetch

import (
	"context"

	"github.com/masmgr/contribspots/internal/logger"
)

// Paginate follows next-page links starting at req until a record whose
// identifier equals boundary is found or the pages run out.
//
// Records are returned in the order received. When the boundary is found the
// result ends with that record; the rest of its page is dropped. Running out of
// pages before the boundary is not an error. Any request failure aborts the
// traversal and no records are returned.
func Paginate[T any](ctx context.Context, c *Client, req Request, boundary string, idOf func(T) string) ([]T, error) {
	var records []T

	for pageNum := 1; ; pageNum++ {
		page, err := Get[[]T](ctx, c, req)
		if err != nil {
			return nil, err
		}

		logger.Debug(ctx, "fetched page",
			"page", pageNum, "url", req.URL, "records", len(page.Body), "next", page.NextPageURL)

		if i := indexOf(page.Body, boundary, idOf); i >= 0 {
			return append(records, page.Body[:i+1]...), nil
		}

		records = append(records, page.Body...)
		if !page.HasNext() {
			return records, nil
		}
		req = req.WithURL(page.NextPageURL)
	}
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}
