package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type record struct {
	ID string `json:"id"`
}

func recordID(r record) string { return r.ID }

// pagesDoer serves a fixed list of pages at page://n, linking each to the next.
type pagesDoer struct {
	pages    [][]record
	failAt   int // 1-based page that answers 500; 0 disables
	requests []string
}

func (d *pagesDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests = append(d.requests, req.URL.String())

	var n int
	if _, err := fmt.Sscanf(req.URL.String(), "page://%d", &n); err != nil || n < 1 || n > len(d.pages) {
		return newResponse(http.StatusNotFound, nil, ""), nil
	}
	if n == d.failAt {
		return newResponse(http.StatusInternalServerError, nil, ""), nil
	}

	body, _ := json.Marshal(d.pages[n-1])
	link := ""
	if n < len(d.pages) {
		link = fmt.Sprintf(`<page://%d>; rel="next", <page://%d>; rel="last"`, n+1, len(d.pages))
	}
	return newResponse(http.StatusOK, body, link), nil
}

func newResponse(status int, body []byte, link string) *http.Response {
	h := http.Header{}
	if link != "" {
		h.Set("Link", link)
	}
	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

func makePages(sizes ...int) [][]record {
	pages := make([][]record, len(sizes))
	next := 0
	for i, size := range sizes {
		pages[i] = make([]record, size)
		for j := range pages[i] {
			pages[i][j] = record{ID: fmt.Sprintf("r%d", next)}
			next++
		}
	}
	return pages
}

func flatten(pages [][]record) []record {
	var all []record
	for _, p := range pages {
		all = append(all, p...)
	}
	return all
}

func TestPaginate_StopsAtBoundary(t *testing.T) {
	doer := &pagesDoer{pages: makePages(3, 3, 3)}
	c := NewClient(WithDoer(doer))

	got, err := Paginate(context.Background(), c, Request{URL: "page://1"}, "r4", recordID)
	require.NoError(t, err)

	assert.Equal(t, flatten(doer.pages)[:5], got)
	assert.Equal(t, []string{"page://1", "page://2"}, doer.requests)
}

func TestPaginate_BoundaryFirstRecord(t *testing.T) {
	doer := &pagesDoer{pages: makePages(4, 4)}
	c := NewClient(WithDoer(doer))

	got, err := Paginate(context.Background(), c, Request{URL: "page://1"}, "r0", recordID)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "r0"}}, got)
	assert.Len(t, doer.requests, 1)
}

func TestPaginate_Exhaustion(t *testing.T) {
	doer := &pagesDoer{pages: makePages(2, 5, 1)}
	c := NewClient(WithDoer(doer))

	got, err := Paginate(context.Background(), c, Request{URL: "page://1"}, "missing", recordID)
	require.NoError(t, err)
	assert.Equal(t, flatten(doer.pages), got)
	assert.Equal(t, []string{"page://1", "page://2", "page://3"}, doer.requests)
}

func TestPaginate_EmptyBoundaryReadsEverything(t *testing.T) {
	doer := &pagesDoer{pages: [][]record{{{ID: ""}, {ID: "a"}}, {{ID: "b"}}}}
	c := NewClient(WithDoer(doer))

	got, err := Paginate(context.Background(), c, Request{URL: "page://1"}, "", recordID)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestPaginate_FailureAbortsTraversal(t *testing.T) {
	doer := &pagesDoer{pages: makePages(2, 2, 2), failAt: 2}
	c := NewClient(WithDoer(doer))

	got, err := Paginate(context.Background(), c, Request{URL: "page://1"}, "missing", recordID)
	assert.Nil(t, got)
	require.Error(t, err)

	fe, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindServer, fe.Kind)
	assert.Equal(t, "page://2", fe.URL)
	assert.Len(t, doer.requests, 2)
}

func TestPaginate_FollowsLinksOverHTTP(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "x", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/repos/x/y/commits":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repositories/1234567/commits?page=2&per_page=100>; rel="next"`, srv.URL))
			_, _ = w.Write([]byte(`[{"id":"acburdine"},{"id":"kirrg001"}]`))
		case "/repositories/1234567/commits":
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			_, _ = w.Write([]byte(`[{"id":"anotherUser"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	got, err := Paginate(context.Background(), newTestClient(), Request{URL: srv.URL + "/repos/x/y/commits", UserAgent: "x"}, "none", recordID)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "acburdine"}, {ID: "kirrg001"}, {ID: "anotherUser"}}, got)
}

func TestRapidPaginate_BoundaryLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 6).Draw(t, "pages")
		sizes := make([]int, count)
		for i := range sizes {
			sizes[i] = rapid.IntRange(1, 8).Draw(t, fmt.Sprintf("size%d", i))
		}
		pages := makePages(sizes...)

		k := rapid.IntRange(0, count-1).Draw(t, "boundaryPage")
		p := rapid.IntRange(0, sizes[k]-1).Draw(t, "boundaryPos")
		boundary := pages[k][p].ID

		doer := &pagesDoer{pages: pages}
		got, err := Paginate(context.Background(), NewClient(WithDoer(doer)), Request{URL: "page://1"}, boundary, recordID)
		if err != nil {
			t.Fatalf("Paginate: %v", err)
		}

		expected := 0
		for i := 0; i < k; i++ {
			expected += sizes[i]
		}
		expected += p + 1

		if len(got) != expected {
			t.Fatalf("len = %d, expected %d", len(got), expected)
		}
		if got[len(got)-1].ID != boundary {
			t.Fatalf("last record %q, expected boundary %q", got[len(got)-1].ID, boundary)
		}
		if len(doer.requests) != k+1 {
			t.Fatalf("requested %d pages, expected %d", len(doer.requests), k+1)
		}
	})
}

func TestRapidPaginate_ExhaustionConcatenates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 6).Draw(t, "pages")
		sizes := make([]int, count)
		for i := range sizes {
			sizes[i] = rapid.IntRange(0, 8).Draw(t, fmt.Sprintf("size%d", i))
		}
		pages := makePages(sizes...)

		got, err := Paginate(context.Background(), NewClient(WithDoer(&pagesDoer{pages: pages})), Request{URL: "page://1"}, "absent", recordID)
		if err != nil {
			t.Fatalf("Paginate: %v", err)
		}

		want := flatten(pages)
		if len(got) != len(want) {
			t.Fatalf("len = %d, expected %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("record %d = %v, expected %v", i, got[i], want[i])
			}
		}
	})
}
