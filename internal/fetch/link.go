package fetch

import "strings"

const nextRelMarker = `>; rel="next`

// NextPageURL extracts the rel="next" target from a Link header value.
// It returns "" when the header has no next relation.
func NextPageURL(link string) string {
	end := strings.Index(link, nextRelMarker)
	if end < 0 {
		return ""
	}
	start := strings.LastIndex(link[:end], "<")
	if start < 0 {
		return ""
	}
	return strings.TrimSpace(link[start+1 : end])
}
