// Package pathutil provides small path helpers shared by the router.
package pathutil

import "strings"

// CollapseSlashes rewrites every run of consecutive slashes in p into a
// single slash. The input is returned unchanged when no run exists.
func CollapseSlashes(p string) string {
	if !strings.Contains(p, "//") {
		return p
	}
	var sb strings.Builder
	sb.Grow(len(p))
	var prev byte
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && prev == '/' {
			continue
		}
		sb.WriteByte(p[i])
		prev = p[i]
	}
	return sb.String()
}

// Segments splits p into its path segments, stripping one leading slash.
// The trailing-slash position yields a final empty segment.
func Segments(p string) []string {
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}
