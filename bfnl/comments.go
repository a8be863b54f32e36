package bfnl

import "strings"

const (
	lineCommentMarker  = "//"
	slashCommentMarker = `\`
)

// StripComments removes everything from the earliest comment marker to the
// end of line and trims the remainder. Both markers are searched in the
// original line, so the first one to appear wins.
func StripComments(line string) string {
	cut := len(line)
	if idx := strings.Index(line, lineCommentMarker); idx >= 0 && idx < cut {
		cut = idx
	}
	if idx := strings.Index(line, slashCommentMarker); idx >= 0 && idx < cut {
		cut = idx
	}
	return strings.TrimSpace(line[:cut])
}
