package question

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	timestampPattern  = regexp.MustCompile(`\d{2}/\d{2}/\d{4}, \d{2}:\d{2}`)
	paginationPattern = regexp.MustCompile(`\d+/\d+`)
	blankRunPattern   = regexp.MustCompile(`\n\s*\n`)
)

// Clean strips extraction noise from one raw block. Each pass runs the steps in a
// fixed order: URLs, timestamps, pagination tokens, form feeds, blank-line runs,
// then trim. Pagination runs after timestamps so it also removes fragments of
// malformed stamps. Passes repeat until the text stops changing, since removing a
// form feed can join the halves of a token ("3/\f10").
func Clean(block string) string {
	s := cleanPass(block)
	for {
		next := cleanPass(s)
		if next == s {
			return s
		}
		s = next
	}
}

// cleanPass never lengthens its input and shortens any input it changes.
func cleanPass(s string) string {
	s = urlPattern.ReplaceAllLiteralString(s, "")
	s = timestampPattern.ReplaceAllLiteralString(s, "")
	s = paginationPattern.ReplaceAllLiteralString(s, "")
	s = strings.ReplaceAll(s, "\f", "")
	s = blankRunPattern.ReplaceAllLiteralString(s, "\n")
	return strings.TrimSpace(s)
}
