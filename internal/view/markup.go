package view

import (
	"regexp"
	"strings"
)

var (
	imagePattern   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markerReplacer = strings.NewReplacer("*", "", "#", "", "`", "", "_", "")
	trailingSpace  = regexp.MustCompile(`[ \t]+\n`)
	blankLines     = regexp.MustCompile(`\n{3,}`)
)

// StripMarkup removes markdown emphasis, headings, code ticks, images and
// link syntax (keeping the link text), normalises line endings and trims.
// StripMarkup(StripMarkup(s)) == StripMarkup(s).
func StripMarkup(s string) string {
	for {
		next := stripOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

// stripOnce never makes its input longer, so StripMarkup terminates.
func stripOnce(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = markerReplacer.Replace(s)
	s = imagePattern.ReplaceAllString(s, "")
	s = linkPattern.ReplaceAllString(s, "$1")
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
