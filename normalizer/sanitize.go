package normalizer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxLength is the rune limit applied to sanitized description text.
const DefaultMaxLength = 200

var whitespaceRe = regexp.MustCompile(`\s+`)

// StripHTML extracts the plain text content of an HTML fragment.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparseable markup still has to yield an exportable cell
		return html
	}

	return doc.Text()
}

// Clean makes free text safe to serialize and display: invalid byte
// sequences are discarded, control characters stripped, whitespace runs
// collapsed to single spaces, and the result trimmed.
func Clean(s string) string {
	s = stripControl(strings.ToValidUTF8(s, ""))
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanHTML applies the byte-level cleanup without collapsing whitespace,
// so markup structure survives for the Body (HTML) column.
func CleanHTML(s string) string {
	return stripControl(strings.ToValidUTF8(s, ""))
}

// Truncate cuts s to at most max runes, appending an ellipsis marker when
// anything was removed.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// SanitizeText is the full chain applied to description fields: HTML
// stripped, cleaned, and truncated to DefaultMaxLength.
func SanitizeText(s string) string {
	return Truncate(Clean(StripHTML(s)), DefaultMaxLength)
}

// stripControl removes control characters, keeping tab, newline and
// carriage return.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
