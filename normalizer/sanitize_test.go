package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", strings.TrimSpace(StripHTML("<p>Hello <b>world</b></p>")))
	assert.Equal(t, "", StripHTML(""))
	assert.Equal(t, "plain text", StripHTML("plain text"))
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", Clean("  a\n\n b \t c  "))
}

func TestClean_StripsControlCharacters(t *testing.T) {
	assert.Equal(t, "ab", Clean("a\x00\x01\x02b"))
}

func TestClean_DiscardsInvalidUTF8(t *testing.T) {
	assert.Equal(t, "ab", Clean("a\xff\xfeb"))
}

func TestCleanHTML_KeepsMarkupStructure(t *testing.T) {
	html := "<p>line one</p>\n<p>line two</p>"
	assert.Equal(t, html, CleanHTML(html))
	assert.Equal(t, "<p>ok</p>", CleanHTML("<p>ok\x07</p>"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abcde", Truncate("abcde", 5))
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5))
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	assert.Equal(t, "héllo", Truncate("héllo", 5))
}

func TestSanitizeText_FullChain(t *testing.T) {
	long := "<div>" + strings.Repeat("word ", 100) + "</div>"

	out := SanitizeText(long)

	assert.True(t, strings.HasSuffix(out, "..."))
	assert.LessOrEqual(t, len([]rune(out)), DefaultMaxLength+3)
	assert.NotContains(t, out, "<div>")
}

func TestSanitizeText_ShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "A classic tee.", SanitizeText("<p>A classic  tee.</p>"))
}
