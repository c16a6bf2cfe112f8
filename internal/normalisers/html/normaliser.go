package html

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Ellipsis marks a truncated excerpt.
const Ellipsis = "..."

// MaxExcerptLength bounds excerpts, ellipsis included, in runes.
const MaxExcerptLength = 300

// ToText strips markup and collapses whitespace.
// Script, style, noscript and svg elements are dropped entirely.
func ToText(markup string) string {
	if !strings.ContainsAny(markup, "<&") {
		return collapse(markup)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return collapse(markup)
	}
	doc.Find("script, style, noscript, svg, head").Remove()

	// Block elements would otherwise glue adjacent words together.
	doc.Find("p, div, br, li, tr, td, th, h1, h2, h3, h4, h5, h6, blockquote, pre").Each(
		func(_ int, s *goquery.Selection) {
			s.AppendHtml(" ")
		})

	return collapse(doc.Text())
}

// Excerpt converts markup to text and shortens it to MaxExcerptLength.
func Excerpt(markup string) string {
	return Shorten(ToText(markup), MaxExcerptLength)
}

// Shorten truncates text to at most maxLen runes including the ellipsis,
// breaking at the last space when one exists in the kept part.
func Shorten(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	keep := maxLen - utf8.RuneCountInString(Ellipsis)
	if keep <= 0 {
		return string([]rune(Ellipsis)[:maxLen])
	}

	cut := string([]rune(text)[:keep])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ") + Ellipsis
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
