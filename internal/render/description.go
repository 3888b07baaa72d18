package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists elements that end a line of text.
const blockSelector = "p, div, li, h1, h2, h3, h4, h5, h6, tr, ul, ol, section, article"

// DescriptionText converts a job description, which may contain HTML, to plain text.
// List items become bullets and block elements become lines.
func DescriptionText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse description: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find(blockSelector).AppendHtml("\n")

	return cleanWhitespace(doc.Find("body").Text()), nil
}

// cleanWhitespace collapses runs of spaces within lines and runs of blank lines.
func cleanWhitespace(text string) string {
	var out []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
