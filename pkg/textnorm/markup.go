package textnorm

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup returns the text content of an HTML fragment. Line breaks
// (<br>) become newlines so the noise cleaners can handle them.
func StripMarkup(fragment string) (string, error) {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse review markup: %w", err)
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")

	return doc.Text(), nil
}
