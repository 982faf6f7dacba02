package extract

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/goerr/v2"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// extractHTML keeps headings, paragraphs, list items and table cells from the
// main content, or the whole body when the page has no main/article element.
func extractHTML(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", goerr.Wrap(err, "parse HTML")
	}
	doc.Find("script, style, noscript, nav, footer").Remove()

	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}

	var parts []string
	sel.Find("h1, h2, h3, h4, p, li, td, th, pre").Each(func(_ int, s *goquery.Selection) {
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return strings.Join(strings.Fields(sel.Text()), " "), nil
	}
	return blankLines.ReplaceAllString(strings.Join(parts, "\n"), "\n\n"), nil
}
