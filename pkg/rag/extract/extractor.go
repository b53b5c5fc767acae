package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MainContent strips script, style, structural, navigational and media
// elements from raw page markup and returns the remaining body text as a
// single whitespace-collapsed string. Malformed input yields an empty string.
func MainContent(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, head, nav, footer, iframe, img").Remove()

	return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
}
