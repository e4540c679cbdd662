package validate

import (
	"strings"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/mackee/go-readability"
)

// ExtractText converts an HTML page into plain-ish text for validation.
// Readability extraction comes first because it strips navigation and
// boilerplate; html-to-markdown is the fallback for pages readability
// cannot segment, and a bare goquery text dump is the last resort.
func ExtractText(host, html string) string {
	article, err := readability.Extract(html, readability.DefaultOptions())
	if err == nil && article.Root != nil {
		if text := readability.ToMarkdown(article.Root); strings.TrimSpace(text) != "" {
			return text
		}
	}

	converter := html2md.NewConverter(host, true, &html2md.Options{})
	if md, err := converter.ConvertString(html); err == nil && strings.TrimSpace(md) != "" {
		return md
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
