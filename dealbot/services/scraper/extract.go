package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractCleanText parses HTML and returns cleaned text content with
// script/style noise removed.
func ExtractCleanText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// TrimToSelector reduces a page to the text of the nodes matching the
// CSS selector, which keeps search-result cards and drops chrome. Falls
// back to the full cleaned page when nothing matches.
func TrimToSelector(htmlContent, selector string, maxNodes int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ExtractCleanText(htmlContent)
	}

	var parts []string
	doc.Find(selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if maxNodes > 0 && i >= maxNodes {
			return false
		}
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text != "" {
			parts = append(parts, text)
		}
		return true
	})
	if len(parts) == 0 {
		return ExtractCleanText(htmlContent)
	}
	return strings.Join(parts, "\n")
}

// Truncate caps text at maxChars without splitting a word mid-run.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
