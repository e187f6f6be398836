package retrieve

import (
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ExtractDocument pulls title, visible text, and a publish date out of an
// HTML page. Unparsable HTML degrades to an empty document rather than
// failing: a missing snippet becomes a neutral/unknown item downstream.
func ExtractDocument(htmlContent string) *Document {
	doc := &Document{}

	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return doc
	}

	var text strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "nav", "footer", "aside":
				return
			case "title":
				if doc.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					doc.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				handleMeta(n, doc)
			}
		case html.TextNode:
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				if text.Len() > 0 {
					text.WriteByte(' ')
				}
				text.WriteString(trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	doc.Text = text.String()
	return doc
}

func handleMeta(n *html.Node, doc *Document) {
	var property, content string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "property", "name":
			property = attr.Val
		case "content":
			content = attr.Val
		}
	}
	if content == "" {
		return
	}

	switch property {
	case "og:title":
		if doc.Title == "" {
			doc.Title = strings.TrimSpace(content)
		}
	case "article:published_time", "article:modified_time", "date":
		if doc.PublishedAt == nil {
			if t, ok := parseDate(content); ok {
				doc.PublishedAt = &t
			}
		}
	}
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
