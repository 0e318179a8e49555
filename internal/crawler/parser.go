package crawler

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/ncsc-tools/cafscan/internal/model"
)

// anchorParser extracts anchor hrefs from page source.
//
// Design decision: We use golang.org/x/net/html rather than a CSS
// selector library because:
//  1. It correctly handles the malformed HTML a degraded render produces
//  2. A single DOM walk is all link discovery needs
//  3. It keeps this package free of the extraction stack
type anchorParser struct {
	// base is the page the source came from, used to resolve
	// relative hrefs.
	base model.Link
}

// newAnchorParser creates a parser resolving hrefs against base.
func newAnchorParser(base model.Link) *anchorParser {
	return &anchorParser{base: base}
}

// links parses the page source and returns every anchor with a
// non-empty href containing substr, resolved to an absolute Link.
// Scheme-only hrefs (mailto, javascript, tel) and bare fragments are
// skipped; they are navigation chrome, not hierarchy links.
func (p *anchorParser) links(source io.Reader, substr string) ([]model.Link, error) {
	doc, err := html.Parse(source)
	if err != nil {
		return nil, err
	}

	var links []model.Link

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); href != "" && strings.Contains(href, substr) {
				if link := p.resolve(href); !link.IsZero() {
					links = append(links, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

// resolve turns an href into an absolute Link, or a zero Link for
// hrefs that cannot point into the hierarchy.
func (p *anchorParser) resolve(href string) model.Link {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		href == "#" {
		return model.Link{}
	}
	return model.Resolve(p.base, href)
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
