package fetch

import (
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// DefaultTextLimit is how many characters of visible text a snapshot keeps.
const DefaultTextLimit = 1500

// skippedElements hold no visible text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
}

// Parse reads HTML from r and fills the content fields of a Snapshot.
// base resolves relative links and decides which hosts are external.
func Parse(r io.Reader, base *url.URL, textLimit int) (*Snapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	if textLimit <= 0 {
		textLimit = DefaultTextLimit
	}

	p := &parser{base: base, snap: &Snapshot{}}
	p.walk(doc)

	p.snap.Text = truncateRunes(strings.Join(strings.Fields(p.text.String()), " "), textLimit)
	return p.snap, nil
}

type parser struct {
	base    *url.URL
	snap    *Snapshot
	text    strings.Builder
	ogDesc  string
	hasDesc bool
}

func (p *parser) walk(n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
		p.element(n)
		if n.Data == "title" {
			return
		}
	case html.TextNode:
		if p.text.Len() < 64*1024 {
			p.text.WriteString(n.Data)
			p.text.WriteByte(' ')
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}

	if n.Type == html.DocumentNode && !p.hasDesc {
		p.snap.Description = p.ogDesc
	}
}

func (p *parser) element(n *html.Node) {
	switch n.Data {
	case "title":
		if p.snap.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			p.snap.Title = strings.Join(strings.Fields(n.FirstChild.Data), " ")
		}

	case "meta":
		content := strings.TrimSpace(getAttr(n, "content"))
		switch {
		case strings.EqualFold(getAttr(n, "name"), "description") && content != "":
			p.snap.Description = content
			p.hasDesc = true
		case strings.EqualFold(getAttr(n, "property"), "og:description") && content != "":
			p.ogDesc = content
		}

	case "a":
		if link := p.resolve(getAttr(n, "href")); link != nil {
			if p.sameHost(link) {
				p.snap.InternalLinks++
			} else {
				p.snap.ExternalLinks++
			}
		}

	case "form":
		if action := p.resolve(getAttr(n, "action")); action != nil && !p.sameHost(action) {
			p.snap.ExternalFormActions = appendUnique(p.snap.ExternalFormActions, action.Host)
		}

	case "input":
		if strings.EqualFold(getAttr(n, "type"), "password") {
			p.snap.HasPasswordField = true
		}
	}
}

// resolve returns the absolute URL for href, or nil for empty, fragment-only
// and non-navigational links.
func (p *parser) resolve(href string) *url.URL {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return nil
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return nil
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return nil
	}
	if p.base != nil {
		u = p.base.ResolveReference(u)
	}
	return u
}

func (p *parser) sameHost(u *url.URL) bool {
	if p.base == nil || u.Host == "" {
		return true
	}
	return strings.EqualFold(u.Hostname(), p.base.Hostname())
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
