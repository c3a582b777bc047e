package scraper

import (
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Member is one page listed in the category
type Member struct {
	Title string
	Href  string
}

// parseCategoryPage returns the members listed on one category page and the
// href of the "next page" link, empty on the last page
func parseCategoryPage(page string) ([]Member, string, error) {
	doc, err := nethtml.Parse(strings.NewReader(page))
	if err != nil {
		return nil, "", err
	}

	root := findByID(doc, "mw-pages")
	if root == nil {
		root = doc
	}

	var members []Member
	var next string
	walk(root, func(n *nethtml.Node) {
		if n.Type != nethtml.ElementNode || n.DataAtom != atom.A {
			return
		}
		href := attr(n, "href")
		if strings.EqualFold(strings.TrimSpace(textOf(n)), "next page") {
			if next == "" {
				next = href
			}
			return
		}

		title := attr(n, "title")
		if title == "" || !strings.HasPrefix(href, "/wiki/") {
			return
		}
		if strings.HasPrefix(title, "Category:") || strings.HasPrefix(href, "/wiki/Special:") {
			return
		}
		members = append(members, Member{Title: title, Href: href})
	})

	return members, next, nil
}

// stripTags reduces a page to its visible text on one line
func stripTags(page string) string {
	z := nethtml.NewTokenizer(strings.NewReader(page))
	var sb strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			return collapseSpace(sb.String())
		case nethtml.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip++
			}
			sb.WriteByte(' ')
		case nethtml.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
			sb.WriteByte(' ')
		case nethtml.SelfClosingTagToken:
			sb.WriteByte(' ')
		case nethtml.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

func walk(n *nethtml.Node, fn func(*nethtml.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findByID(n *nethtml.Node, id string) *nethtml.Node {
	if n.Type == nethtml.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *nethtml.Node) string {
	var sb strings.Builder
	walk(n, func(c *nethtml.Node) {
		if c.Type == nethtml.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}
