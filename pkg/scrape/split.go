package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cinepedia/scraper/pkg/common"

	"golang.org/x/net/html"
)

// SplitSections parses a raw encyclopedia page into its section tree.
//
// Headings h2/h3/h4 open sections at the corresponding depth. Prose before
// the first heading goes into an untitled orphan section, and an infobox
// table becomes its own "Données clés" section regardless of where it sits
// in the markup. Images are attached to the section they appear in.
func SplitSections(rawHTML []byte) ([]*common.Section, error) {
	doc, err := html.Parse(bytes.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	body := findNode(doc, "body")
	if body == nil {
		return nil, fmt.Errorf("page has no body")
	}

	b := &sectionBuilder{}
	b.walk(body)
	return b.finish(), nil
}

type sectionBuilder struct {
	sections []*common.Section
	// stack[0] is the open h2 section, stack[1] its open h3, stack[2] its h4.
	stack  []*common.Section
	orphan *common.Section
}

func (b *sectionBuilder) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		switch c.Data {
		case "h2", "h3", "h4":
			b.openSection(headingDepth(c.Data), strings.TrimSpace(nodeText(c)))
		case "table":
			if strings.Contains(attr(c, "class"), "infobox") {
				b.addInfobox(c)
			} else {
				b.addContent(c)
			}
		case "script", "style", "nav", "footer":
			// skip
		case "div", "section", "main", "article":
			b.walk(c)
		default:
			b.addContent(c)
		}
	}
}

func headingDepth(tag string) int {
	switch tag {
	case "h2":
		return 0
	case "h3":
		return 1
	default:
		return 2
	}
}

func (b *sectionBuilder) openSection(depth int, title string) {
	section := &common.Section{Title: title}

	if depth > len(b.stack) {
		depth = len(b.stack)
	}
	b.stack = b.stack[:depth]

	if len(b.stack) == 0 {
		b.sections = append(b.sections, section)
	} else {
		parent := b.stack[len(b.stack)-1]
		parent.Children = append(parent.Children, section)
	}
	b.stack = append(b.stack, section)
}

func (b *sectionBuilder) current() *common.Section {
	if len(b.stack) > 0 {
		return b.stack[len(b.stack)-1]
	}
	if b.orphan == nil {
		b.orphan = &common.Section{Title: common.OrphanSectionTitle}
	}
	return b.orphan
}

func (b *sectionBuilder) addContent(n *html.Node) {
	section := b.current()

	text := strings.TrimSpace(nodeText(n))
	if text != "" {
		if section.Content != "" {
			section.Content += "\n"
		}
		section.Content += text
	}

	section.Media = append(section.Media, collectImages(n)...)
}

// addInfobox turns an infobox table into its own top-level section so the
// resolvers can target it by its canonical heading.
func (b *sectionBuilder) addInfobox(n *html.Node) {
	section := &common.Section{
		Title:   common.InfoboxSectionTitle,
		Content: strings.TrimSpace(nodeText(n)),
		Media:   collectImages(n),
	}
	b.sections = append(b.sections, section)
}

func (b *sectionBuilder) finish() []*common.Section {
	if b.orphan != nil && (b.orphan.Content != "" || len(b.orphan.Media) > 0) {
		return append([]*common.Section{b.orphan}, b.sections...)
	}
	return b.sections
}

func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			return
		}
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style":
				return
			case "br", "li", "tr":
				defer b.WriteString("\n")
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collectImages(n *html.Node) []common.Media {
	var media []common.Media
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "img" {
			src := attr(node, "src")
			if src != "" {
				media = append(media, common.Media{
					Src:       src,
					MediaType: imageType(node),
				})
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return media
}

// imageType classifies an image from its alt text and class. Posters are
// the common special case on movie pages.
func imageType(n *html.Node) string {
	hint := strings.ToLower(attr(n, "alt") + " " + attr(n, "class"))
	if strings.Contains(hint, "affiche") || strings.Contains(hint, "poster") {
		return "poster"
	}
	if strings.Contains(hint, "portrait") {
		return "portrait"
	}
	return "image"
}
