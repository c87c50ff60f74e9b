package seo

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StructuredDataType is the script type used for JSON-LD blocks.
const StructuredDataType = "application/ld+json"

// ErrNoHead is returned when a document has no <head> element.
var ErrNoHead = errors.New("seo: document has no head element")

// Document is a parsed HTML page whose head can be synchronised.
type Document struct {
	root *html.Node
	head *Head
}

// ParseDocument parses an HTML page. The HTML5 parser always synthesises a head,
// so ErrNoHead only surfaces for fragments built by hand.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	head := findElement(root, atom.Head)
	if head == nil {
		return nil, ErrNoHead
	}
	return &Document{root: root, head: &Head{node: head}}, nil
}

// Head returns the document head.
func (d *Document) Head() *Head { return d.head }

// Render serialises the document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Head wraps the <head> element of a Document.
type Head struct {
	node *html.Node
}

// Title returns the text of the <title> element.
func (h *Head) Title() (string, bool) {
	t := h.child(atom.Title)
	if t == nil {
		return "", false
	}
	return textContent(t), true
}

// Meta returns the <meta> element keyed by name= (or property= when property is set).
func (h *Head) Meta(key string, property bool) *html.Node {
	attr := metaAttr(property)
	for c := h.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Meta && getAttr(c, attr) == key {
			return c
		}
	}
	return nil
}

// MetaContent returns the content attribute of a meta tag.
func (h *Head) MetaContent(key string, property bool) (string, bool) {
	n := h.Meta(key, property)
	if n == nil {
		return "", false
	}
	return getAttr(n, "content"), true
}

// StructuredData returns every JSON-LD script currently in the head.
func (h *Head) StructuredData() []*html.Node {
	var out []*html.Node
	for c := h.node.FirstChild; c != nil; c = c.NextSibling {
		if isStructuredData(c) {
			out = append(out, c)
		}
	}
	return out
}

// RemoveStructuredData drops every JSON-LD script and reports how many were removed.
func (h *Head) RemoveStructuredData() int {
	scripts := h.StructuredData()
	for _, s := range scripts {
		h.node.RemoveChild(s)
	}
	return len(scripts)
}

func (h *Head) child(a atom.Atom) *html.Node {
	for c := h.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func (h *Head) appendMeta(key, content string, property bool) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "meta",
		DataAtom: atom.Meta,
		Attr: []html.Attribute{
			{Key: metaAttr(property), Val: key},
			{Key: "content", Val: content},
		},
	}
	h.node.AppendChild(n)
	return n
}

func (h *Head) appendScript(id, body string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "type", Val: StructuredDataType}},
	}
	if id != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: body})
	h.node.AppendChild(n)
	return n
}

func (h *Head) appendTitle(text string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	h.node.AppendChild(n)
	return n
}

func metaAttr(property bool) string {
	if property {
		return "property"
	}
	return "name"
}

func isStructuredData(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Script &&
		strings.EqualFold(strings.TrimSpace(getAttr(n, "type")), StructuredDataType)
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
