package seo

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sync keeps a document head in step with the record being viewed. Apply writes
// the record's title, meta tags and JSON-LD; Teardown reverses everything the last
// Apply inserted or overwrote. Applying a new record tears down the previous one
// first, so structured data never accumulates across views.
//
// A Sync is bound to one document and is not safe for concurrent use.
type Sync struct {
	head *Head

	created  []*html.Node
	restores []metaRestore
	title    *titleRestore
}

type metaRestore struct {
	node       *html.Node
	content    string
	hadContent bool
}

type titleRestore struct {
	node    *html.Node
	text    string
	created bool
}

// NewSync binds a Sync to head.
func NewSync(head *Head) *Sync {
	return &Sync{head: head}
}

// Apply synchronises the head with md. A nil md (record absent) only tears down
// the previous state.
func (s *Sync) Apply(md *Metadata) {
	s.Teardown()
	if md == nil || s.head == nil {
		return
	}

	if md.Title != "" {
		s.applyTitle(md.Title)
	}

	for _, tag := range md.Tags {
		if tag.Key == "" {
			continue
		}
		if n := s.head.Meta(tag.Key, tag.Property); n != nil {
			prev := metaRestore{node: n}
			for _, a := range n.Attr {
				if a.Namespace == "" && a.Key == "content" {
					prev.content, prev.hadContent = a.Val, true
				}
			}
			s.restores = append(s.restores, prev)
			setAttr(n, "content", tag.Content)
			continue
		}
		s.created = append(s.created, s.head.appendMeta(tag.Key, tag.Content, tag.Property))
	}

	s.head.RemoveStructuredData()
	for _, block := range md.Structured {
		if block.Data == nil {
			continue
		}
		s.created = append(s.created, s.head.appendScript(block.ID, JSON(block.Data)))
	}
}

// Teardown removes nodes created by the last Apply, restores overwritten meta
// content and title, and clears all structured data from the head.
func (s *Sync) Teardown() {
	if s.head == nil {
		return
	}
	for i := len(s.created) - 1; i >= 0; i-- {
		n := s.created[i]
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	for i := len(s.restores) - 1; i >= 0; i-- {
		r := s.restores[i]
		if r.hadContent {
			setAttr(r.node, "content", r.content)
		} else {
			removeAttr(r.node, "content")
		}
	}
	if s.title != nil {
		if s.title.created {
			if s.title.node.Parent != nil {
				s.title.node.Parent.RemoveChild(s.title.node)
			}
		} else {
			setText(s.title.node, s.title.text)
		}
	}
	s.head.RemoveStructuredData()

	s.created = nil
	s.restores = nil
	s.title = nil
}

func (s *Sync) applyTitle(title string) {
	if n := s.head.child(atom.Title); n != nil {
		s.title = &titleRestore{node: n, text: textContent(n)}
		setText(n, title)
		return
	}
	s.title = &titleRestore{node: s.head.appendTitle(title), created: true}
}
