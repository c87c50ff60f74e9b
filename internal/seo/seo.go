package seo

// MetaTag is a single <meta> entry. Property selects the `property=` attribute
// (Open Graph style) instead of `name=`.
type MetaTag struct {
	Key      string
	Content  string
	Property bool
}

// StructuredData is one JSON-LD block. ID becomes the script element id.
type StructuredData struct {
	ID   string
	Data map[string]any
}

// Type returns the schema.org @type of the block.
func (s StructuredData) Type() string {
	if s.Data == nil {
		return ""
	}
	t, _ := s.Data["@type"].(string)
	return t
}

// Metadata is everything a detail page writes into the document head.
type Metadata struct {
	Title      string
	Tags       []MetaTag
	Structured []StructuredData
}

// Tag returns the content of the tag with key, if present.
func (m Metadata) Tag(key string) (string, bool) {
	for _, t := range m.Tags {
		if t.Key == key {
			return t.Content, true
		}
	}
	return "", false
}

// TagSet collects meta tags in insertion order; re-adding a key overwrites it.
type TagSet struct {
	tags  []MetaTag
	index map[string]int
}

// Add appends or replaces a tag. Empty content is kept so stale values are cleared.
func (s *TagSet) Add(key, content string, property bool) {
	if s.index == nil {
		s.index = map[string]int{}
	}
	if i, ok := s.index[key]; ok {
		s.tags[i] = MetaTag{Key: key, Content: content, Property: property}
		return
	}
	s.index[key] = len(s.tags)
	s.tags = append(s.tags, MetaTag{Key: key, Content: content, Property: property})
}

// Tags returns a copy of the collected tags.
func (s *TagSet) Tags() []MetaTag {
	return append([]MetaTag(nil), s.tags...)
}
