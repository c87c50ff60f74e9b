package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const shell = `<!doctype html>
<html lang="vi"><head>
<meta charset="utf-8">
<title>Phương Cosmectics</title>
<meta name="description" content="site default">
<script type="application/ld+json" id="stale">{"@type":"WebSite"}</script>
</head><body><main id="app"></main></body></html>`

func parseShell(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(shell))
	require.NoError(t, err)
	return doc
}

func query(t *testing.T, doc *Document) *goquery.Document {
	t.Helper()
	q, err := goquery.NewDocumentFromReader(strings.NewReader(doc.String()))
	require.NoError(t, err)
	return q
}

func productMetadata(name string, withFAQ bool) *Metadata {
	var tags TagSet
	tags.Add("description", name+" description", false)
	tags.Add("og:title", name, true)
	tags.Add("twitter:card", "summary_large_image", false)
	md := &Metadata{
		Title: name + " | Phương Cosmectics",
		Tags:  tags.Tags(),
		Structured: []StructuredData{
			{ID: "product-schema", Data: Product(ProductSchema{Name: name, Offer: ProductOffer{Price: 1, Currency: "VND", InStock: true}})},
			{ID: "breadcrumb-schema", Data: BreadcrumbList([]BreadcrumbItem{{Name: "Trang chủ", Item: "https://example.com"}})},
		},
	}
	if withFAQ {
		md.Structured = append(md.Structured, StructuredData{
			ID:   "faq-schema",
			Data: FAQPage([]FAQEntry{{Question: "Q?", Answer: "A."}}),
		})
	}
	return md
}

func structuredTypes(t *testing.T, q *goquery.Document) map[string]int {
	t.Helper()
	counts := map[string]int{}
	q.Find(`head script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(s.Text()), &payload))
		typ, _ := payload["@type"].(string)
		counts[typ]++
	})
	return counts
}

func TestSyncApplyWritesHead(t *testing.T) {
	t.Parallel()

	doc := parseShell(t)
	sync := NewSync(doc.Head())
	sync.Apply(productMetadata("Serum", true))

	q := query(t, doc)
	require.Equal(t, "Serum | Phương Cosmectics", q.Find("head title").Text())
	require.Equal(t, 1, q.Find("head title").Length())

	desc, ok := q.Find(`head meta[name="description"]`).Attr("content")
	require.True(t, ok)
	require.Equal(t, "Serum description", desc)
	require.Equal(t, 1, q.Find(`head meta[name="description"]`).Length(), "existing tag must be updated in place")

	og, _ := q.Find(`head meta[property="og:title"]`).Attr("content")
	require.Equal(t, "Serum", og)
	require.Equal(t, 0, q.Find(`head meta[name="og:title"]`).Length())

	require.Equal(t, map[string]int{"Product": 1, "BreadcrumbList": 1, "FAQPage": 1}, structuredTypes(t, q))
	require.Equal(t, 0, q.Find("#stale").Length(), "pre-existing structured data is replaced")
	require.Equal(t, 1, q.Find("#faq-schema").Length())
}

func TestSyncConsecutiveViewsDoNotAccumulate(t *testing.T) {
	t.Parallel()

	doc := parseShell(t)
	sync := NewSync(doc.Head())
	for i := 0; i < 3; i++ {
		sync.Apply(productMetadata("Serum", true))
		sync.Apply(productMetadata("Son", false))
	}

	q := query(t, doc)
	require.Equal(t, map[string]int{"Product": 1, "BreadcrumbList": 1}, structuredTypes(t, q))
	require.Equal(t, 1, q.Find(`head meta[property="og:title"]`).Length())
	require.Equal(t, 1, q.Find(`head meta[name="twitter:card"]`).Length())
	require.Equal(t, "Son | Phương Cosmectics", q.Find("head title").Text())
}

func TestSyncTeardownRestoresOriginalHead(t *testing.T) {
	t.Parallel()

	doc := parseShell(t)
	sync := NewSync(doc.Head())
	sync.Apply(productMetadata("Serum", true))
	sync.Teardown()

	q := query(t, doc)
	require.Equal(t, "Phương Cosmectics", q.Find("head title").Text())
	desc, _ := q.Find(`head meta[name="description"]`).Attr("content")
	require.Equal(t, "site default", desc)
	require.Equal(t, 0, q.Find(`head meta[property="og:title"]`).Length())
	require.Equal(t, 0, q.Find(`head meta[name="twitter:card"]`).Length())
	require.Equal(t, 0, q.Find(`script[type="application/ld+json"]`).Length())

	// Teardown is idempotent.
	sync.Teardown()
	require.Equal(t, "Phương Cosmectics", query(t, doc).Find("head title").Text())
}

func TestSyncNilMetadataSkips(t *testing.T) {
	t.Parallel()

	doc := parseShell(t)
	sync := NewSync(doc.Head())
	sync.Apply(productMetadata("Serum", false))
	sync.Apply(nil)

	q := query(t, doc)
	require.Equal(t, "Phương Cosmectics", q.Find("head title").Text())
	require.Equal(t, 0, q.Find(`script[type="application/ld+json"]`).Length())
}

func TestSyncCreatesTitleWhenMissing(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(strings.NewReader(`<html><head></head><body></body></html>`))
	require.NoError(t, err)
	sync := NewSync(doc.Head())
	sync.Apply(&Metadata{Title: "Bài viết"})

	title, ok := doc.Head().Title()
	require.True(t, ok)
	require.Equal(t, "Bài viết", title)

	sync.Teardown()
	_, ok = doc.Head().Title()
	require.False(t, ok)
}

func TestStructuredDataScriptIsSafeJSON(t *testing.T) {
	t.Parallel()

	doc := parseShell(t)
	sync := NewSync(doc.Head())
	sync.Apply(&Metadata{Structured: []StructuredData{{
		ID:   "product-schema",
		Data: Product(ProductSchema{Name: "</script><b>x</b>"}),
	}}})

	out := doc.String()
	require.NotContains(t, out, "</script><b>")
	q := query(t, doc)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(q.Find("#product-schema").Text()), &payload))
	require.Equal(t, "</script><b>x</b>", payload["name"])
}
