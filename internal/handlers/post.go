package handlers

import (
	"fmt"
	"html/template"
	"strings"
	"unicode/utf16"

	"phuongcosmetics.vn/storefront-web/internal/catalog"
	"phuongcosmetics.vn/storefront-web/internal/format"
	"phuongcosmetics.vn/storefront-web/internal/nav"
	"phuongcosmetics.vn/storefront-web/internal/seo"
)

// PostView is everything the blog detail template renders.
type PostView struct {
	ID            string
	Title         string
	Category      string
	CategoryLower string
	CategoryHref  string
	BadgeStyle    string
	Date          string
	DateISO       string
	Author        string
	ReadTime      int
	Cover         string
	CoverAlt      string
	Summary       string
	Tags          []string
	Body          []template.HTML
	DefaultBody   bool
	Tips          []string
	Related       []BlogCard
}

// BuildPostView renders the post body through md. An empty body falls back to the
// two default paragraphs.
func BuildPostView(p catalog.Post, related []catalog.Post, md *Markdown, lang string) (*PostView, error) {
	categoryLower := strings.ToLower(p.Category)
	v := &PostView{
		ID:            p.ID,
		Title:         p.Title,
		Category:      p.Category,
		CategoryLower: categoryLower,
		CategoryHref:  nav.CategoryHref("/blog", p.Category),
		BadgeStyle:    CategoryBadgeStyle(p.Category),
		Date:          format.Date(p.Date, lang),
		DateISO:       format.ISODate(p.Date),
		Author:        p.Author,
		ReadTime:      p.ReadTimeMin,
		Cover:         p.Cover,
		CoverAlt:      fmt.Sprintf("%s - Hình ảnh minh họa về %s và skincare routine tại Phương Cosmectics", p.Title, categoryLower),
		Summary:       p.Summary,
		Tags:          p.Tags,
		Tips:          p.Tips,
	}

	if md == nil {
		md = NewMarkdown()
	}
	body, err := md.Paragraphs(p.Body)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", p.ID, err)
	}
	if len(body) == 0 {
		body = append([]template.HTML(nil), defaultPostBody...)
		v.DefaultBody = true
	}
	v.Body = body

	v.Related = make([]BlogCard, 0, len(related))
	for _, r := range related {
		v.Related = append(v.Related, NewBlogCard(r, CardDefault, lang))
	}
	return v, nil
}

// PostWordCount is the length in UTF-16 code units of the summary plus the body
// joined by spaces. Characters outside the BMP count twice.
func PostWordCount(p catalog.Post) int {
	n := utf16Len(p.Summary)
	if len(p.Body) > 0 {
		n += utf16Len(strings.Join(p.Body, " "))
	}
	return n
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// PostMetadata is the head state for a blog page. og:*, article:* and twitter:*
// use property=.
func PostMetadata(p catalog.Post, site Site) *seo.Metadata {
	pageURL := site.URL("/blog/" + p.ID)
	cover := site.URL(p.Cover)
	published := format.ISODate(p.Date)
	tagList := strings.Join(p.Tags, ", ")

	var tags seo.TagSet
	tags.Add("description", fmt.Sprintf(
		"%s Đọc bài viết chi tiết về %s tại %s. Hướng dẫn skincare routine, makeup tips và beauty lifestyle.",
		p.Summary, strings.ToLower(p.Category), site.Name,
	), false)
	tags.Add("keywords", joinNonEmpty(", ",
		p.Title, p.Category, tagList,
		"skincare routine", "makeup tutorial", "beauty tips", "hướng dẫn làm đẹp",
	), false)
	tags.Add("og:title", p.Title, true)
	tags.Add("og:description", p.Summary, true)
	tags.Add("og:image", cover, true)
	tags.Add("og:url", pageURL, true)
	tags.Add("og:type", "article", true)
	tags.Add("article:author", p.Author, true)
	tags.Add("article:published_time", published, true)
	tags.Add("article:section", p.Category, true)
	tags.Add("article:tag", tagList, true)
	tags.Add("twitter:card", "summary_large_image", true)
	tags.Add("twitter:title", p.Title, true)
	tags.Add("twitter:description", p.Summary, true)
	tags.Add("twitter:image", cover, true)

	return &seo.Metadata{
		Title: fmt.Sprintf("%s | %s Blog", p.Title, site.Name),
		Tags:  tags.Tags(),
		Structured: []seo.StructuredData{
			{ID: "article-schema", Data: seo.BlogPosting(seo.BlogPostingSchema{
				Headline:      p.Title,
				Description:   p.Summary,
				Image:         cover,
				Author:        p.Author,
				DatePublished: published,
				DateModified:  published,
				Section:       p.Category,
				Keywords:      tagList,
				WordCount:     PostWordCount(p),
				ReadMinutes:   p.ReadTimeMin,
			})},
		},
	}
}
