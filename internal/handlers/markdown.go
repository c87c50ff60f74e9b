package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// defaultPostBody is shown when a post has no body paragraphs.
var defaultPostBody = []template.HTML{
	"<p>Nội dung chi tiết (mock): lên routine ngắn gọn, tập trung làm sạch - dưỡng ẩm - chống nắng, xen kẽ treatment nhẹ, ưu tiên sản phẩm dịu nhẹ và giãn cách ngày dùng.</p>",
	"<p>Lifestyle: ngủ đủ, uống nước, vận động nhẹ 20-30 phút mỗi ngày, hạn chế đường và dầu chiên, ưu tiên thực phẩm tươi và giàu chất xơ. Dành thời gian thư giãn, tránh stress kéo dài.</p>",
}

// Markdown turns post paragraphs into sanitized HTML.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdown builds the renderer used for post bodies.
func NewMarkdown() *Markdown {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
		policy: policy,
	}
}

// Paragraphs renders each paragraph separately so paragraph boundaries match the
// source record.
func (m *Markdown) Paragraphs(paras []string) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(paras))
	for i, p := range paras {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var buf bytes.Buffer
		if err := m.md.Convert([]byte(p), &buf); err != nil {
			return nil, fmt.Errorf("render paragraph %d: %w", i, err)
		}
		out = append(out, template.HTML(strings.TrimSpace(m.policy.Sanitize(buf.String()))))
	}
	return out, nil
}
