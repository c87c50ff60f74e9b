package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// postFrontMatter is the YAML header of a post markdown file. The markdown body
// below the header holds the post paragraphs separated by blank lines.
type postFrontMatter struct {
	ID       string   `yaml:"id"`
	Order    int      `yaml:"order"`
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Date     string   `yaml:"date"`
	Author   string   `yaml:"author"`
	ReadTime int      `yaml:"read_time"`
	Cover    string   `yaml:"cover"`
	Summary  string   `yaml:"summary"`
	Tags     []string `yaml:"tags"`
	Tips     []string `yaml:"tips"`
}

type orderedPost struct {
	order int
	file  string
	post  Post
}

func loadPosts(fsys fs.FS, dir string) ([]Post, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Post{}, nil
		}
		return nil, &LoadError{File: dir, Err: err}
	}
	items := make([]orderedPost, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		file := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, &LoadError{File: file, Err: err}
		}
		post, order, err := parsePost(strings.TrimSuffix(entry.Name(), ".md"), string(data))
		if err != nil {
			return nil, &LoadError{File: file, Err: err}
		}
		items = append(items, orderedPost{order: order, file: entry.Name(), post: post})
	}
	// Files carry an explicit order so the collection keeps a stable insertion order.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].order != items[j].order {
			return items[i].order < items[j].order
		}
		return items[i].file < items[j].file
	})
	out := make([]Post, len(items))
	for i, it := range items {
		out[i] = it.post
	}
	return out, nil
}

func parsePost(slug, input string) (Post, int, error) {
	fm, body := splitFrontMatter(input)
	front := postFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Post{}, 0, fmt.Errorf("parse front matter: %w", err)
		}
	}
	post := Post{
		ID:          strings.TrimSpace(firstNonEmpty(front.ID, slug)),
		Title:       strings.TrimSpace(front.Title),
		Category:    strings.TrimSpace(front.Category),
		Date:        parseContentDate(front.Date),
		Author:      strings.TrimSpace(front.Author),
		ReadTimeMin: front.ReadTime,
		Cover:       strings.TrimSpace(front.Cover),
		Summary:     strings.TrimSpace(front.Summary),
		Tags:        trimSlice(front.Tags),
		Body:        splitParagraphs(body),
		Tips:        trimSlice(front.Tips),
	}
	if post.Title == "" {
		post.Title = prettifySlug(slug)
	}
	if post.ReadTimeMin < 0 {
		return Post{}, 0, fmt.Errorf("post %q: negative read time", post.ID)
	}
	return post, front.Order, nil
}

// splitParagraphs breaks a markdown body on blank lines. Lines within a paragraph
// are joined with a single space.
func splitParagraphs(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	var (
		out     []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
			current = current[:0]
		}
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
