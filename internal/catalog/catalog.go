package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrNotFound is returned when a catalog record cannot be located.
var ErrNotFound = errors.New("catalog: not found")

//go:embed data
var embedded embed.FS

var tracer = otel.Tracer("phuongcosmetics.vn/storefront-web/internal/catalog")

// Product is a cosmetics product record. Prices are whole VND.
type Product struct {
	ID                  string
	Name                string
	Brand               string
	Category            string
	Price               int64
	SalePrice           *int64
	Rating              float64
	Popularity          int
	Stock               int
	Tags                []string
	Description         string
	Ingredients         string
	Image               string
	CreatedAt           time.Time
	DetailedIngredients []Ingredient
	UsageInstructions   []string
	History             string
	StorageInstructions []string
	Benefits            []string
	Warnings            []string
	FAQs                []FAQ
}

// Ingredient describes one entry of a product's detailed ingredient list.
type Ingredient struct {
	Name          string
	Concentration string
	Function      string
}

// FAQ is a question/answer pair shown on the product page.
type FAQ struct {
	Question string
	Answer   string
}

// Post is a blog article record.
type Post struct {
	ID          string
	Title       string
	Category    string
	Date        time.Time
	Author      string
	ReadTimeMin int
	Cover       string
	Summary     string
	Tags        []string
	Body        []string
	Tips        []string
}

// Store is the read-only in-memory catalog. Records are never mutated after Open;
// accessors hand out copies so callers cannot alter shared state.
type Store struct {
	products     []Product
	posts        []Post
	productIndex map[string]int
	postIndex    map[string]int
}

// LoadError reports a problem in the catalog source files.
type LoadError struct {
	File string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: load %s: %v", e.File, e.Err)
}

// Unwrap exposes the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// ErrDuplicateID is wrapped in a LoadError when two records share an identifier.
var ErrDuplicateID = errors.New("duplicate id")

const (
	productsFile = "data/products.yaml"
	postsDir     = "data/posts"
)

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// Default returns the store built from the embedded mock data. It is loaded once.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = Open(embedded)
	})
	return defaultStore, defaultErr
}

// Open loads products and posts from fsys. The layout mirrors the embedded data:
// data/products.yaml and data/posts/*.md.
func Open(fsys fs.FS) (*Store, error) {
	products, err := loadProducts(fsys, productsFile)
	if err != nil {
		return nil, err
	}
	posts, err := loadPosts(fsys, postsDir)
	if err != nil {
		return nil, err
	}
	return newStore(products, posts)
}

// New builds a store from already decoded records (primarily for tests).
func New(products []Product, posts []Post) (*Store, error) {
	cp := make([]Product, len(products))
	for i, p := range products {
		cp[i] = cloneProduct(p)
	}
	cq := make([]Post, len(posts))
	for i, p := range posts {
		cq[i] = clonePost(p)
	}
	return newStore(cp, cq)
}

func newStore(products []Product, posts []Post) (*Store, error) {
	s := &Store{
		products:     products,
		posts:        posts,
		productIndex: make(map[string]int, len(products)),
		postIndex:    make(map[string]int, len(posts)),
	}
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, &LoadError{File: productsFile, Err: fmt.Errorf("product #%d: missing id", i)}
		}
		if _, dup := s.productIndex[p.ID]; dup {
			return nil, &LoadError{File: productsFile, Err: fmt.Errorf("product %q: %w", p.ID, ErrDuplicateID)}
		}
		s.productIndex[p.ID] = i
	}
	for i, p := range posts {
		if strings.TrimSpace(p.ID) == "" {
			return nil, &LoadError{File: postsDir, Err: fmt.Errorf("post #%d: missing id", i)}
		}
		if _, dup := s.postIndex[p.ID]; dup {
			return nil, &LoadError{File: postsDir, Err: fmt.Errorf("post %q: %w", p.ID, ErrDuplicateID)}
		}
		s.postIndex[p.ID] = i
	}
	return s, nil
}

// Product looks up a product by identifier.
func (s *Store) Product(ctx context.Context, id string) (Product, error) {
	_, span := tracer.Start(ctx, "catalog.Product")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.product_id", id))

	if s == nil {
		return Product{}, ErrNotFound
	}
	i, ok := s.productIndex[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	return cloneProduct(s.products[i]), nil
}

// Post looks up a blog post by identifier.
func (s *Store) Post(ctx context.Context, id string) (Post, error) {
	_, span := tracer.Start(ctx, "catalog.Post")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.post_id", id))

	if s == nil {
		return Post{}, ErrNotFound
	}
	i, ok := s.postIndex[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return Post{}, fmt.Errorf("post %q: %w", id, ErrNotFound)
	}
	return clonePost(s.posts[i]), nil
}

// Products returns every product in insertion order.
func (s *Store) Products() []Product {
	if s == nil {
		return []Product{}
	}
	out := make([]Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// Posts returns every post in insertion order.
func (s *Store) Posts() []Post {
	if s == nil {
		return []Post{}
	}
	out := make([]Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = clonePost(p)
	}
	return out
}

// ProductsByCategory filters products by category (case-insensitive). An empty
// category returns everything.
func (s *Store) ProductsByCategory(category string) []Product {
	category = strings.TrimSpace(category)
	all := s.Products()
	if category == "" {
		return all
	}
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// PostsByCategory filters posts by category (case-insensitive).
func (s *Store) PostsByCategory(category string) []Post {
	category = strings.TrimSpace(category)
	all := s.Posts()
	if category == "" {
		return all
	}
	out := make([]Post, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// ProductCategories lists distinct product categories in first-seen order.
func (s *Store) ProductCategories() []string {
	seen := map[string]struct{}{}
	var out []string
	if s == nil {
		return out
	}
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok || p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// PostCategories lists distinct post categories in first-seen order.
func (s *Store) PostCategories() []string {
	seen := map[string]struct{}{}
	var out []string
	if s == nil {
		return out
	}
	for _, p := range s.posts {
		if _, ok := seen[p.Category]; ok || p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func cloneProduct(p Product) Product {
	clone := p
	if p.SalePrice != nil {
		v := *p.SalePrice
		clone.SalePrice = &v
	}
	clone.Tags = cloneStrings(p.Tags)
	clone.UsageInstructions = cloneStrings(p.UsageInstructions)
	clone.StorageInstructions = cloneStrings(p.StorageInstructions)
	clone.Benefits = cloneStrings(p.Benefits)
	clone.Warnings = cloneStrings(p.Warnings)
	if p.DetailedIngredients != nil {
		clone.DetailedIngredients = append([]Ingredient(nil), p.DetailedIngredients...)
	}
	if p.FAQs != nil {
		clone.FAQs = append([]FAQ(nil), p.FAQs...)
	}
	return clone
}

func clonePost(p Post) Post {
	clone := p
	clone.Tags = cloneStrings(p.Tags)
	clone.Body = cloneStrings(p.Body)
	clone.Tips = cloneStrings(p.Tips)
	return clone
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
