package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

type productsFileDoc struct {
	Products []rawProduct `yaml:"products"`
}

type rawProduct struct {
	ID                  string          `yaml:"id"`
	Name                string          `yaml:"name"`
	Brand               string          `yaml:"brand"`
	Category            string          `yaml:"category"`
	Price               int64           `yaml:"price"`
	SalePrice           *int64          `yaml:"sale_price"`
	Rating              float64         `yaml:"rating"`
	Popularity          int             `yaml:"popularity"`
	Stock               int             `yaml:"stock"`
	Tags                []string        `yaml:"tags"`
	Description         string          `yaml:"description"`
	Ingredients         string          `yaml:"ingredients"`
	Image               string          `yaml:"image"`
	CreatedAt           string          `yaml:"created_at"`
	DetailedIngredients []rawIngredient `yaml:"detailed_ingredients"`
	UsageInstructions   []string        `yaml:"usage_instructions"`
	History             string          `yaml:"history"`
	StorageInstructions []string        `yaml:"storage_instructions"`
	Benefits            []string        `yaml:"benefits"`
	Warnings            []string        `yaml:"warnings"`
	FAQs                []rawFAQ        `yaml:"faqs"`
}

type rawIngredient struct {
	Name          string `yaml:"name"`
	Concentration string `yaml:"concentration"`
	Function      string `yaml:"function"`
}

type rawFAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

func loadProducts(fsys fs.FS, file string) ([]Product, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Product{}, nil
		}
		return nil, &LoadError{File: file, Err: err}
	}
	var doc productsFileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{File: file, Err: fmt.Errorf("parse yaml: %w", err)}
	}
	out := make([]Product, 0, len(doc.Products))
	for _, raw := range doc.Products {
		p, err := mapRawProduct(raw)
		if err != nil {
			return nil, &LoadError{File: file, Err: err}
		}
		out = append(out, p)
	}
	return out, nil
}

func mapRawProduct(raw rawProduct) (Product, error) {
	id := strings.TrimSpace(raw.ID)
	if raw.Price <= 0 {
		return Product{}, fmt.Errorf("product %q: price must be positive", id)
	}
	if raw.SalePrice != nil && *raw.SalePrice < 0 {
		return Product{}, fmt.Errorf("product %q: negative sale price", id)
	}
	p := Product{
		ID:                  id,
		Name:                strings.TrimSpace(raw.Name),
		Brand:               strings.TrimSpace(raw.Brand),
		Category:            strings.TrimSpace(raw.Category),
		Price:               raw.Price,
		Rating:              raw.Rating,
		Popularity:          raw.Popularity,
		Stock:               raw.Stock,
		Tags:                trimSlice(raw.Tags),
		Description:         strings.TrimSpace(raw.Description),
		Ingredients:         strings.TrimSpace(raw.Ingredients),
		Image:               strings.TrimSpace(raw.Image),
		CreatedAt:           parseContentDate(raw.CreatedAt),
		UsageInstructions:   trimSlice(raw.UsageInstructions),
		History:             strings.TrimSpace(raw.History),
		StorageInstructions: trimSlice(raw.StorageInstructions),
		Benefits:            trimSlice(raw.Benefits),
		Warnings:            trimSlice(raw.Warnings),
	}
	if raw.SalePrice != nil {
		v := *raw.SalePrice
		p.SalePrice = &v
	}
	for _, ing := range raw.DetailedIngredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		p.DetailedIngredients = append(p.DetailedIngredients, Ingredient{
			Name:          strings.TrimSpace(ing.Name),
			Concentration: strings.TrimSpace(ing.Concentration),
			Function:      strings.TrimSpace(ing.Function),
		})
	}
	for _, faq := range raw.FAQs {
		if strings.TrimSpace(faq.Question) == "" {
			continue
		}
		p.FAQs = append(p.FAQs, FAQ{
			Question: strings.TrimSpace(faq.Question),
			Answer:   strings.TrimSpace(faq.Answer),
		})
	}
	return p, nil
}
