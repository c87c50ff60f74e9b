package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"phuongcosmetics.vn/storefront-web/internal/catalog"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProductsListsCatalog(t *testing.T) {
	out, err := run(t, "products")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 11)
	require.Contains(t, lines[1], "p1")
	require.Contains(t, lines[1], "400.000₫")
	require.Contains(t, lines[1], "-20%")
}

func TestProductsFilterByCategoryJSON(t *testing.T) {
	out, err := run(t, "products", "--category", "Makeup", "--json")
	require.NoError(t, err)
	var products []catalog.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 2)
	for _, p := range products {
		require.Equal(t, "Makeup", p.Category)
	}
}

func TestPostsList(t *testing.T) {
	out, err := run(t, "posts")
	require.NoError(t, err)
	require.Contains(t, out, "b1")
	require.Contains(t, out, "2025-01-15")
}

func TestShowProduct(t *testing.T) {
	out, err := run(t, "show", "product", "p1")
	require.NoError(t, err)
	require.Contains(t, out, "price:    400.000₫")
	require.Contains(t, out, "was:      500.000₫ (-20%)")
}

func TestShowMissingRecord(t *testing.T) {
	_, err := run(t, "show", "post", "zzz")
	require.Error(t, err)
	require.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestRelatedRejectsUnknownKind(t *testing.T) {
	_, err := run(t, "related", "brand", "p1")
	require.ErrorContains(t, err, "unknown kind")
}

func TestRelatedProduct(t *testing.T) {
	out, err := run(t, "related", "product", "p1", "--json")
	require.NoError(t, err)
	var products []catalog.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.NotEmpty(t, products)
	require.LessOrEqual(t, len(products), 4)
	for _, p := range products {
		require.NotEqual(t, "p1", p.ID)
	}
}

func TestJSONLDPost(t *testing.T) {
	out, err := run(t, "jsonld", "post", "b1", "--base-url", "https://example.vn")
	require.NoError(t, err)
	var blocks map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &blocks))
	require.Equal(t, "BlogPosting", blocks["article-schema"]["@type"])
	require.Equal(t, "PT6M", blocks["article-schema"]["timeRequired"])
}

func TestJSONLDProduct(t *testing.T) {
	out, err := run(t, "jsonld", "product", "p1")
	require.NoError(t, err)
	var blocks map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &blocks))
	require.Contains(t, blocks, "product-schema")
	require.Contains(t, blocks, "breadcrumb-schema")
	require.Contains(t, blocks, "faq-schema")
}
