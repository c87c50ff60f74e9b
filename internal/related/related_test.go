package related

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"phuongcosmetics.vn/storefront-web/internal/catalog"
)

func TestSelectCapsExcludesTargetAndKeepsOrder(t *testing.T) {
	t.Parallel()

	store, err := catalog.Default()
	require.NoError(t, err)
	ctx := context.Background()

	target, err := store.Product(ctx, "p2")
	require.NoError(t, err)

	got := Products(ctx, target, store.Products())
	require.Len(t, got, Limit)
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	// p6 qualifies only through the shared "chống nắng" tag.
	require.Equal(t, []string{"p1", "p4", "p6", "p8"}, ids)
}

func TestSelectPostsByCategoryOrTag(t *testing.T) {
	t.Parallel()

	store, err := catalog.Default()
	require.NoError(t, err)
	ctx := context.Background()

	target, err := store.Post(ctx, "b1")
	require.NoError(t, err)

	got := Posts(ctx, target, store.Posts())
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"b2", "b4", "b6", "b8"}, ids)
}

func TestSelectPropertiesHoldForEveryRecord(t *testing.T) {
	t.Parallel()

	store, err := catalog.Default()
	require.NoError(t, err)
	ctx := context.Background()

	products := store.Products()
	for _, target := range products {
		got := Products(ctx, target, products)
		require.LessOrEqual(t, len(got), Limit)
		for _, p := range got {
			require.NotEqual(t, target.ID, p.ID)
			require.True(t, sharesCategoryOrTag(ProductFacets(target), ProductFacets(p)),
				"%s is not related to %s", p.ID, target.ID)
		}
	}

	posts := store.Posts()
	for _, target := range posts {
		got := Posts(ctx, target, posts)
		require.LessOrEqual(t, len(got), Limit)
		for _, p := range got {
			require.NotEqual(t, target.ID, p.ID)
			require.True(t, sharesCategoryOrTag(PostFacets(target), PostFacets(p)),
				"%s is not related to %s", p.ID, target.ID)
		}
	}
}

func TestSelectEdgeCases(t *testing.T) {
	t.Parallel()

	target := catalog.Post{ID: "x", Category: "Skincare"}
	require.Empty(t, Select(target, nil, PostFacets, Limit))
	require.Empty(t, Select(target, []catalog.Post{{ID: "y", Category: "Skincare"}}, PostFacets, 0))
	require.Empty(t, Select(target, []catalog.Post{{ID: "x", Category: "Skincare"}}, PostFacets, Limit))

	// Blank categories are equal like any other value.
	blank := catalog.Post{ID: "a"}
	got := Select(blank, []catalog.Post{{ID: "b"}, {ID: "c", Category: "Makeup"}}, PostFacets, Limit)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].ID)
}

func TestSelectComparesFacetsVerbatim(t *testing.T) {
	t.Parallel()

	target := catalog.Product{ID: "a", Category: "Skincare", Tags: []string{"Serum"}}
	items := []catalog.Product{
		target,
		{ID: "b", Category: "skincare "},
		{ID: "c", Category: "Makeup", Tags: []string{"serum"}},
		{ID: "d", Category: "Makeup", Tags: []string{" Serum"}},
	}
	require.Empty(t, Select(target, items, ProductFacets, Limit))

	items = append(items, catalog.Product{ID: "e", Category: "Makeup", Tags: []string{"Serum"}})
	got := Select(target, items, ProductFacets, Limit)
	require.Len(t, got, 1)
	require.Equal(t, "e", got[0].ID)
}

func sharesCategoryOrTag(a, b Facets) bool {
	if a.Category == b.Category {
		return true
	}
	for _, x := range a.Tags {
		for _, y := range b.Tags {
			if x == y {
				return true
			}
		}
	}
	return false
}
