// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drunkowl/site-tools/pkg/types"
)

var testLayout = Layout{Columns: types.Columns{"ru", "en", "ka"}, Base: "en"}

func saladItems() []types.MenuItem {
	salads := types.TrilingualLabel{"Салаты", "Salads", "სალათები"}
	soups := types.TrilingualLabel{"Супы", "Soups", "სუპები"}
	return []types.MenuItem{
		{Category: salads, Name: types.TrilingualLabel{"Греческий салат", "Greek Salad", "ბერძნული სალათი"}, Price: "15.00"},
		{Category: soups, Name: types.TrilingualLabel{"Борщ", "Borscht", "ბორში"}, Price: "10"},
	}
}

func emptyDoc(t *testing.T, categories ...string) *Document {
	t.Helper()
	doc, err := DecodeDocument([]byte(`{"menu": {"categories": [], "items": []}}`))
	require.NoError(t, err)
	doc.Categories = categories
	return doc
}

func TestMerge(t *testing.T) {
	doc := emptyDoc(t, "Wine", "Beer")
	Merge(doc, saladItems(), testLayout)

	assert.Equal(t, []string{"Beer", "Salads", "Soups", "Wine"}, doc.Categories)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, types.LocaleItem{Category: "Salads", Name: "Greek Salad", Price: "15.00"}, doc.Items[0])
	assert.Equal(t, types.LocaleItem{Category: "Soups", Name: "Borscht", Price: "10"}, doc.Items[1])
}

func TestMerge_AppendsAfterExistingItems(t *testing.T) {
	doc := emptyDoc(t, "Beer")
	doc.Items = []types.LocaleItem{{Category: "Beer", Name: "Lager", Price: "8"}}

	Merge(doc, saladItems()[:1], testLayout)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Lager", doc.Items[0].Name)
	assert.Equal(t, "Greek Salad", doc.Items[1].Name)
}

// Merging is idempotent for categories but not for items: the source has no
// item identity, so a repeated run lists every item again.
func TestMerge_RepeatedRun(t *testing.T) {
	doc := emptyDoc(t, "Beer")
	items := saladItems()

	Merge(doc, items, testLayout)
	categoriesAfterFirst := append([]string(nil), doc.Categories...)
	Merge(doc, items, testLayout)

	assert.Equal(t, categoriesAfterFirst, doc.Categories)
	assert.Len(t, doc.Items, 2*len(items))
	assert.Equal(t, doc.Items[0], doc.Items[2])
	assert.Equal(t, doc.Items[1], doc.Items[3])
}

func TestMerge_DeduplicatesExistingCategories(t *testing.T) {
	doc := emptyDoc(t, "Beer", "Beer", "Food")
	Merge(doc, nil, testLayout)
	assert.Equal(t, []string{"Beer", "Food"}, doc.Categories)
	assert.Empty(t, doc.Items)
}

func TestMerge_CodePointOrder(t *testing.T) {
	doc := emptyDoc(t, "snacks", "Beer", "Éclairs", "Wine")
	Merge(doc, nil, testLayout)
	assert.Equal(t, []string{"Beer", "Wine", "snacks", "Éclairs"}, doc.Categories)
}
