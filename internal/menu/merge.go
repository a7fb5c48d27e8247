// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"sort"

	"github.com/drunkowl/site-tools/pkg/types"
)

// Merge appends every parsed item to the authoritative document and sets its
// categories to the sorted union of the existing and parsed categories.
//
// Items are never deduplicated: merging the same items twice lists them
// twice. Categories are a set, so repeating a merge leaves them unchanged.
func Merge(doc *Document, items []types.MenuItem, layout Layout) {
	seen := make(map[string]struct{}, len(doc.Categories)+len(items))
	for _, c := range doc.Categories {
		seen[c] = struct{}{}
	}

	for _, it := range items {
		category := it.Category.In(layout.Columns, layout.Base)
		seen[category] = struct{}{}
		doc.Items = append(doc.Items, types.LocaleItem{
			Category: category,
			Name:     it.Name.In(layout.Columns, layout.Base),
			Price:    types.Price(it.Price),
			Desc:     it.Desc,
		})
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	doc.Categories = categories
}
