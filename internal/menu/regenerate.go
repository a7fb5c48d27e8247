// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import "github.com/drunkowl/site-tools/pkg/types"

// Regenerate replaces doc's categories and items with translations of the
// authoritative document's. Category order follows base one-to-one; nothing
// from doc's previous menu lists survives. Extra item keys are copied from
// the authoritative item untranslated.
func Regenerate(doc, base *Document, tm TranslationMap) {
	categories := make([]string, len(base.Categories))
	for i, c := range base.Categories {
		categories[i] = tm.Category(c)
	}

	items := make([]types.LocaleItem, len(base.Items))
	for i, it := range base.Items {
		items[i] = types.LocaleItem{
			Category: tm.Category(it.Category),
			Name:     tm.Name(it.Name),
			Price:    it.Price,
			Desc:     it.Desc,
			Extra:    append([]types.ItemField(nil), it.Extra...),
		}
	}

	doc.Categories = categories
	doc.Items = items
}
