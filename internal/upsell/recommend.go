// Package upsell computes ranked suggestion lists from menu data. All
// functions are pure and deterministic: they never mutate their inputs and
// produce the same output for the same menu.
package upsell

import (
	"sort"
	"strings"

	"tabletap/internal/model"
)

// DefaultLimit is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultLimit = 4

// Category name fragments that mark a category as an upsell fallback source.
// Matching is a case-insensitive substring test so localized category names
// like "Soft Drinks" or "Side Dishes" qualify too.
var fallbackCategoryTerms = []string{"drink", "beverage", "dessert", "sweet", "side"}

// Recommend produces up to limit items worth suggesting alongside current,
// using a three-tier waterfall:
//
//  1. Explicit pairings from current.PairsWith, in listed order. These
//     always lead the result and are never displaced by later tiers.
//  2. Available items from drink/dessert/side categories, ascending by
//     order count.
//  3. Any remaining available item in the menu, ascending by order count.
//
// The current item, unavailable items and duplicates are excluded at every
// tier. Tier order is preserved; the result is never re-sorted globally and
// never padded, so a small menu yields fewer than limit entries.
func Recommend(current *model.MenuItem, menu []model.MenuItem, limit int) []model.MenuItem {
	if current == nil || limit <= 0 {
		return nil
	}

	byID := make(map[string]*model.MenuItem, len(menu))
	for i := range menu {
		byID[menu[i].ID] = &menu[i]
	}

	picked := make(map[string]struct{}, limit)
	result := make([]model.MenuItem, 0, limit)

	eligible := func(item *model.MenuItem) bool {
		if item == nil || !item.Available || item.ID == current.ID {
			return false
		}
		_, dup := picked[item.ID]
		return !dup
	}

	take := func(item *model.MenuItem) {
		picked[item.ID] = struct{}{}
		result = append(result, *item)
	}

	// Tier 1: explicit pairings, in the order they appear.
	for _, id := range current.PairsWith {
		if len(result) >= limit {
			return result
		}
		if item := byID[id]; eligible(item) {
			take(item)
		}
	}

	// Tier 2: drink/dessert/side categories, least-ordered first.
	if len(result) < limit {
		var pool []*model.MenuItem
		for i := range menu {
			item := &menu[i]
			if eligible(item) && isFallbackCategory(item.Category) {
				pool = append(pool, item)
			}
		}
		sortByOrderCount(pool)
		for _, item := range pool {
			if len(result) >= limit {
				return result
			}
			take(item)
		}
	}

	// Tier 3: the whole menu, least-ordered first.
	if len(result) < limit {
		var pool []*model.MenuItem
		for i := range menu {
			if item := &menu[i]; eligible(item) {
				pool = append(pool, item)
			}
		}
		sortByOrderCount(pool)
		for _, item := range pool {
			if len(result) >= limit {
				break
			}
			take(item)
		}
	}

	return result
}

// FilterFasting removes items not flagged fasting-compatible when enabled is
// set, preserving the original relative order. When enabled is false the
// input is returned unchanged.
func FilterFasting(items []model.MenuItem, enabled bool) []model.MenuItem {
	if !enabled {
		return items
	}
	filtered := make([]model.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Fasting {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func isFallbackCategory(category string) bool {
	lower := strings.ToLower(category)
	for _, term := range fallbackCategoryTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// sortByOrderCount sorts ascending by order count, stably so menu order
// breaks ties. A missing counter is zero by construction of MenuItem.
func sortByOrderCount(items []*model.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OrderCount < items[j].OrderCount
	})
}
