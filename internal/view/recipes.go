// Package view holds the pure transforms applied to fetched data before it
// is printed. Nothing here mutates its input.
package view

import (
	"sort"

	"github.com/saadjs/nutri-cli/internal/model"
)

// FilterCategory keeps recipes in category c. CategoryAll (or empty) keeps
// everything. The result is always a new slice.
func FilterCategory(recipes []model.Recipe, c model.Category) []model.Recipe {
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if c == "" || c == model.CategoryAll || r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// FavoritesFirst moves favourites to the front, keeping relative order
// within each group.
func FavoritesFirst(recipes []model.Recipe) []model.Recipe {
	out := append([]model.Recipe(nil), recipes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsFavorite && !out[j].IsFavorite
	})
	return out
}

// RecipeCalories is the sum of ingredient calories, unless manual is set.
func RecipeCalories(ingredients []model.Ingredient, manual *float64) float64 {
	if manual != nil {
		return *manual
	}
	var total float64
	for _, ing := range ingredients {
		total += ing.Calories
	}
	return total
}
