package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/saadjs/nutri-cli/internal/model"
)

// GeneratePlan asks the backend for a 1- or 7-day meal plan built from the
// caller's profile.
func (c *Client) GeneratePlan(ctx context.Context, days int) (model.Plan, error) {
	if days != 1 && days != 7 {
		return model.Plan{}, fmt.Errorf("plan length must be 1 or 7 days, got %d", days)
	}
	raw, err := c.doRaw(ctx, http.MethodPost, "/ai/generate-plan", map[string]int{"days": days})
	if err != nil {
		return model.Plan{}, err
	}
	return DecodePlan(raw, days)
}

func (c *Client) RecipeByIngredients(ctx context.Context, ingredients []string) (model.Recipe, error) {
	clean := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			clean = append(clean, ing)
		}
	}
	if len(clean) == 0 {
		return model.Recipe{}, fmt.Errorf("at least one ingredient is required")
	}
	raw, err := c.doRaw(ctx, http.MethodPost, "/ai/recipe-by-ingredients", map[string][]string{"ingredients": clean})
	if err != nil {
		return model.Recipe{}, err
	}
	return DecodeGeneratedRecipe(raw)
}

// CalculateCalories estimates the calories of one ingredient quantity.
func (c *Client) CalculateCalories(ctx context.Context, ing model.Ingredient) (float64, error) {
	body := struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}{Name: strings.TrimSpace(ing.Name), Quantity: ing.Quantity, Unit: strings.TrimSpace(ing.Unit)}
	raw, err := c.doRaw(ctx, http.MethodPost, "/ai/calculate-calories", body)
	if err != nil {
		return 0, err
	}
	return DecodeCalories(raw)
}

func (c *Client) PlanToShoppingList(ctx context.Context, plan model.Plan) (model.ShoppingList, error) {
	var out model.ShoppingList
	if err := c.do(ctx, http.MethodPost, "/ai/plan-to-shopping-list", plan, &out); err != nil {
		return model.ShoppingList{}, err
	}
	if out.Items == nil {
		out.Items = []model.ShoppingItem{}
	}
	return out, nil
}
