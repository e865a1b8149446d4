package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saadjs/nutri-cli/internal/model"
)

func (c *Client) Recipes(ctx context.Context) ([]model.Recipe, error) {
	out := make([]model.Recipe, 0)
	if err := c.do(ctx, http.MethodGet, "/recipes/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Recipe(ctx context.Context, id int64) (model.Recipe, error) {
	var out model.Recipe
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/recipes/%d", id), nil, &out); err != nil {
		return model.Recipe{}, err
	}
	return out, nil
}

func (c *Client) CreateRecipe(ctx context.Context, r model.Recipe) (model.Recipe, error) {
	r.ID = 0
	var out model.Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes/", r, &out); err != nil {
		return model.Recipe{}, err
	}
	return out, nil
}

// UpdateRecipe replaces the recipe and returns the server's representation,
// which may carry recalculated fields.
func (c *Client) UpdateRecipe(ctx context.Context, id int64, r model.Recipe) (model.Recipe, error) {
	var out model.Recipe
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/recipes/%d", id), r, &out); err != nil {
		return model.Recipe{}, err
	}
	return out, nil
}

func (c *Client) DeleteRecipe(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/recipes/%d", id), nil, nil)
}
