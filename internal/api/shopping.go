package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/saadjs/nutri-cli/internal/model"
)

type newItem struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

func (c *Client) ShoppingLists(ctx context.Context) ([]model.ShoppingList, error) {
	out := make([]model.ShoppingList, 0)
	if err := c.do(ctx, http.MethodGet, "/shopping/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateShoppingList creates a list, optionally seeded with unchecked items.
func (c *Client) CreateShoppingList(ctx context.Context, title string, items ...string) (model.ShoppingList, error) {
	body := struct {
		Title string    `json:"title"`
		Items []newItem `json:"items"`
	}{Title: strings.TrimSpace(title), Items: make([]newItem, 0, len(items))}
	for _, name := range items {
		if name = strings.TrimSpace(name); name != "" {
			body.Items = append(body.Items, newItem{Name: name})
		}
	}
	var out model.ShoppingList
	if err := c.do(ctx, http.MethodPost, "/shopping/", body, &out); err != nil {
		return model.ShoppingList{}, err
	}
	if out.Items == nil {
		out.Items = []model.ShoppingItem{}
	}
	return out, nil
}

func (c *Client) DeleteShoppingList(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/shopping/%d", id), nil, nil)
}

func (c *Client) AddShoppingItem(ctx context.Context, listID int64, name string) (model.ShoppingItem, error) {
	var out model.ShoppingItem
	body := newItem{Name: strings.TrimSpace(name)}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/shopping/%d/items", listID), body, &out); err != nil {
		return model.ShoppingItem{}, err
	}
	return out, nil
}

func (c *Client) ToggleShoppingItem(ctx context.Context, itemID int64) (model.ShoppingItem, error) {
	var out model.ShoppingItem
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/shopping/items/%d/toggle", itemID), nil, &out); err != nil {
		return model.ShoppingItem{}, err
	}
	return out, nil
}

func (c *Client) DeleteShoppingItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/shopping/items/%d", itemID), nil, nil)
}
