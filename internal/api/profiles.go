package api

import (
	"context"
	"net/http"

	"github.com/saadjs/nutri-cli/internal/model"
)

func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var out model.Profile
	if err := c.do(ctx, http.MethodGet, "/profiles/me", nil, &out); err != nil {
		return model.Profile{}, err
	}
	return out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	var out model.Profile
	if err := c.do(ctx, http.MethodPut, "/profiles/me", p, &out); err != nil {
		return model.Profile{}, err
	}
	return out, nil
}

func (c *Client) AddWeight(ctx context.Context, weight float64) (model.WeightEntry, error) {
	var out model.WeightEntry
	body := map[string]float64{"weight": weight}
	if err := c.do(ctx, http.MethodPost, "/profiles/weight", body, &out); err != nil {
		return model.WeightEntry{}, err
	}
	return out, nil
}

func (c *Client) WeightHistory(ctx context.Context) ([]model.WeightEntry, error) {
	out := make([]model.WeightEntry, 0)
	if err := c.do(ctx, http.MethodGet, "/profiles/weight/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
