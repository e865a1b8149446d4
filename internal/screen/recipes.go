package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/mutation"
	"github.com/saadjs/nutri-cli/internal/view"
)

// maxCalorieCalls bounds concurrent per-ingredient estimates.
const maxCalorieCalls = 4

type RecipeAPI interface {
	Recipes(ctx context.Context) ([]model.Recipe, error)
	CreateRecipe(ctx context.Context, r model.Recipe) (model.Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, r model.Recipe) (model.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
	CalculateCalories(ctx context.Context, ing model.Ingredient) (float64, error)
}

type Recipes struct {
	base
	api     RecipeAPI
	tracker *mutation.Tracker
	items   []model.Recipe
}

func NewRecipes(a RecipeAPI, log *slog.Logger) *Recipes {
	return &Recipes{base: newBase(log), api: a, tracker: mutation.NewTracker()}
}

func recipeKey(id int64) string {
	return fmt.Sprintf("recipe:%d", id)
}

func (s *Recipes) Load(ctx context.Context) error {
	s.loading()
	items, err := s.api.Recipes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle(err)
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}
	s.items = items
	return nil
}

// reload is the failure path of every recipe mutation.
func (s *Recipes) reload(ctx context.Context) error {
	s.log.InfoContext(ctx, "screen: reload after failed mutation", "screen", "recipes")
	return s.Load(ctx)
}

// All returns a copy of the cached recipes in server order.
func (s *Recipes) All() []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Recipe, 0, len(s.items))
	for _, r := range s.items {
		out = append(out, r.Clone())
	}
	return out
}

// Visible is what the recipe list shows for category c: filtered, then
// favourites first.
func (s *Recipes) Visible(c model.Category) []model.Recipe {
	return view.FavoritesFirst(view.FilterCategory(s.All(), c))
}

func (s *Recipes) Get(id int64) (model.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Recipe{}, false
	}
	return s.items[i].Clone(), true
}

// Saving reports whether a mutation of recipe id is in flight.
func (s *Recipes) Saving(id int64) bool {
	return s.tracker.State(recipeKey(id)) == mutation.Saving
}

func (s *Recipes) indexLocked(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// put replaces the cached copy of r, if present.
func (s *Recipes) put(r model.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(r.ID); i >= 0 {
		s.items[i] = r
	}
}

// ToggleFavorite flips the favourite flag locally, then saves the recipe.
func (s *Recipes) ToggleFavorite(ctx context.Context, id int64) (model.Recipe, error) {
	cur, ok := s.Get(id)
	if !ok {
		return model.Recipe{}, fmt.Errorf("recipe %d not loaded", id)
	}
	next := cur.Clone()
	next.IsFavorite = !cur.IsFavorite
	return s.save(ctx, next)
}

// Update saves r as recipe id. The local copy is replaced immediately and
// again with the server's version once it answers.
func (s *Recipes) Update(ctx context.Context, id int64, r model.Recipe) (model.Recipe, error) {
	if err := r.Validate(); err != nil {
		return model.Recipe{}, err
	}
	r.ID = id
	return s.save(ctx, r)
}

func (s *Recipes) save(ctx context.Context, r model.Recipe) (model.Recipe, error) {
	out, err := mutation.Run(ctx, s.tracker, mutation.Step[model.Recipe]{
		Key:   recipeKey(r.ID),
		Apply: func() { s.put(r.Clone()) },
		Call: func(ctx context.Context) (model.Recipe, error) {
			return s.api.UpdateRecipe(ctx, r.ID, r)
		},
		Reconcile: s.put,
		Reload:    s.reload,
	})
	if err != nil {
		return model.Recipe{}, fmt.Errorf("save recipe %d: %w", r.ID, err)
	}
	return out, nil
}

// Create saves a new recipe and appends the server's copy.
func (s *Recipes) Create(ctx context.Context, r model.Recipe) (model.Recipe, error) {
	if err := r.Validate(); err != nil {
		return model.Recipe{}, err
	}
	out, err := mutation.Run(ctx, s.tracker, mutation.Step[model.Recipe]{
		Key: "recipe:new",
		Call: func(ctx context.Context) (model.Recipe, error) {
			return s.api.CreateRecipe(ctx, r)
		},
		Reconcile: func(created model.Recipe) {
			s.mu.Lock()
			s.items = append(s.items, created)
			s.mu.Unlock()
		},
	})
	if err != nil {
		return model.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}
	return out, nil
}

// Delete removes the recipe locally first and reloads if the server refuses.
func (s *Recipes) Delete(ctx context.Context, id int64) error {
	_, err := mutation.Run(ctx, s.tracker, mutation.Step[struct{}]{
		Key: recipeKey(id),
		Apply: func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if i := s.indexLocked(id); i >= 0 {
				s.items = append(s.items[:i:i], s.items[i+1:]...)
			}
		},
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteRecipe(ctx, id)
		},
		Reload: s.reload,
	})
	if err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}

// CalculateIngredients estimates calories for every ingredient
// concurrently. Rows whose estimate fails keep their previous value; their
// errors are returned joined alongside the updated rows.
func (s *Recipes) CalculateIngredients(ctx context.Context, ings []model.Ingredient) ([]model.Ingredient, error) {
	out := append([]model.Ingredient(nil), ings...)
	errs := make([]error, len(out))

	var g errgroup.Group
	g.SetLimit(maxCalorieCalls)
	for i := range out {
		if err := out[i].Validate(); err != nil {
			errs[i] = err
			continue
		}
		i := i
		g.Go(func() error {
			kcal, err := s.api.CalculateCalories(ctx, out[i])
			if err != nil {
				errs[i] = fmt.Errorf("estimate %q: %w", out[i].Name, err)
				return nil
			}
			out[i].Calories = kcal
			return nil
		})
	}
	_ = g.Wait()
	return out, errors.Join(errs...)
}

// SaveGenerated stores a recipe produced by the AI chef. Generated recipes
// come without a category when the model omits one; fallback fills it.
func (s *Recipes) SaveGenerated(ctx context.Context, r model.Recipe, fallback model.Category) (model.Recipe, error) {
	r.ID = 0
	r.IsFavorite = false
	if r.Category == "" || r.Category == model.CategoryAll {
		r.Category = fallback
	}
	if r.Calories == 0 {
		r.Calories = view.RecipeCalories(r.Ingredients, nil)
	}
	return s.Create(ctx, r)
}
