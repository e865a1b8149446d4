package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/view"
)

var ErrNoPlan = errors.New("no plan generated yet")

type PlannerAPI interface {
	GeneratePlan(ctx context.Context, days int) (model.Plan, error)
	RecipeByIngredients(ctx context.Context, ingredients []string) (model.Recipe, error)
}

type Planner struct {
	base
	api    PlannerAPI
	flight singleflight.Group
	plan   model.Plan
	has    bool
}

func NewPlanner(a PlannerAPI, log *slog.Logger) *Planner {
	return &Planner{base: newBase(log), api: a}
}

// Generate requests a days-long plan. Concurrent requests for the same
// length share one backend call. The shared call outlives a caller that
// gives up, so the others still get the plan.
func (s *Planner) Generate(ctx context.Context, days int) (model.Plan, error) {
	s.loading()
	ch := s.flight.DoChan(strconv.Itoa(days), func() (any, error) {
		plan, err := s.api.GeneratePlan(context.WithoutCancel(ctx), days)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.settle(err)
		if err == nil {
			s.plan, s.has = plan, true
		}
		return plan, err
	})

	select {
	case <-ctx.Done():
		return model.Plan{}, fmt.Errorf("generate plan: %w", ctx.Err())
	case res := <-ch:
		if res.Shared {
			s.log.DebugContext(ctx, "screen: plan request shared", "days", days)
		}
		if res.Err != nil {
			return model.Plan{}, fmt.Errorf("generate plan: %w", res.Err)
		}
		return res.Val.(model.Plan), nil
	}
}

func (s *Planner) Plan() (model.Plan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan, s.has
}

// Day returns day i (zero based) of the last generated plan.
func (s *Planner) Day(i int) (model.Day, error) {
	plan, ok := s.Plan()
	if !ok {
		return model.Day{}, ErrNoPlan
	}
	return view.SelectDay(plan, i)
}

// Recipe asks the AI chef for a recipe using the given ingredients.
func (s *Planner) Recipe(ctx context.Context, ingredients []string) (model.Recipe, error) {
	r, err := s.api.RecipeByIngredients(ctx, ingredients)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("generate recipe: %w", err)
	}
	return r, nil
}
