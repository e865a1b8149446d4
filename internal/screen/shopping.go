package screen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/mutation"
	"github.com/saadjs/nutri-cli/internal/view"
)

type ShoppingAPI interface {
	ShoppingLists(ctx context.Context) ([]model.ShoppingList, error)
	CreateShoppingList(ctx context.Context, title string, items ...string) (model.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, id int64) error
	AddShoppingItem(ctx context.Context, listID int64, name string) (model.ShoppingItem, error)
	ToggleShoppingItem(ctx context.Context, itemID int64) (model.ShoppingItem, error)
	DeleteShoppingItem(ctx context.Context, itemID int64) error
	PlanToShoppingList(ctx context.Context, plan model.Plan) (model.ShoppingList, error)
}

type Shopping struct {
	base
	api     ShoppingAPI
	tracker *mutation.Tracker
	lists   []model.ShoppingList
}

func NewShopping(a ShoppingAPI, log *slog.Logger) *Shopping {
	return &Shopping{base: newBase(log), api: a, tracker: mutation.NewTracker()}
}

func (s *Shopping) Load(ctx context.Context) error {
	s.loading()
	lists, err := s.api.ShoppingLists(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle(err)
	if err != nil {
		return fmt.Errorf("load shopping lists: %w", err)
	}
	s.lists = view.SortListsNewestFirst(lists)
	return nil
}

func (s *Shopping) reload(ctx context.Context) error {
	s.log.InfoContext(ctx, "screen: reload after failed mutation", "screen", "shopping")
	return s.Load(ctx)
}

// Lists returns a copy of the cached lists, newest first.
func (s *Shopping) Lists() []model.ShoppingList {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ShoppingList, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, l.Clone())
	}
	return out
}

func (s *Shopping) List(id int64) (model.ShoppingList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lists {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return model.ShoppingList{}, false
}

func (s *Shopping) prepend(l model.ShoppingList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append([]model.ShoppingList{l}, s.lists...)
}

// editItem applies fn to the item with id wherever it is cached.
func (s *Shopping) editItem(id int64, fn func(items []model.ShoppingItem, i int) []model.ShoppingItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for li := range s.lists {
		items := s.lists[li].Items
		for i := range items {
			if items[i].ID == id {
				s.lists[li].Items = fn(items, i)
				return
			}
		}
	}
}

func (s *Shopping) CreateList(ctx context.Context, title string, items ...string) (model.ShoppingList, error) {
	out, err := mutation.Run(ctx, s.tracker, mutation.Step[model.ShoppingList]{
		Key: "list:new",
		Call: func(ctx context.Context) (model.ShoppingList, error) {
			return s.api.CreateShoppingList(ctx, title, items...)
		},
		Reconcile: s.prepend,
	})
	if err != nil {
		return model.ShoppingList{}, fmt.Errorf("create list: %w", err)
	}
	return out, nil
}

// FromPlan asks the backend to turn a meal plan into a new list.
func (s *Shopping) FromPlan(ctx context.Context, plan model.Plan) (model.ShoppingList, error) {
	if len(plan.Days) == 0 {
		return model.ShoppingList{}, fmt.Errorf("plan has no days")
	}
	out, err := mutation.Run(ctx, s.tracker, mutation.Step[model.ShoppingList]{
		Key: "list:new",
		Call: func(ctx context.Context) (model.ShoppingList, error) {
			return s.api.PlanToShoppingList(ctx, plan)
		},
		Reconcile: s.prepend,
	})
	if err != nil {
		return model.ShoppingList{}, fmt.Errorf("shopping list from plan: %w", err)
	}
	return out, nil
}

func (s *Shopping) DeleteList(ctx context.Context, id int64) error {
	_, err := mutation.Run(ctx, s.tracker, mutation.Step[struct{}]{
		Key: fmt.Sprintf("list:%d", id),
		Apply: func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.lists {
				if s.lists[i].ID == id {
					s.lists = append(s.lists[:i:i], s.lists[i+1:]...)
					return
				}
			}
		},
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteShoppingList(ctx, id)
		},
		Reload: s.reload,
	})
	if err != nil {
		return fmt.Errorf("delete list %d: %w", id, err)
	}
	return nil
}

// AddItem appends an unchecked item to list listID.
func (s *Shopping) AddItem(ctx context.Context, listID int64, name string) (model.ShoppingItem, error) {
	if strings.TrimSpace(name) == "" {
		return model.ShoppingItem{}, fmt.Errorf("item name is required")
	}
	out, err := mutation.Run(ctx, s.tracker, mutation.Step[model.ShoppingItem]{
		Key: fmt.Sprintf("list:%d", listID),
		Call: func(ctx context.Context) (model.ShoppingItem, error) {
			return s.api.AddShoppingItem(ctx, listID, name)
		},
		Reconcile: func(item model.ShoppingItem) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.lists {
				if s.lists[i].ID == listID {
					s.lists[i].Items = append(s.lists[i].Items, item)
					return
				}
			}
		},
		Reload: s.reload,
	})
	if err != nil {
		return model.ShoppingItem{}, fmt.Errorf("add item to list %d: %w", listID, err)
	}
	return out, nil
}

// ToggleItem flips the checked state of one item, then takes the item as
// the server returned it.
func (s *Shopping) ToggleItem(ctx context.Context, itemID int64) (model.ShoppingItem, error) {
	out, err := mutation.Run(ctx, s.tracker, mutation.Step[model.ShoppingItem]{
		Key: fmt.Sprintf("item:%d", itemID),
		Apply: func() {
			s.editItem(itemID, func(items []model.ShoppingItem, i int) []model.ShoppingItem {
				items[i].Checked = !items[i].Checked
				return items
			})
		},
		Call: func(ctx context.Context) (model.ShoppingItem, error) {
			return s.api.ToggleShoppingItem(ctx, itemID)
		},
		Reconcile: func(item model.ShoppingItem) {
			s.editItem(itemID, func(items []model.ShoppingItem, i int) []model.ShoppingItem {
				items[i] = item
				return items
			})
		},
		Reload: s.reload,
	})
	if err != nil {
		return model.ShoppingItem{}, fmt.Errorf("toggle item %d: %w", itemID, err)
	}
	return out, nil
}

func (s *Shopping) RemoveItem(ctx context.Context, itemID int64) error {
	_, err := mutation.Run(ctx, s.tracker, mutation.Step[struct{}]{
		Key: fmt.Sprintf("item:%d", itemID),
		Apply: func() {
			s.editItem(itemID, func(items []model.ShoppingItem, i int) []model.ShoppingItem {
				return append(items[:i:i], items[i+1:]...)
			})
		},
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteShoppingItem(ctx, itemID)
		},
		Reload: s.reload,
	})
	if err != nil {
		return fmt.Errorf("remove item %d: %w", itemID, err)
	}
	return nil
}
