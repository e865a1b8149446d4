package view

import (
	"fmt"
	"sort"
	"time"

	"github.com/saadjs/nutri-cli/internal/model"
)

// SelectDay returns day i (zero based) of the plan.
func SelectDay(plan model.Plan, i int) (model.Day, error) {
	if i < 0 || i >= len(plan.Days) {
		return model.Day{}, fmt.Errorf("day %d out of range (plan has %d days)", i+1, len(plan.Days))
	}
	return plan.Days[i], nil
}

// SortListsNewestFirst orders shopping lists by creation time, newest
// first. Lists created at the same instant keep their order.
func SortListsNewestFirst(lists []model.ShoppingList) []model.ShoppingList {
	out := append([]model.ShoppingList(nil), lists...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Progress counts checked items.
func Progress(l model.ShoppingList) (checked, total int) {
	for _, it := range l.Items {
		if it.Checked {
			checked++
		}
	}
	return checked, len(l.Items)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006")
}
