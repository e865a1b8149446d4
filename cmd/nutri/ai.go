package nutri

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/screen"
	"github.com/saadjs/nutri-cli/internal/store"
	"github.com/saadjs/nutri-cli/internal/view"
)

// lastPlanKey holds the most recent generated plan so later commands can
// page through it or turn it into a shopping list.
const lastPlanKey = "last_plan"

func saveLastPlan(ctx context.Context, kv *store.KV, plan model.Plan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return kv.Set(ctx, lastPlanKey, string(raw))
}

func loadLastPlan(ctx context.Context, kv *store.KV) (model.Plan, error) {
	raw, ok, err := kv.Get(ctx, lastPlanKey)
	if err != nil {
		return model.Plan{}, err
	}
	if !ok {
		return model.Plan{}, fmt.Errorf("%w: run `nutri ai plan` first", screen.ErrNoPlan)
	}
	var plan model.Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return model.Plan{}, fmt.Errorf("decode stored plan: %w", err)
	}
	return plan, nil
}

func printDay(w io.Writer, d model.Day) {
	fmt.Fprintf(w, "%s: %d kcal\n", d.Day, d.CaloriesTarget)
	fmt.Fprintf(w, "Protein %s · Carbs %s · Fats %s\n", d.Macros.Protein, d.Macros.Carbs, d.Macros.Fats)
	for _, m := range d.Meals {
		fmt.Fprintf(w, "- %s: %s\n", m.Name, view.StripMarkup(m.Suggestion))
	}
	if d.Tip != "" {
		fmt.Fprintf(w, "Tip: %s\n", view.StripMarkup(d.Tip))
	}
}

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI meal plans, recipes and shopping lists",
}

var (
	planDays     int
	planDay      int
	planShopping bool
)

var aiPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a meal plan from your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planDays != 1 && planDays != 7 {
			return fmt.Errorf("--days must be 1 or 7")
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			planner := screen.NewPlanner(e.client, e.log)
			plan, err := planner.Generate(ctx, planDays)
			if err != nil {
				return err
			}
			if err := saveLastPlan(ctx, e.kv, plan); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if planDay > 0 {
				d, err := planner.Day(planDay - 1)
				if err != nil {
					return err
				}
				printDay(out, d)
			} else {
				for i, d := range plan.Days {
					if i > 0 {
						fmt.Fprintln(out)
					}
					printDay(out, d)
				}
			}
			if planShopping {
				return planToList(ctx, cmd, e, plan)
			}
			return nil
		})
	},
}

var aiDayCmd = &cobra.Command{
	Use:   "day <n>",
	Short: "Show day n of the last generated plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseInt64Arg("day", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			plan, err := loadLastPlan(ctx, e.kv)
			if err != nil {
				return err
			}
			d, err := view.SelectDay(plan, int(n-1))
			if err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), d)
			return nil
		})
	},
}

var aiShoppingCmd = &cobra.Command{
	Use:   "shopping",
	Short: "Turn the last generated plan into a shopping list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			plan, err := loadLastPlan(ctx, e.kv)
			if err != nil {
				return err
			}
			return planToList(ctx, cmd, e, plan)
		})
	},
}

func planToList(ctx context.Context, cmd *cobra.Command, e *env, plan model.Plan) error {
	l, err := screen.NewShopping(e.client, e.log).FromPlan(ctx, plan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created shopping list %d %q with %d items\n", l.ID, l.Title, len(l.Items))
	return nil
}

var (
	chefSave     bool
	chefCategory string
)

var aiChefCmd = &cobra.Command{
	Use:   "chef <ingredient>...",
	Short: "Ask the AI chef for a recipe using what you have",
	Long:  "Ingredients may be separate arguments or one comma-separated list.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ingredients []string
		for _, a := range args {
			for _, part := range strings.Split(a, ",") {
				if part = strings.TrimSpace(part); part != "" {
					ingredients = append(ingredients, part)
				}
			}
		}
		category, err := model.ParseCategory(chefCategory)
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			r, err := screen.NewPlanner(e.client, e.log).Recipe(ctx, ingredients)
			if err != nil {
				return err
			}
			printRecipe(cmd.OutOrStdout(), r)
			if !chefSave {
				return nil
			}
			if category == model.CategoryAll {
				category = model.CategorySalgado
			}
			saved, err := screen.NewRecipes(e.client, e.log).SaveGenerated(ctx, r, category)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved as recipe %d\n", saved.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(aiCmd)
	aiCmd.AddCommand(aiPlanCmd, aiDayCmd, aiShoppingCmd, aiChefCmd)

	aiPlanCmd.Flags().IntVar(&planDays, "days", 7, "Plan length: 1 or 7")
	aiPlanCmd.Flags().IntVar(&planDay, "day", 0, "Only print this day (1-based)")
	aiPlanCmd.Flags().BoolVar(&planShopping, "shopping", false, "Also create a shopping list from the plan")

	aiChefCmd.Flags().BoolVar(&chefSave, "save", false, "Save the recipe to your book")
	aiChefCmd.Flags().StringVar(&chefCategory, "category", "", "Category when the AI gives none (default salgado)")
}
