package nutri

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/screen"
	"github.com/saadjs/nutri-cli/internal/view"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage your recipe book",
}

var recipeListCategory string

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes, favourites first",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := model.ParseCategory(recipeListCategory)
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			recipes := screen.NewRecipes(e.client, e.log)
			if err := recipes.Load(ctx); err != nil {
				return err
			}
			visible := recipes.Visible(category)
			if len(visible) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No recipes in %s\n", category.Label())
				return nil
			}
			rows := make([][]string, 0, len(visible))
			for _, r := range visible {
				fav := ""
				if r.IsFavorite {
					fav = "★"
				}
				rows = append(rows, []string{
					strconv.FormatInt(r.ID, 10), fav, r.Title, r.Category.Label(),
					strconv.FormatFloat(r.Calories, 'f', 0, 64), strconv.Itoa(r.PrepTime),
				})
			}
			return view.Table(cmd.OutOrStdout(), []string{"ID", "FAV", "TITLE", "CATEGORY", "KCAL", "MIN"}, rows)
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			r, err := e.client.Recipe(ctx, id)
			if err != nil {
				return err
			}
			printRecipe(cmd.OutOrStdout(), r)
			return nil
		})
	},
}

func printRecipe(w io.Writer, r model.Recipe) {
	title := r.Title
	if r.IsFavorite {
		title = "★ " + title
	}
	fmt.Fprintln(w, title)
	if r.Description != "" {
		fmt.Fprintln(w, view.StripMarkup(r.Description))
	}
	var meta []string
	if r.Category != "" {
		meta = append(meta, r.Category.Label())
	}
	if r.PrepTime > 0 {
		meta = append(meta, fmt.Sprintf("%d min", r.PrepTime))
	}
	if r.Calories > 0 {
		meta = append(meta, kcal(r.Calories))
	}
	if r.PreparationMethod != "" {
		meta = append(meta, r.PreparationMethod)
	}
	if len(meta) > 0 {
		fmt.Fprintln(w, strings.Join(meta, " · "))
	}
	if len(r.Ingredients) > 0 {
		fmt.Fprintln(w, "\nIngredients:")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(w, "- %s: %s %s", ing.Name, strconv.FormatFloat(ing.Quantity, 'f', -1, 64), ing.Unit)
			if ing.Calories > 0 {
				fmt.Fprintf(w, " (%s)", kcal(ing.Calories))
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, "\nInstructions:")
	fmt.Fprintln(w, view.StripMarkup(r.Instructions))
}

var (
	recipeTitle        string
	recipeDescription  string
	recipeInstructions string
	recipeCategory     string
	recipeMethod       string
	recipePrep         int
	recipeCalories     float64
	recipeIngredients  []string
	recipeAutoCalories bool
)

func addRecipeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&recipeTitle, "title", "", "Recipe title")
	f.StringVar(&recipeDescription, "description", "", "Short description")
	f.StringVar(&recipeInstructions, "instructions", "", "Preparation steps")
	f.StringVar(&recipeCategory, "category", "", "almoco, jantar, lanche, doce or salgado")
	f.StringVar(&recipeMethod, "method", "", "Preparation method, e.g. forno")
	f.IntVar(&recipePrep, "prep", 0, "Preparation time in minutes")
	f.Float64Var(&recipeCalories, "calories", 0, "Total calories; defaults to the ingredient sum")
	f.StringArrayVar(&recipeIngredients, "ingredient", nil, "Ingredient as name:quantity:unit[:calories] (repeatable)")
	f.BoolVar(&recipeAutoCalories, "auto-calories", false, "Estimate ingredient calories with the AI before saving")
}

// applyRecipeFlags overlays the flags the user set onto r.
func applyRecipeFlags(ctx context.Context, cmd *cobra.Command, recipes *screen.Recipes, r *model.Recipe) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		r.Title = strings.TrimSpace(recipeTitle)
	}
	if flags.Changed("description") {
		r.Description = strings.TrimSpace(recipeDescription)
	}
	if flags.Changed("instructions") {
		r.Instructions = strings.TrimSpace(recipeInstructions)
	}
	if flags.Changed("category") {
		c, err := model.ParseCategory(recipeCategory)
		if err != nil {
			return err
		}
		if c == model.CategoryAll {
			c = ""
		}
		r.Category = c
	}
	if flags.Changed("method") {
		r.PreparationMethod = strings.TrimSpace(recipeMethod)
	}
	if flags.Changed("prep") {
		r.PrepTime = recipePrep
	}
	if flags.Changed("ingredient") {
		ings, err := parseIngredients(recipeIngredients)
		if err != nil {
			return err
		}
		r.Ingredients = ings
	}
	if recipeAutoCalories && len(r.Ingredients) > 0 {
		ings, err := recipes.CalculateIngredients(ctx, r.Ingredients)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		r.Ingredients = ings
	}
	var manual *float64
	if flags.Changed("calories") {
		manual = &recipeCalories
	}
	if manual != nil || flags.Changed("ingredient") || recipeAutoCalories {
		r.Calories = view.RecipeCalories(r.Ingredients, manual)
	}
	return r.Validate()
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			recipes := screen.NewRecipes(e.client, e.log)
			var r model.Recipe
			if err := applyRecipeFlags(ctx, cmd, recipes, &r); err != nil {
				return err
			}
			created, err := recipes.Create(ctx, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added recipe %d %q (%s)\n", created.ID, created.Title, kcal(created.Calories))
			return nil
		})
	},
}

var recipeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a recipe; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			recipes := screen.NewRecipes(e.client, e.log)
			if err := recipes.Load(ctx); err != nil {
				return err
			}
			r, ok := recipes.Get(id)
			if !ok {
				return fmt.Errorf("recipe %d not found", id)
			}
			if err := applyRecipeFlags(ctx, cmd, recipes, &r); err != nil {
				return err
			}
			saved, err := recipes.Update(ctx, id, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %d %q\n", saved.ID, saved.Title)
			return nil
		})
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			recipes := screen.NewRecipes(e.client, e.log)
			if err := recipes.Load(ctx); err != nil {
				return err
			}
			if err := recipes.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %d\n", id)
			return nil
		})
	},
}

var recipeFavCmd = &cobra.Command{
	Use:   "fav <id>",
	Short: "Toggle a recipe's favourite mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			recipes := screen.NewRecipes(e.client, e.log)
			if err := recipes.Load(ctx); err != nil {
				return err
			}
			r, err := recipes.ToggleFavorite(ctx, id)
			if err != nil {
				return err
			}
			state := "removed from"
			if r.IsFavorite {
				state = "added to"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q %s favourites\n", r.Title, state)
			return nil
		})
	},
}

var recipeCalcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Estimate calories for a list of ingredients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ings, err := parseIngredients(recipeIngredients)
		if err != nil {
			return err
		}
		if len(ings) == 0 {
			return fmt.Errorf("pass at least one --ingredient")
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			out, calcErr := screen.NewRecipes(e.client, e.log).CalculateIngredients(ctx, ings)
			rows := make([][]string, 0, len(out))
			for _, ing := range out {
				rows = append(rows, []string{ing.Name, strconv.FormatFloat(ing.Quantity, 'f', -1, 64) + " " + ing.Unit, kcal(ing.Calories)})
			}
			if err := view.Table(cmd.OutOrStdout(), []string{"INGREDIENT", "QTY", "KCAL"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %s\n", kcal(view.RecipeCalories(out, nil)))
			return calcErr
		})
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeListCmd, recipeShowCmd, recipeAddCmd, recipeUpdateCmd, recipeDeleteCmd, recipeFavCmd, recipeCalcCmd)

	recipeListCmd.Flags().StringVar(&recipeListCategory, "category", "all", "Filter by category")
	addRecipeFlags(recipeAddCmd)
	addRecipeFlags(recipeUpdateCmd)
	recipeCalcCmd.Flags().StringArrayVar(&recipeIngredients, "ingredient", nil, "Ingredient as name:quantity:unit (repeatable)")
}
