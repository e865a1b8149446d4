package nutri

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/screen"
	"github.com/saadjs/nutri-cli/internal/view"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your nutrition profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and recent weight trend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			prof := screen.NewProfile(e.client, e.log)
			if err := prof.Load(ctx); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p, ok := prof.Current()
			if !ok {
				fmt.Fprintln(out, "No profile yet: run `nutri profile set`.")
				return nil
			}
			rows := [][]string{
				{"Age", fmt.Sprintf("%d", p.Age)},
				{"Weight", fmt.Sprintf("%.1f kg", p.Weight)},
				{"Height", fmt.Sprintf("%.0f cm", p.Height)},
				{"Gender", p.Gender.Label()},
				{"Activity", p.ActivityLevel.Label()},
				{"Goal", p.Goal.Label()},
			}
			if p.DietType != "" {
				rows = append(rows, []string{"Diet", p.DietType.Label()})
			}
			for _, f := range [][2]string{{"Allergies", p.Allergies}, {"Likes", p.FoodLikes}, {"Dislikes", p.FoodDislikes}} {
				if f[1] != "" {
					rows = append(rows, []string{f[0], f[1]})
				}
			}
			if series := prof.Series(); len(series) > 0 {
				rows = append(rows, []string{"Trend", fmt.Sprintf("%s %+.1f kg", view.Sparkline(series), view.Delta(series))})
			}
			return view.Table(out, nil, rows)
		})
	},
}

var (
	profAge       int
	profWeight    float64
	profHeight    float64
	profGender    string
	profActivity  string
	profGoal      string
	profDiet      string
	profAllergies string
	profLikes     string
	profDislikes  string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update your profile; the weight is also logged",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			prof := screen.NewProfile(e.client, e.log)
			if err := prof.Load(ctx); err != nil {
				return err
			}
			p, _ := prof.Current()
			if err := applyProfileFlags(cmd, &p); err != nil {
				return err
			}
			saved, err := prof.Save(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile (%d years, %.1f kg, %s)\n", saved.Age, saved.Weight, saved.Goal.Label())
			return nil
		})
	},
}

func applyProfileFlags(cmd *cobra.Command, p *model.Profile) error {
	flags := cmd.Flags()
	if flags.Changed("age") {
		p.Age = profAge
	}
	if flags.Changed("weight") {
		p.Weight = profWeight
	}
	if flags.Changed("height") {
		p.Height = profHeight
	}
	if flags.Changed("gender") {
		g, err := model.ParseGender(profGender)
		if err != nil {
			return err
		}
		p.Gender = g
	}
	if flags.Changed("activity") {
		a, err := model.ParseActivityLevel(profActivity)
		if err != nil {
			return err
		}
		p.ActivityLevel = a
	}
	if flags.Changed("goal") {
		g, err := model.ParseGoal(profGoal)
		if err != nil {
			return err
		}
		p.Goal = g
	}
	if flags.Changed("diet") {
		p.DietType = ""
		if strings.TrimSpace(profDiet) != "" {
			d, err := model.ParseDietType(profDiet)
			if err != nil {
				return err
			}
			p.DietType = d
		}
	}
	if flags.Changed("allergies") {
		p.Allergies = strings.TrimSpace(profAllergies)
	}
	if flags.Changed("likes") {
		p.FoodLikes = strings.TrimSpace(profLikes)
	}
	if flags.Changed("dislikes") {
		p.FoodDislikes = strings.TrimSpace(profDislikes)
	}
	return p.Validate()
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	f := profileSetCmd.Flags()
	f.IntVar(&profAge, "age", 0, "Age in years")
	f.Float64Var(&profWeight, "weight", 0, "Weight in kg")
	f.Float64Var(&profHeight, "height", 0, "Height in cm")
	f.StringVar(&profGender, "gender", "", "male or female")
	f.StringVar(&profActivity, "activity", "", "sedentary, lightly_active, moderately_active, very_active, super_active")
	f.StringVar(&profGoal, "goal", "", "lose_weight, maintain, gain_muscle")
	f.StringVar(&profDiet, "diet", "", "Diet type, e.g. vegan or keto (empty clears it)")
	f.StringVar(&profAllergies, "allergies", "", "Allergies and intolerances")
	f.StringVar(&profLikes, "likes", "", "Foods you like")
	f.StringVar(&profDislikes, "dislikes", "", "Foods you avoid")
}
