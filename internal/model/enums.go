package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var genderLabels = map[Gender]string{
	GenderMale:   "Masculino",
	GenderFemale: "Feminino",
}

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivitySuperActive      ActivityLevel = "super_active"
)

var activityLabels = map[ActivityLevel]string{
	ActivitySedentary:        "Sedentário (pouco ou nenhum exercício)",
	ActivityLightlyActive:    "Levemente ativo (1-3 dias/semana)",
	ActivityModeratelyActive: "Moderadamente ativo (3-5 dias/semana)",
	ActivityVeryActive:       "Muito ativo (6-7 dias/semana)",
	ActivitySuperActive:      "Super ativo (trabalho físico pesado/treino 2x dia)",
}

type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalMaintain   Goal = "maintain"
	GoalGainMuscle Goal = "gain_muscle"
)

var goalLabels = map[Goal]string{
	GoalLoseWeight: "Perder peso",
	GoalMaintain:   "Manter peso",
	GoalGainMuscle: "Ganhar massa muscular",
}

type DietType string

var dietLabels = map[DietType]string{
	"omnivore":             "Onívoro (sem restrições)",
	"flexitarian":          "Flexitariano (reduz carne)",
	"pescatarian":          "Pescetariano",
	"vegetarian_ovo_lacto": "Vegetariano (ovo-lacto)",
	"vegetarian_lacto":     "Vegetariano (lacto)",
	"vegetarian_ovo":       "Vegetariano (ovo)",
	"vegan":                "Vegano",
	"paleo":                "Paleolítica",
	"keto":                 "Cetogênica",
	"low_carb":             "Low carb",
}

// Category groups recipes. CategoryAll is the filter sentinel and is never
// stored on a recipe.
type Category string

const (
	CategoryAll     Category = "all"
	CategoryAlmoco  Category = "almoco"
	CategoryJantar  Category = "jantar"
	CategoryLanche  Category = "lanche"
	CategoryDoce    Category = "doce"
	CategorySalgado Category = "salgado"
)

var categoryLabels = map[Category]string{
	CategoryAll:     "Todas",
	CategoryAlmoco:  "Almoço",
	CategoryJantar:  "Jantar",
	CategoryLanche:  "Lanche",
	CategoryDoce:    "Doce",
	CategorySalgado: "Salgado",
}

func (g Gender) Label() string { return genderLabels[g] }
func (a ActivityLevel) Label() string { return activityLabels[a] }
func (g Goal) Label() string { return goalLabels[g] }
func (d DietType) Label() string { return dietLabels[d] }
func (c Category) Label() string { return categoryLabels[c] }

func (g Gender) Valid() bool {
	_, ok := genderLabels[g]
	return ok
}

func (a ActivityLevel) Valid() bool {
	_, ok := activityLabels[a]
	return ok
}

func (g Goal) Valid() bool {
	_, ok := goalLabels[g]
	return ok
}

func (d DietType) Valid() bool {
	_, ok := dietLabels[d]
	return ok
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func ParseGender(v string) (Gender, error) {
	g := Gender(normalize(v))
	if !g.Valid() {
		return "", fmt.Errorf("invalid gender %q (expected %s)", v, choices(genderLabels))
	}
	return g, nil
}

func ParseActivityLevel(v string) (ActivityLevel, error) {
	a := ActivityLevel(normalize(v))
	if !a.Valid() {
		return "", fmt.Errorf("invalid activity level %q (expected %s)", v, choices(activityLabels))
	}
	return a, nil
}

func ParseGoal(v string) (Goal, error) {
	g := Goal(normalize(v))
	if !g.Valid() {
		return "", fmt.Errorf("invalid goal %q (expected %s)", v, choices(goalLabels))
	}
	return g, nil
}

func ParseDietType(v string) (DietType, error) {
	d := DietType(normalize(v))
	if !d.Valid() {
		return "", fmt.Errorf("invalid diet type %q (expected %s)", v, choices(dietLabels))
	}
	return d, nil
}

// ParseCategory accepts any known category, including the "all" sentinel.
// An empty value means "all".
func ParseCategory(v string) (Category, error) {
	if strings.TrimSpace(v) == "" {
		return CategoryAll, nil
	}
	c := Category(normalize(v))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q (expected %s)", v, choices(categoryLabels))
	}
	return c, nil
}

// normalize lower-cases v, drops accents ("Almoço" -> "almoco") and maps
// hyphens to underscores.
func normalize(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), v); err == nil {
		v = folded
	}
	return strings.ReplaceAll(v, "-", "_")
}

func choices[K ~string](m map[K]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
