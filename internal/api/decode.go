package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/saadjs/nutri-cli/internal/model"
)

// AI payloads are produced by a language model behind the backend, so their
// shape is checked here instead of being trusted.

// flexText accepts a JSON string or number ("180g" or 180).
type flexText string

func (f *flexText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexText(strings.TrimSpace(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected text or number, got %s", b)
	}
	*f = flexText(strconv.FormatFloat(n, 'f', -1, 64) + "g")
	return nil
}

// flexNumber accepts a JSON number or a numeric string ("2500", "350 kcal").
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexNumber(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected number, got %s", b)
	}
	fields := strings.Fields(strings.ReplaceAll(s, ",", "."))
	if len(fields) == 0 {
		return fmt.Errorf("expected number, got empty string")
	}
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("expected number, got %q", s)
	}
	*f = flexNumber(n)
	return nil
}

type wireMacros struct {
	Protein flexText `json:"protein"`
	Carbs   flexText `json:"carbs"`
	Fats    flexText `json:"fats"`
}

type wireDay struct {
	Day            string       `json:"day"`
	CaloriesTarget *flexNumber  `json:"calories_target"`
	Macros         *wireMacros  `json:"macros"`
	Meals          []model.Meal `json:"meals"`
	Tip            string       `json:"tip"`
}

type wirePlan struct {
	Days []wireDay `json:"days"`
	wireDay
}

// stripFences removes a ```json ... ``` wrapper some models add.
func stripFences(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	s = bytes.TrimPrefix(s, []byte("```json"))
	s = bytes.TrimPrefix(s, []byte("```"))
	s = bytes.TrimSuffix(bytes.TrimSpace(s), []byte("```"))
	return bytes.TrimSpace(s)
}

// DecodePlan validates a generate-plan payload. It accepts either
// {"days": [...]} or a single day object. want is the requested length;
// zero skips the length check.
func DecodePlan(raw []byte, want int) (model.Plan, error) {
	const endpoint = "plan"
	var wp wirePlan
	if err := json.Unmarshal(stripFences(raw), &wp); err != nil {
		return model.Plan{}, &DecodeError{Endpoint: endpoint, Reason: err.Error()}
	}

	days := wp.Days
	if len(days) == 0 {
		if wp.CaloriesTarget == nil && wp.Macros == nil && len(wp.Meals) == 0 {
			return model.Plan{}, &DecodeError{Endpoint: endpoint, Reason: "no days in response"}
		}
		days = []wireDay{wp.wireDay}
	}
	if want > 0 && len(days) != want {
		return model.Plan{}, &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf("expected %d days, got %d", want, len(days))}
	}

	plan := model.Plan{Days: make([]model.Day, 0, len(days))}
	for i, d := range days {
		day, err := validateDay(i, d)
		if err != nil {
			return model.Plan{}, &DecodeError{Endpoint: endpoint, Reason: err.Error()}
		}
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

func validateDay(i int, d wireDay) (model.Day, error) {
	label := strings.TrimSpace(d.Day)
	if label == "" {
		label = fmt.Sprintf("Dia %d", i+1)
	}
	if d.CaloriesTarget == nil {
		return model.Day{}, fmt.Errorf("%s: missing calories_target", label)
	}
	kcal := float64(*d.CaloriesTarget)
	if math.IsNaN(kcal) || math.IsInf(kcal, 0) || kcal <= 0 {
		return model.Day{}, fmt.Errorf("%s: calories_target must be > 0", label)
	}
	if d.Macros == nil || d.Macros.Protein == "" || d.Macros.Carbs == "" || d.Macros.Fats == "" {
		return model.Day{}, fmt.Errorf("%s: macros must include protein, carbs and fats", label)
	}
	if len(d.Meals) == 0 {
		return model.Day{}, fmt.Errorf("%s: no meals", label)
	}
	meals := make([]model.Meal, 0, len(d.Meals))
	for j, m := range d.Meals {
		m.Name = strings.TrimSpace(m.Name)
		m.Suggestion = strings.TrimSpace(m.Suggestion)
		if m.Name == "" || m.Suggestion == "" {
			return model.Day{}, fmt.Errorf("%s: meal %d needs a name and a suggestion", label, j+1)
		}
		meals = append(meals, m)
	}
	return model.Day{
		Day:            label,
		CaloriesTarget: int(math.Round(kcal)),
		Macros: model.Macros{
			Protein: string(d.Macros.Protein),
			Carbs:   string(d.Macros.Carbs),
			Fats:    string(d.Macros.Fats),
		},
		Meals: meals,
		Tip:   strings.TrimSpace(d.Tip),
	}, nil
}

type wireIngredient struct {
	Name     string      `json:"name"`
	Quantity flexNumber  `json:"quantity"`
	Unit     string      `json:"unit"`
	Calories *flexNumber `json:"calories"`
}

type wireRecipe struct {
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Instructions      json.RawMessage  `json:"instructions"`
	PrepTime          *flexNumber      `json:"prep_time"`
	Calories          *flexNumber      `json:"calories"`
	PreparationMethod string           `json:"preparation_method"`
	Category          string           `json:"category"`
	Ingredients       []wireIngredient `json:"ingredients"`
}

// DecodeGeneratedRecipe validates a recipe-by-ingredients payload.
// Instructions may be a single string or a list of steps.
func DecodeGeneratedRecipe(raw []byte) (model.Recipe, error) {
	const endpoint = "recipe"
	var wr wireRecipe
	if err := json.Unmarshal(stripFences(raw), &wr); err != nil {
		return model.Recipe{}, &DecodeError{Endpoint: endpoint, Reason: err.Error()}
	}
	fail := func(format string, args ...any) (model.Recipe, error) {
		return model.Recipe{}, &DecodeError{Endpoint: endpoint, Reason: fmt.Sprintf(format, args...)}
	}

	r := model.Recipe{
		Title:             strings.TrimSpace(wr.Title),
		Description:       strings.TrimSpace(wr.Description),
		PreparationMethod: strings.TrimSpace(wr.PreparationMethod),
	}
	if r.Title == "" {
		return fail("missing title")
	}
	instructions, err := decodeInstructions(wr.Instructions)
	if err != nil {
		return fail("%v", err)
	}
	if instructions == "" {
		return fail("missing instructions")
	}
	r.Instructions = instructions

	if wr.PrepTime != nil {
		if *wr.PrepTime < 0 {
			return fail("prep_time must be >= 0")
		}
		r.PrepTime = int(math.Round(float64(*wr.PrepTime)))
	}
	if wr.Calories != nil {
		if *wr.Calories < 0 {
			return fail("calories must be >= 0")
		}
		r.Calories = float64(*wr.Calories)
	}
	if c := model.Category(strings.ToLower(strings.TrimSpace(wr.Category))); c.Valid() && c != model.CategoryAll {
		r.Category = c
	}
	for _, wi := range wr.Ingredients {
		ing := model.Ingredient{Name: strings.TrimSpace(wi.Name), Quantity: float64(wi.Quantity), Unit: strings.TrimSpace(wi.Unit)}
		if wi.Calories != nil {
			ing.Calories = float64(*wi.Calories)
		}
		if err := ing.Validate(); err != nil {
			return fail("%v", err)
		}
		r.Ingredients = append(r.Ingredients, ing)
	}
	return r, nil
}

func decodeInstructions(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var steps []string
	if err := json.Unmarshal(raw, &steps); err != nil {
		return "", fmt.Errorf("instructions must be text or a list of steps")
	}
	lines := make([]string, 0, len(steps))
	for _, step := range steps {
		if step = strings.TrimSpace(step); step != "" {
			lines = append(lines, fmt.Sprintf("%d. %s", len(lines)+1, step))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// DecodeCalories validates a calculate-calories payload.
func DecodeCalories(raw []byte) (float64, error) {
	const endpoint = "calories"
	var payload struct {
		Calories *flexNumber `json:"calories"`
	}
	if err := json.Unmarshal(stripFences(raw), &payload); err != nil {
		return 0, &DecodeError{Endpoint: endpoint, Reason: err.Error()}
	}
	if payload.Calories == nil {
		return 0, &DecodeError{Endpoint: endpoint, Reason: "missing calories"}
	}
	v := float64(*payload.Calories)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, &DecodeError{Endpoint: endpoint, Reason: "calories must be a non-negative number"}
	}
	return v, nil
}
