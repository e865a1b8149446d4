package model

import (
	"math"
	"testing"
)

func validProfile() Profile {
	return Profile{Age: 30, Weight: 80, Height: 180, Gender: GenderMale, ActivityLevel: ActivitySedentary, Goal: GoalMaintain}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()
	if err := validProfile().Validate(); err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}
	bad := []func(*Profile){
		func(p *Profile) { p.Age = 0 },
		func(p *Profile) { p.Age = 121 },
		func(p *Profile) { p.Weight = 0 },
		func(p *Profile) { p.Height = -1 },
		func(p *Profile) { p.Gender = "x" },
		func(p *Profile) { p.ActivityLevel = "couch" },
		func(p *Profile) { p.Goal = "bulk" },
		func(p *Profile) { p.DietType = "carnivore" },
	}
	for i, mutate := range bad {
		p := validProfile()
		mutate(&p)
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, p)
		}
	}
}

func TestNewUserValidateChecksConfirmationLocally(t *testing.T) {
	t.Parallel()
	u := NewUser{FullName: "Ana", Email: "ana@example.com", Password: "secret1", PasswordConfirm: "secret2"}
	if err := u.Validate(); err == nil || err.Error() != "passwords do not match" {
		t.Fatalf("expected mismatch error, got %v", err)
	}
	u.PasswordConfirm = u.Password
	if err := u.Validate(); err != nil {
		t.Fatalf("expected valid user, got %v", err)
	}
	u.Email = "nope"
	if err := u.Validate(); err == nil {
		t.Fatalf("expected invalid email to fail")
	}
}

func TestRecipeValidateRejectsAllSentinel(t *testing.T) {
	t.Parallel()
	r := Recipe{Title: "Bolo", Instructions: "Asse.", Category: CategoryAll}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected sentinel category to be rejected on a recipe")
	}
	r.Category = CategoryDoce
	r.Ingredients = []Ingredient{{Name: "Farinha", Quantity: 0, Unit: "g"}}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected zero quantity ingredient to fail")
	}
	r.Ingredients = []Ingredient{{Name: "Farinha", Quantity: math.Inf(1), Unit: "g"}}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected infinite quantity to fail")
	}
	r.Ingredients = []Ingredient{{Name: "Farinha", Quantity: 100, Unit: "g", Calories: math.NaN()}}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected NaN calories to fail")
	}
	r.Ingredients = nil
	r.Calories = math.NaN()
	if err := r.Validate(); err == nil {
		t.Fatalf("expected NaN recipe calories to fail")
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()
	c, err := ParseCategory("")
	if err != nil || c != CategoryAll {
		t.Fatalf("expected empty to mean all, got %q %v", c, err)
	}
	c, err = ParseCategory(" Jantar ")
	if err != nil || c != CategoryJantar {
		t.Fatalf("expected jantar, got %q %v", c, err)
	}
	c, err = ParseCategory("Almoço")
	if err != nil || c != CategoryAlmoco {
		t.Fatalf("expected accents to fold to almoco, got %q %v", c, err)
	}
	a, err := ParseActivityLevel("Very-Active")
	if err != nil || a != ActivityVeryActive {
		t.Fatalf("expected very_active, got %q %v", a, err)
	}
	if _, err := ParseCategory("brunch"); err == nil {
		t.Fatalf("expected unknown category to fail")
	}
}
