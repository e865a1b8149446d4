package model

import (
	"fmt"
	"math"
	"net/mail"
	"strings"
)

func (p Profile) Validate() error {
	if p.Age <= 0 || p.Age > 120 {
		return fmt.Errorf("age must be between 1 and 120")
	}
	if p.Weight <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if p.Height <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if !p.Gender.Valid() {
		return fmt.Errorf("invalid gender %q", p.Gender)
	}
	if !p.ActivityLevel.Valid() {
		return fmt.Errorf("invalid activity level %q", p.ActivityLevel)
	}
	if !p.Goal.Valid() {
		return fmt.Errorf("invalid goal %q", p.Goal)
	}
	if p.DietType != "" && !p.DietType.Valid() {
		return fmt.Errorf("invalid diet type %q", p.DietType)
	}
	return nil
}

func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if !finite(i.Quantity) || !finite(i.Calories) {
		return fmt.Errorf("ingredient %q has a non-numeric value", i.Name)
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("ingredient %q quantity must be > 0", i.Name)
	}
	if strings.TrimSpace(i.Unit) == "" {
		return fmt.Errorf("ingredient %q unit is required", i.Name)
	}
	if i.Calories < 0 {
		return fmt.Errorf("ingredient %q calories must be >= 0", i.Name)
	}
	return nil
}

func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("recipe title is required")
	}
	if strings.TrimSpace(r.Instructions) == "" {
		return fmt.Errorf("recipe instructions are required")
	}
	if r.PrepTime < 0 {
		return fmt.Errorf("prep time must be >= 0")
	}
	if !finite(r.Calories) || r.Calories < 0 {
		return fmt.Errorf("calories must be >= 0")
	}
	if r.Category == CategoryAll || (r.Category != "" && !r.Category.Valid()) {
		return fmt.Errorf("invalid recipe category %q", r.Category)
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate runs the checks the registration form does before submitting.
func (u NewUser) Validate() error {
	if strings.TrimSpace(u.FullName) == "" {
		return fmt.Errorf("full name is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(u.Email)); err != nil {
		return fmt.Errorf("invalid email %q", u.Email)
	}
	if len(u.Password) < 6 {
		return fmt.Errorf("password must have at least 6 characters")
	}
	if u.Password != u.PasswordConfirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
