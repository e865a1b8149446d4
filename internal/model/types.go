package model

import "time"

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
}

type NewUser struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"-"`
}

type Profile struct {
	ID            int64         `json:"id,omitempty"`
	UserID        int64         `json:"user_id,omitempty"`
	Age           int           `json:"age"`
	Weight        float64       `json:"weight"`
	Height        float64       `json:"height"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          Goal          `json:"goal"`
	DietType      DietType      `json:"diet_type,omitempty"`
	Allergies     string        `json:"allergies,omitempty"`
	FoodLikes     string        `json:"food_likes,omitempty"`
	FoodDislikes  string        `json:"food_dislikes,omitempty"`
}

type WeightEntry struct {
	ID     int64     `json:"id"`
	Weight float64   `json:"weight"`
	Date   time.Time `json:"date"`
}

type Ingredient struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
}

type Recipe struct {
	ID                int64        `json:"id,omitempty"`
	UserID            int64        `json:"user_id,omitempty"`
	Title             string       `json:"title"`
	Description       string       `json:"description,omitempty"`
	Instructions      string       `json:"instructions"`
	PrepTime          int          `json:"prep_time,omitempty"`
	Calories          float64      `json:"calories,omitempty"`
	PreparationMethod string       `json:"preparation_method,omitempty"`
	Category          Category     `json:"category,omitempty"`
	IsFavorite        bool         `json:"is_favorite"`
	Ingredients       []Ingredient `json:"ingredients,omitempty"`
}

// Clone copies the recipe including its ingredient slice.
func (r Recipe) Clone() Recipe {
	if r.Ingredients != nil {
		r.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	}
	return r
}

type Macros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fats    string `json:"fats"`
}

type Meal struct {
	Name       string `json:"name"`
	Suggestion string `json:"suggestion"`
}

type Day struct {
	Day            string `json:"day"`
	CaloriesTarget int    `json:"calories_target"`
	Macros         Macros `json:"macros"`
	Meals          []Meal `json:"meals"`
	Tip            string `json:"tip"`
}

type Plan struct {
	Days []Day `json:"days"`
}

type ShoppingItem struct {
	ID      int64  `json:"id"`
	ListID  int64  `json:"list_id,omitempty"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type ShoppingList struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []ShoppingItem `json:"items"`
}

// Clone copies the list including its item slice.
func (l ShoppingList) Clone() ShoppingList {
	l.Items = append([]ShoppingItem{}, l.Items...)
	return l
}
