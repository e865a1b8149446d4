package apitest

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saadjs/nutri-cli/internal/model"
)

var activityFactor = map[model.ActivityLevel]float64{
	model.ActivitySedentary:        1.2,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityVeryActive:       1.725,
	model.ActivitySuperActive:      1.9,
}

// dailyTarget is Mifflin-St Jeor times the activity factor, adjusted for
// the goal.
func dailyTarget(p model.Profile) int {
	bmr := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	if p.Gender == model.GenderFemale {
		bmr -= 161
	} else {
		bmr += 5
	}
	kcal := bmr * activityFactor[p.ActivityLevel]
	switch p.Goal {
	case model.GoalLoseWeight:
		kcal -= 500
	case model.GoalGainMuscle:
		kcal += 300
	}
	return int(math.Round(kcal))
}

var weekdays = []string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado", "Domingo"}

// HoldPlans blocks generate-plan requests until the returned func is called.
func (s *Server) HoldPlans() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.planGate = gate
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.planGate = nil
		s.mu.Unlock()
		close(gate)
	}
}

// PlanCalls reports how many generate-plan requests reached the handler.
func (s *Server) PlanCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.planCalls
}

func (s *Server) generatePlan(c *gin.Context) {
	var in struct {
		Days int `json:"days"`
	}
	_ = c.ShouldBindJSON(&in)
	if in.Days == 0 {
		in.Days = 1
	}

	s.mu.Lock()
	s.planCalls++
	gate := s.planGate
	p, ok := s.profiles[userID(c)]
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if !ok {
		detail(c, http.StatusBadRequest, "Você precisa criar um perfil nutricional antes.")
		return
	}

	target := dailyTarget(p)
	days := make([]gin.H, 0, in.Days)
	for i := 0; i < in.Days; i++ {
		kcal := target + (i%3-1)*50
		days = append(days, gin.H{
			"day":             weekdays[i%len(weekdays)],
			"calories_target": kcal,
			"macros": gin.H{
				"protein": fmt.Sprintf("%dg", int(p.Weight*2)),
				"carbs":   fmt.Sprintf("%dg", kcal/2/4),
				"fats":    fmt.Sprintf("%dg", kcal/4/9),
			},
			"meals": []gin.H{
				{"name": "Café da Manhã", "suggestion": fmt.Sprintf("Ovos mexidos e aveia (dia %d)", i+1)},
				{"name": "Almoço", "suggestion": "Frango grelhado, arroz e salada"},
				{"name": "Jantar", "suggestion": "Peixe assado e legumes"},
			},
			"tip": "Beba **2 litros** de água por dia.",
		})
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (s *Server) recipeByIngredients(c *gin.Context) {
	var in struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || len(in.Ingredients) == 0 {
		detail(c, http.StatusUnprocessableEntity, "ingredients are required")
		return
	}
	ings := make([]gin.H, 0, len(in.Ingredients))
	for _, name := range in.Ingredients {
		ings = append(ings, gin.H{"name": name, "quantity": 100, "unit": "g", "calories": estimate(name, 100, "g")})
	}
	c.JSON(http.StatusOK, gin.H{
		"title":        "Omelete de " + strings.Join(in.Ingredients, " e "),
		"instructions": []string{"Bata os ingredientes.", "Leve à frigideira por 5 minutos."},
		"prep_time":    "15",
		"category":     "salgado",
		"ingredients":  ings,
	})
}

var kcalPer100g = map[string]float64{
	"arroz":   130,
	"frango":  165,
	"ovo":     155,
	"aveia":   389,
	"batata":  77,
	"carvão":  0,
	"azeite":  884,
	"tomate":  18,
	"feijão":  127,
	"banana":  89,
	"queijo":  402,
	"farinha": 364,
}

func estimate(name string, quantity float64, unit string) float64 {
	per100, ok := kcalPer100g[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		per100 = 100
	}
	grams := toGrams(quantity, unit)
	return math.Round(per100*grams) / 100
}

func (s *Server) calculateCalories(c *gin.Context) {
	var in struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" || in.Quantity <= 0 {
		detail(c, http.StatusUnprocessableEntity, "name and quantity are required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"calories": estimate(in.Name, in.Quantity, in.Unit)})
}

// planToShoppingList turns every meal suggestion into items, split on
// commas and " e ", without duplicates.
func (s *Server) planToShoppingList(c *gin.Context) {
	var plan model.Plan
	if err := c.ShouldBindJSON(&plan); err != nil || len(plan.Days) == 0 {
		detail(c, http.StatusUnprocessableEntity, "plan has no days")
		return
	}
	seen := map[string]bool{}
	items := make([]string, 0)
	for _, d := range plan.Days {
		for _, m := range d.Meals {
			for _, part := range strings.Split(strings.ReplaceAll(m.Suggestion, " e ", ","), ",") {
				part = strings.TrimSpace(part)
				if i := strings.Index(part, " ("); i >= 0 {
					part = part[:i]
				}
				key := strings.ToLower(part)
				if part == "" || seen[key] {
					continue
				}
				seen[key] = true
				items = append(items, part)
			}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	title := fmt.Sprintf("Plano de %d dia(s)", len(plan.Days))
	c.JSON(http.StatusOK, s.createListLocked(userID(c), title, items))
}
