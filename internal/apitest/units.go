package apitest

import "strings"

// gramsPerUnit converts units to grams. ml and l assume water density,
// household measures a dry ingredient, counts a medium-sized item.
var gramsPerUnit = map[string]float64{
	"mg": 0.001,
	"g":  1,
	"kg": 1000,

	"ml":     1,
	"l":      1000,
	"xícara": 120,
	"xicara": 120,
	"colher": 15,
	"cs":     15,
	"cc":     5,

	"und":     50,
	"un":      50,
	"unidade": 50,
}

// toGrams converts quantity in unit to grams. Unknown units are taken as
// grams, which is what the real estimator falls back to as well.
func toGrams(quantity float64, unit string) float64 {
	g, ok := gramsPerUnit[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return quantity
	}
	return quantity * g
}
