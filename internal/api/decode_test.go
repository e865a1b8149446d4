package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weekPlan = `{"days":[
 {"day":"Segunda","calories_target":2000,"macros":{"protein":"150g","carbs":"200g","fats":"60g"},"meals":[{"name":"Almoço","suggestion":"Frango"}],"tip":"a"},
 {"day":"Terça","calories_target":2010,"macros":{"protein":"150g","carbs":"200g","fats":"60g"},"meals":[{"name":"Almoço","suggestion":"Peixe"}],"tip":"b"},
 {"day":"Quarta","calories_target":2020,"macros":{"protein":"150g","carbs":"200g","fats":"60g"},"meals":[{"name":"Almoço","suggestion":"Ovos"}],"tip":"c"},
 {"day":"Quinta","calories_target":2030,"macros":{"protein":151,"carbs":"201g","fats":"61g"},"meals":[{"name":"Jantar","suggestion":"Sopa"}],"tip":"d"},
 {"day":"Sexta","calories_target":"2040","macros":{"protein":"150g","carbs":"200g","fats":"60g"},"meals":[{"name":"Almoço","suggestion":"Carne"}],"tip":"e"},
 {"day":"Sábado","calories_target":2050,"macros":{"protein":"150g","carbs":"200g","fats":"60g"},"meals":[{"name":"Almoço","suggestion":"Massa"}],"tip":"f"},
 {"day":"Domingo","calories_target":2060.4,"macros":{"protein":"150g","carbs":"200g","fats":"60g"},"meals":[{"name":"Almoço","suggestion":"Churrasco"}],"tip":"g"}
]}`

func TestDecodePlanWeek(t *testing.T) {
	t.Parallel()
	plan, err := DecodePlan([]byte(weekPlan), 7)
	require.NoError(t, err)
	require.Len(t, plan.Days, 7)
	assert.Equal(t, "Quinta", plan.Days[3].Day)
	assert.Equal(t, "151g", plan.Days[3].Macros.Protein)
	assert.Equal(t, 2040, plan.Days[4].CaloriesTarget)
	assert.Equal(t, 2060, plan.Days[6].CaloriesTarget)
}

func TestDecodePlanSingleDayObjectWithFences(t *testing.T) {
	t.Parallel()
	raw := "```json\n" + `{"calories_target":2500,"macros":{"protein":"200g","carbs":"300g","fats":"80g"},"meals":[{"name":"Café","suggestion":"Ovos"}],"tip":"Durma bem"}` + "\n```"
	plan, err := DecodePlan([]byte(raw), 1)
	require.NoError(t, err)
	require.Len(t, plan.Days, 1)
	assert.Equal(t, "Dia 1", plan.Days[0].Day)
	assert.Equal(t, 2500, plan.Days[0].CaloriesTarget)
}

func TestDecodePlanRejectsBadShapes(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"not json":        `hello`,
		"empty":           `{}`,
		"missing macros":  `{"days":[{"calories_target":2000,"meals":[{"name":"a","suggestion":"b"}]}]}`,
		"zero calories":   `{"days":[{"calories_target":0,"macros":{"protein":"1g","carbs":"1g","fats":"1g"},"meals":[{"name":"a","suggestion":"b"}]}]}`,
		"no meals":        `{"days":[{"calories_target":2000,"macros":{"protein":"1g","carbs":"1g","fats":"1g"},"meals":[]}]}`,
		"blank meal name": `{"days":[{"calories_target":2000,"macros":{"protein":"1g","carbs":"1g","fats":"1g"},"meals":[{"name":" ","suggestion":"b"}]}]}`,
	}
	for name, raw := range cases {
		_, err := DecodePlan([]byte(raw), 0)
		var de *DecodeError
		assert.True(t, errors.As(err, &de), "%s: expected DecodeError, got %v", name, err)
	}

	_, err := DecodePlan([]byte(weekPlan), 1)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Reason, "expected 1 days, got 7")
}

func TestDecodeGeneratedRecipe(t *testing.T) {
	t.Parallel()
	r, err := DecodeGeneratedRecipe([]byte(`{
  "title": " Omelete ",
  "instructions": ["Bata os ovos.", "", "Frite."],
  "prep_time": "10 min",
  "calories": 320,
  "category": "Salgado",
  "ingredients": [{"name":"Ovo","quantity":"2","unit":"und","calories":140}]
}`))
	require.NoError(t, err)
	assert.Equal(t, "Omelete", r.Title)
	assert.Equal(t, "1. Bata os ovos.\n2. Frite.", r.Instructions)
	assert.Equal(t, 10, r.PrepTime)
	assert.Equal(t, 320.0, r.Calories)
	assert.Equal(t, "salgado", string(r.Category))
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, 2.0, r.Ingredients[0].Quantity)

	for _, raw := range []string{
		`{"instructions":"x"}`,
		`{"title":"x"}`,
		`{"title":"x","instructions":"y","calories":-1}`,
		`{"title":"x","instructions":{"a":1}}`,
		`{"title":"x","instructions":"y","ingredients":[{"name":"ovo","quantity":0,"unit":"g"}]}`,
		`{"title":"x","instructions":"y","calories":"NaN"}`,
		`{"title":"x","instructions":"y","prep_time":"Inf"}`,
		`{"title":"x","instructions":"y","ingredients":[{"name":"ovo","quantity":"Infinity","unit":"und"}]}`,
		`{"title":"x","instructions":"y","ingredients":[{"name":"ovo","quantity":2,"unit":"und","calories":"-Inf kcal"}]}`,
	} {
		_, err := DecodeGeneratedRecipe([]byte(raw))
		var de *DecodeError
		assert.True(t, errors.As(err, &de), "payload %s", raw)
	}
}

func TestDecodeCalories(t *testing.T) {
	t.Parallel()
	v, err := DecodeCalories([]byte(`{"calories": 130.5}`))
	require.NoError(t, err)
	assert.Equal(t, 130.5, v)

	v, err = DecodeCalories([]byte(`{"calories": "88,2 kcal"}`))
	require.NoError(t, err)
	assert.InDelta(t, 88.2, v, 1e-9)

	for _, raw := range []string{`{}`, `{"calories": -3}`, `{"calories": "muito"}`, `[]`} {
		_, err := DecodeCalories([]byte(raw))
		assert.Error(t, err, raw)
	}
}
