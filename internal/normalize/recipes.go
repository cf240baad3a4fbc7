package normalize

import (
	"encoding/json"

	"fridgechef/internal/recipe"
)

// RecipeDefaults are applied to recipes that omit a field.
type RecipeDefaults struct {
	CookingTime int
	Difficulty  string
}

// Recipes is the parsed generation result.
type Recipes struct {
	Items    []recipe.Recipe
	Fallback bool
}

// RecipeList reads {"recipes": [...]} from raw. Entries without a name are
// dropped; an empty result counts as a fallback.
func RecipeList(raw string, def RecipeDefaults) Recipes {
	obj, err := Object(raw)
	if err != nil {
		return Recipes{Items: []recipe.Recipe{}, Fallback: true}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(obj["recipes"], &entries); err != nil {
		return Recipes{Items: []recipe.Recipe{}, Fallback: true}
	}

	items := make([]recipe.Recipe, 0, len(entries))
	for _, entry := range entries {
		var e map[string]json.RawMessage
		if err := json.Unmarshal(entry, &e); err != nil {
			continue
		}
		if r, ok := recipeFrom(e, def); ok {
			items = append(items, r)
		}
	}
	return Recipes{Items: items, Fallback: len(items) == 0}
}

func recipeFrom(e map[string]json.RawMessage, def RecipeDefaults) (recipe.Recipe, bool) {
	name := stringField(e["name"])
	if name == "" {
		return recipe.Recipe{}, false
	}

	r := recipe.Recipe{
		Name:        name,
		Description: stringField(e["description"]),
		Ingredients: ingredientsFrom(e["ingredients"]),
		Steps:       stringList(e["steps"]),
		CookingTime: def.CookingTime,
		Difficulty:  stringField(e["difficulty"]),
		Tips:        stringField(e["tips"]),
	}
	if minutes, ok := intField(e["cookingTime"]); ok && minutes > 0 {
		r.CookingTime = minutes
	}
	if r.Difficulty == "" {
		r.Difficulty = def.Difficulty
	}
	return r, true
}

// ingredientsFrom accepts [{"name":..,"amount":..}] as well as plain strings.
func ingredientsFrom(raw json.RawMessage) []recipe.Ingredient {
	var items []json.RawMessage
	out := make([]recipe.Ingredient, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		if s := stringField(item); s != "" {
			out = append(out, recipe.Ingredient{Name: s})
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		name := stringField(obj["name"])
		if name == "" {
			continue
		}
		out = append(out, recipe.Ingredient{Name: name, Amount: stringField(obj["amount"])})
	}
	return out
}
