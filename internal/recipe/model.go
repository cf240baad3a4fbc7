package recipe

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is used when a recipe is saved without a category.
const DefaultCategory = "기타"

// Ingredient is one line of a recipe's shopping list.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Recipe is a generated recipe. It has no identity until a user saves it.
type Recipe struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	CookingTime int          `json:"cookingTime"`
	Difficulty  string       `json:"difficulty"`
	Tips        string       `json:"tips,omitempty"`
}

// maxMinutes caps cookingTime.
const maxMinutes = 1_000_000_000

// UnmarshalJSON implements the json.Unmarshaler interface for Recipe.
// Absent lists decode as empty lists so a saved payload round-trips unchanged.
// cookingTime also accepts strings with a leading number, e.g. "15분".
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type Alias Recipe // Create an alias to avoid infinite recursion
	aux := struct {
		*Alias
		CookingTime json.RawMessage `json:"cookingTime"`
	}{Alias: (*Alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CookingTime != nil {
		r.CookingTime = minutes(aux.CookingTime)
	}
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	return nil
}

// minutes reads a cooking time given as a number or as text starting with
// digits. Anything else is 0.
func minutes(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(min(max(f, 0), maxMinutes))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	n := 0
	for _, c := range strings.TrimSpace(s) {
		if c < '0' || c > '9' {
			break
		}
		n = min(n*10+int(c-'0'), maxMinutes)
	}
	return n
}

// Value stores the recipe as a JSON document.
func (r Recipe) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan reads a recipe stored by Value.
func (r *Recipe) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into recipe", src)
	}
}

// SavedRecipe is a recipe bookmarked by a user. It is never modified after
// creation.
type SavedRecipe struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Recipe    Recipe    `json:"recipe" db:"recipe"`
	Memo      string    `json:"memo" db:"memo"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
