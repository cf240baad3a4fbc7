package normalize

// Ingredients is the recognition result for a fridge photo.
type Ingredients struct {
	Items    []string
	Fallback bool
	Raw      string
}

// IngredientList reads {"ingredients": [...]} from raw. Names are trimmed and
// de-duplicated in order of first appearance.
func IngredientList(raw string) Ingredients {
	obj, err := Object(raw)
	if err != nil {
		return Ingredients{Items: []string{}, Fallback: true, Raw: raw}
	}

	seen := make(map[string]bool)
	items := make([]string, 0)
	for _, name := range stringList(obj["ingredients"]) {
		if seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, name)
	}
	return Ingredients{Items: items, Raw: raw}
}
