package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgechef/internal/recipe"
)

func TestIngredientListIgnoresThinkBlock(t *testing.T) {
	raw := "<think>The photo shows {\"ingredients\": [\"beer\"]} maybe</think>\n```json\n{\"ingredients\": [\"우유\", \"계란\"]}\n```"
	got := IngredientList(raw)
	assert.False(t, got.Fallback)
	assert.Equal(t, []string{"우유", "계란"}, got.Items)
}

func TestIngredientListCleansItems(t *testing.T) {
	got := IngredientList(`{"ingredients": [" 양파 ", "", 3, null, "양파", "대파"]}`)
	assert.False(t, got.Fallback)
	assert.Equal(t, []string{"양파", "대파"}, got.Items)
}

func TestIngredientListFallback(t *testing.T) {
	for _, raw := range []string{"no json here", "{not json}", ""} {
		got := IngredientList(raw)
		assert.True(t, got.Fallback, raw)
		assert.NotNil(t, got.Items)
		assert.Empty(t, got.Items)
		assert.Equal(t, raw, got.Raw)
	}
}

func TestIngredientListMissingKey(t *testing.T) {
	got := IngredientList(`{"items": ["egg"]}`)
	assert.False(t, got.Fallback)
	assert.Empty(t, got.Items)
}

func TestRecipeList(t *testing.T) {
	raw := `여기 레시피입니다:
{"recipes": [
  {"name": "계란볶음밥", "ingredients": [{"name": "밥", "amount": "1공기"}, "계란", {"amount": "조금"}], "steps": ["볶는다", 2], "cookingTime": "15분", "difficulty": "쉬움", "tips": "센 불"},
  {"description": "이름이 없는 레시피"},
  "not an object",
  {"name": "된장국", "cookingTime": "금방"}
]}`
	got := RecipeList(raw, RecipeDefaults{CookingTime: 30, Difficulty: "보통"})
	assert.False(t, got.Fallback)
	require.Len(t, got.Items, 2)

	assert.Equal(t, recipe.Recipe{
		Name:        "계란볶음밥",
		Ingredients: []recipe.Ingredient{{Name: "밥", Amount: "1공기"}, {Name: "계란"}},
		Steps:       []string{"볶는다"},
		CookingTime: 15,
		Difficulty:  "쉬움",
		Tips:        "센 불",
	}, got.Items[0])

	soup := got.Items[1]
	assert.Equal(t, "된장국", soup.Name)
	assert.Equal(t, 30, soup.CookingTime)
	assert.Equal(t, "보통", soup.Difficulty)
	assert.NotNil(t, soup.Ingredients)
	assert.NotNil(t, soup.Steps)
}

func TestRecipeListFallback(t *testing.T) {
	for _, raw := range []string{
		"모르겠어요",
		`{"recipes": []}`,
		`{"recipes": [{"description": "nameless"}]}`,
		`{"recipes": "none"}`,
	} {
		got := RecipeList(raw, RecipeDefaults{})
		assert.True(t, got.Fallback, raw)
		assert.Empty(t, got.Items, raw)
	}
}

func TestDiaryAnalysisDefaults(t *testing.T) {
	got, fallback := DiaryAnalysis(`{"emotion": "설렘", "intensity": "8"}`)
	assert.False(t, fallback)
	assert.Equal(t, Analysis{
		Emotion:        "설렘",
		EmotionEmoji:   "💭",
		Intensity:      8,
		EmpathyMessage: "오늘 하루도 수고했어요.",
		Advice:         "내일은 더 좋은 하루가 될 거예요.",
		Affirmation:    "나는 충분히 잘하고 있어요.",
	}, got)
}

func TestDiaryAnalysisIntensity(t *testing.T) {
	tests := map[string]int{
		`{"intensity": 0}`:      5,
		`{"intensity": "0"}`:    5,
		`{"intensity": -3}`:     1,
		`{"intensity": 42}`:     10,
		`{"intensity": 1e300}`:  10,
		`{"intensity": "3/10"}`: 3,
		`{"intensity": "높음"}`:   5,
		`{}`:                    5,
	}
	for raw, want := range tests {
		got, fallback := DiaryAnalysis(raw)
		assert.False(t, fallback, raw)
		assert.Equal(t, want, got.Intensity, raw)
	}

	got, _ := DiaryAnalysis(`{"intensity": "99999999999999999999"}`)
	assert.Equal(t, 10, got.Intensity)
}

func TestDiaryAnalysisFallback(t *testing.T) {
	got, fallback := DiaryAnalysis("<think>{\"emotion\": \"hidden\"}</think> 분석할 수 없습니다")
	assert.True(t, fallback)
	assert.Equal(t, FallbackAnalysis, got)
}
