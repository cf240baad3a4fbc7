// Package kitchen turns fridge photos into ingredient lists and ingredient
// lists into recipe suggestions using a hosted language model.
package kitchen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fridgechef/internal/apperr"
	"fridgechef/internal/llm"
	"fridgechef/internal/logging"
	"fridgechef/internal/normalize"
	"fridgechef/internal/recipe"
)

const (
	MsgImageRequired       = "이미지를 업로드해주세요."
	MsgAnalyzeFailed       = "이미지 분석 중 오류가 발생했습니다."
	MsgIngredientsRequired = "재료를 선택해주세요."
	MsgGenerateFailed      = "레시피 생성 중 오류가 발생했습니다."
	MsgParseFailed         = "AI 응답을 파싱하지 못했습니다."
)

// Generation defaults for fields the caller leaves empty.
const (
	DefaultCuisine     = "아무"
	DefaultDifficulty  = "보통"
	DefaultCookingTime = 30
	DefaultServings    = 2
)

const ingredientsPrompt = `이 냉장고/식탁 사진에서 보이는 식재료들을 인식해주세요.
반드시 아래 JSON 형식으로만 응답해주세요. 다른 설명은 하지 마세요.
{"ingredients": ["재료1", "재료2", "재료3"]}`

const recipesPrompt = `다음 재료로 만들 수 있는 %s 요리 레시피를 3개 추천해주세요.

재료: %s
난이도: %s
조리시간: %d분 이내
인원: %d인분

반드시 아래 JSON 형식으로만 응답해주세요. 다른 설명은 하지 마세요.
{
  "recipes": [
    {
      "name": "요리명",
      "description": "한 줄 설명",
      "ingredients": [{"name": "재료명", "amount": "양"}],
      "steps": ["조리 단계 1", "조리 단계 2"],
      "cookingTime": 15,
      "difficulty": "쉬움",
      "tips": "조리 팁"
    }
  ]
}`

// Request describes a recipe generation. Zero values take the package
// defaults.
type Request struct {
	Ingredients []string
	Cuisine     string
	Difficulty  string
	CookingTime int
	Servings    int
}

func (r Request) withDefaults() Request {
	if strings.TrimSpace(r.Cuisine) == "" {
		r.Cuisine = DefaultCuisine
	}
	if strings.TrimSpace(r.Difficulty) == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.CookingTime <= 0 {
		r.CookingTime = DefaultCookingTime
	}
	if r.Servings <= 0 {
		r.Servings = DefaultServings
	}
	return r
}

// Assistant prompts the model for ingredient recognition and recipes.
type Assistant struct {
	model     llm.Client
	maxTokens int
}

// NewAssistant returns an Assistant that asks model for at most maxTokens
// per recipe answer.
func NewAssistant(model llm.Client, maxTokens int) *Assistant {
	return &Assistant{model: model, maxTokens: maxTokens}
}

// RecognizeIngredients lists the ingredients visible in img. A malformed
// answer yields an empty list with Fallback set.
func (a *Assistant) RecognizeIngredients(ctx context.Context, img llm.Image) (normalize.Ingredients, error) {
	if len(img.Data) == 0 {
		return normalize.Ingredients{}, apperr.Validation(MsgImageRequired)
	}

	raw, err := a.model.Complete(ctx, llm.Request{Prompt: ingredientsPrompt, Image: &img})
	if err != nil {
		return normalize.Ingredients{}, apperr.Upstream(MsgAnalyzeFailed, err)
	}

	result := normalize.IngredientList(raw)
	if result.Fallback {
		logging.FromContext(ctx).Warn("ingredient answer not parseable", slog.Int("raw_len", len(raw)))
	}
	return result, nil
}

// GenerateRecipes suggests recipes for req. Missing recipe fields are filled
// from the request; an unusable answer yields Fallback.
func (a *Assistant) GenerateRecipes(ctx context.Context, req Request) (normalize.Recipes, error) {
	ingredients := make([]string, 0, len(req.Ingredients))
	for _, name := range req.Ingredients {
		if name = strings.TrimSpace(name); name != "" {
			ingredients = append(ingredients, name)
		}
	}
	if len(ingredients) == 0 {
		return normalize.Recipes{}, apperr.Validation(MsgIngredientsRequired)
	}
	req = req.withDefaults()

	prompt := fmt.Sprintf(recipesPrompt, req.Cuisine, strings.Join(ingredients, ", "),
		req.Difficulty, req.CookingTime, req.Servings)

	raw, err := a.model.Complete(ctx, llm.Request{Prompt: prompt, MaxTokens: a.maxTokens})
	if err != nil {
		return normalize.Recipes{}, apperr.Upstream(MsgGenerateFailed, err)
	}

	result := normalize.RecipeList(raw, normalize.RecipeDefaults{
		CookingTime: req.CookingTime,
		Difficulty:  req.Difficulty,
	})
	if result.Fallback {
		logging.FromContext(ctx).Warn("recipe answer not parseable", slog.Int("raw_len", len(raw)))
		result.Items = []recipe.Recipe{}
	}
	return result, nil
}
