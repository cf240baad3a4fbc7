package kitchen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgechef/internal/apperr"
	"fridgechef/internal/llm"
)

type fakeModel struct {
	answer string
	err    error
	calls  []llm.Request
}

func (f *fakeModel) Complete(_ context.Context, req llm.Request) (string, error) {
	f.calls = append(f.calls, req)
	return f.answer, f.err
}

func TestRecognizeIngredients(t *testing.T) {
	model := &fakeModel{answer: "```json\n{\"ingredients\": [\"계란\", \" 우유 \", \"계란\"]}\n```"}
	a := NewAssistant(model, 4000)

	got, err := a.RecognizeIngredients(context.Background(), llm.Image{MimeType: "image/png", Data: []byte{1}})
	require.NoError(t, err)
	assert.False(t, got.Fallback)
	assert.Equal(t, []string{"계란", "우유"}, got.Items)

	require.Len(t, model.calls, 1)
	require.NotNil(t, model.calls[0].Image)
	assert.Equal(t, "image/png", model.calls[0].Image.MimeType)
}

func TestRecognizeIngredientsFallbackKeepsRaw(t *testing.T) {
	model := &fakeModel{answer: "사진이 흐려서 잘 모르겠어요"}
	got, err := NewAssistant(model, 0).RecognizeIngredients(context.Background(), llm.Image{Data: []byte{1}})
	require.NoError(t, err)
	assert.True(t, got.Fallback)
	assert.Empty(t, got.Items)
	assert.Equal(t, "사진이 흐려서 잘 모르겠어요", got.Raw)
}

func TestRecognizeIngredientsUpstreamError(t *testing.T) {
	model := &fakeModel{err: errors.New("connection reset")}
	_, err := NewAssistant(model, 0).RecognizeIngredients(context.Background(), llm.Image{Data: []byte{1}})
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindUpstream, appErr.Kind)
	assert.Equal(t, MsgAnalyzeFailed, appErr.Message)
}

func TestGenerateRecipesRequiresIngredients(t *testing.T) {
	model := &fakeModel{}
	_, err := NewAssistant(model, 0).GenerateRecipes(context.Background(), Request{Ingredients: []string{" ", ""}})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, model.calls)
}

func TestGenerateRecipesAppliesDefaults(t *testing.T) {
	model := &fakeModel{answer: `<think>{"draft": true}</think>
{"recipes": [{"name": "계란찜", "steps": ["섞는다", "찐다"]}, {"description": "이름 없음"}]}`}
	a := NewAssistant(model, 4000)

	got, err := a.GenerateRecipes(context.Background(), Request{Ingredients: []string{"계란", "파"}})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)

	r := got.Items[0]
	assert.Equal(t, "계란찜", r.Name)
	assert.Equal(t, DefaultCookingTime, r.CookingTime)
	assert.Equal(t, DefaultDifficulty, r.Difficulty)
	assert.Empty(t, r.Ingredients)

	require.Len(t, model.calls, 1)
	call := model.calls[0]
	assert.Nil(t, call.Image)
	assert.Equal(t, 4000, call.MaxTokens)
	assert.Contains(t, call.Prompt, "재료: 계란, 파")
	assert.Contains(t, call.Prompt, "아무 요리")
	assert.Contains(t, call.Prompt, "2인분")
}

func TestGenerateRecipesFallback(t *testing.T) {
	model := &fakeModel{answer: `{"recipes": []}`}
	got, err := NewAssistant(model, 0).GenerateRecipes(context.Background(), Request{
		Ingredients: []string{"두부"},
		Cuisine:     "한식",
		CookingTime: 15,
	})
	require.NoError(t, err)
	assert.True(t, got.Fallback)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Contains(t, model.calls[0].Prompt, "한식 요리")
	assert.Contains(t, model.calls[0].Prompt, "15분 이내")
}
