package recipe

import (
	"context"
	"errors"
	"strings"

	"fridgechef/internal/apperr"
)

const (
	MsgRecipeRequired = "레시피 정보가 필요합니다."
	MsgSaved          = "레시피가 저장되었습니다."
	MsgSaveFailed     = "레시피 저장 중 오류가 발생했습니다."
	MsgListFailed     = "레시피 조회 중 오류가 발생했습니다."
	MsgNotFound       = "레시피를 찾을 수 없습니다."
	MsgDeleted        = "레시피가 삭제되었습니다."
	MsgDeleteFailed   = "레시피 삭제 중 오류가 발생했습니다."
)

// Book is a user's collection of saved recipes.
type Book struct {
	store Store
}

func NewBook(store Store) *Book {
	return &Book{store: store}
}

// Save bookmarks r for userID. An empty category becomes DefaultCategory.
func (b *Book) Save(ctx context.Context, userID int64, r *Recipe, memo, category string) (int64, error) {
	if r == nil || strings.TrimSpace(r.Name) == "" {
		return 0, apperr.Validation(MsgRecipeRequired)
	}
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}

	id, err := b.store.Save(ctx, &SavedRecipe{
		UserID:   userID,
		Recipe:   *r,
		Memo:     memo,
		Category: category,
	})
	if err != nil {
		return 0, apperr.Internal(MsgSaveFailed, err)
	}
	return id, nil
}

// List returns userID's saved recipes, newest first.
func (b *Book) List(ctx context.Context, userID int64) ([]*SavedRecipe, error) {
	saved, err := b.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(MsgListFailed, err)
	}
	return saved, nil
}

// Delete removes a saved recipe. Recipes of other users are reported as not
// found.
func (b *Book) Delete(ctx context.Context, userID, id int64) error {
	err := b.store.Delete(ctx, userID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound(MsgNotFound)
	case err != nil:
		return apperr.Internal(MsgDeleteFailed, err)
	}
	return nil
}
