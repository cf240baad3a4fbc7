package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fridgechef/internal/apperr"
	"fridgechef/internal/auth"
	"fridgechef/internal/recipe"
)

type saveRequest struct {
	Recipe   *recipe.Recipe `json:"recipe" binding:"required"`
	Memo     string         `json:"memo"`
	Category string         `json:"category"`
}

// RecipeHandler serves the saved recipe collection of the calling user.
type RecipeHandler struct {
	book *recipe.Book
}

func NewRecipeHandler(book *recipe.Book) *RecipeHandler {
	return &RecipeHandler{book: book}
}

func (h *RecipeHandler) Save(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)

	var req saveRequest
	if err := bindJSON(c, &req, recipe.MsgRecipeRequired); err != nil {
		respondError(c, err)
		return
	}

	id, err := h.book.Save(c.Request.Context(), claims.UserID, req.Recipe, req.Memo, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": recipe.MsgSaved})
}

func (h *RecipeHandler) List(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)

	saved, err := h.book.List(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": saved})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperr.Wrap(err, apperr.KindNotFound, recipe.MsgNotFound))
		return
	}

	if err := h.book.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": recipe.MsgDeleted})
}
