package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fridgechef/internal/apperr"
	"fridgechef/internal/imageutil"
	"fridgechef/internal/kitchen"
	"fridgechef/internal/llm"
)

const (
	msgImageTooLarge   = "이미지 크기는 %s 이하여야 합니다."
	msgImageType       = "JPEG, PNG, WEBP 이미지만 업로드할 수 있습니다."
	msgImageUnreadable = "이미지 파일을 읽을 수 없습니다."
)

// multipartOverhead is the room allowed for form boundaries and headers on
// top of the image itself.
const multipartOverhead = 64 << 10

type generateRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
	Cuisine     string   `json:"cuisine"`
	Difficulty  string   `json:"difficulty"`
	CookingTime int      `json:"cookingTime" binding:"gte=0,lte=1440"`
	Servings    int      `json:"servings" binding:"gte=0,lte=100"`
}

// KitchenHandler serves ingredient recognition and recipe generation.
type KitchenHandler struct {
	assistant *kitchen.Assistant
	maxBytes  int64
}

func NewKitchenHandler(assistant *kitchen.Assistant, maxUploadBytes int64) *KitchenHandler {
	return &KitchenHandler{assistant: assistant, maxBytes: maxUploadBytes}
}

// AnalyzeImage recognizes ingredients in the uploaded "image" file. The
// upload is rejected before any model call unless it is an allowed image
// within the size limit.
func (h *KitchenHandler) AnalyzeImage(c *gin.Context) {
	img, err := h.readImage(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.assistant.RecognizeIngredients(c.Request.Context(), img)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"ingredients": result.Items}
	if result.Fallback {
		body["raw"] = result.Raw
	}
	c.JSON(http.StatusOK, body)
}

func (h *KitchenHandler) readImage(c *gin.Context) (llm.Image, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	file, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return llm.Image{}, h.tooLarge(err)
		}
		return llm.Image{}, apperr.Wrap(err, apperr.KindValidation, kitchen.MsgImageRequired)
	}

	if err := imageutil.CheckHeader(file.Size, h.maxBytes, file.Header.Get("Content-Type")); err != nil {
		if errors.Is(err, imageutil.ErrTooLarge) {
			return llm.Image{}, h.tooLarge(err)
		}
		return llm.Image{}, apperr.Wrap(err, apperr.KindValidation, msgImageType)
	}

	src, err := file.Open()
	if err != nil {
		return llm.Image{}, apperr.Wrap(err, apperr.KindValidation, msgImageUnreadable)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return llm.Image{}, apperr.Wrap(err, apperr.KindValidation, msgImageUnreadable)
	}

	mimeType, err := imageutil.Sniff(data)
	if err != nil {
		return llm.Image{}, apperr.Wrap(err, apperr.KindValidation, msgImageType)
	}
	return llm.Image{MimeType: mimeType, Data: imageutil.Downscale(data, mimeType)}, nil
}

func (h *KitchenHandler) tooLarge(err error) error {
	limit := fmt.Sprintf("%dKB", h.maxBytes>>10)
	if h.maxBytes >= 1<<20 {
		limit = fmt.Sprintf("%dMB", h.maxBytes>>20)
	}
	return apperr.Wrap(err, apperr.KindValidation, fmt.Sprintf(msgImageTooLarge, limit))
}

// GenerateRecipe suggests recipes for the selected ingredients. An unusable
// model answer is reported in "error" alongside an empty list with 200.
func (h *KitchenHandler) GenerateRecipe(c *gin.Context) {
	var req generateRequest
	if err := bindJSON(c, &req, kitchen.MsgIngredientsRequired); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.assistant.GenerateRecipes(c.Request.Context(), kitchen.Request{
		Ingredients: req.Ingredients,
		Cuisine:     req.Cuisine,
		Difficulty:  req.Difficulty,
		CookingTime: req.CookingTime,
		Servings:    req.Servings,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"recipes": result.Items}
	if result.Fallback {
		body["error"] = kitchen.MsgParseFailed
	}
	c.JSON(http.StatusOK, body)
}
