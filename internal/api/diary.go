package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fridgechef/internal/diary"
)

type analyzeRequest struct {
	Entry string `json:"entry"`
}

type DiaryHandler struct {
	analyzer *diary.Analyzer
}

func NewDiaryHandler(analyzer *diary.Analyzer) *DiaryHandler {
	return &DiaryHandler{analyzer: analyzer}
}

func (h *DiaryHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := bindJSON(c, &req, diary.MsgEntryRequired); err != nil {
		respondError(c, err)
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), req.Entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}
