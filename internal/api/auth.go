package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fridgechef/internal/apperr"
	"fridgechef/internal/auth"
	"fridgechef/internal/user"
)

const msgInvalidEmail = "올바른 이메일 형식이 아닙니다."

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name        *string           `json:"name"`
	Preferences *user.Preferences `json:"preferences"`
}

// AuthHandler serves account endpoints.
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req, auth.MsgRegisterMissing); err != nil {
		if failedRule(err, "Email") == "email" {
			err = apperr.Wrap(err, apperr.KindValidation, msgInvalidEmail)
		}
		respondError(c, err)
		return
	}

	session, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req, auth.MsgLoginMissing); err != nil {
		respondError(c, err)
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me returns the caller's profile including parsed preferences.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	u, err := h.svc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u.Profile()})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)

	var req profileRequest
	if err := bindJSON(c, &req, auth.MsgProfileFailed); err != nil {
		respondError(c, err)
		return
	}

	u, err := h.svc.UpdateProfile(c.Request.Context(), claims.UserID, auth.ProfileUpdate{
		Name:        req.Name,
		Preferences: req.Preferences,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u.Profile(), "message": auth.MsgProfileUpdated})
}
