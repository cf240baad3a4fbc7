// Package api exposes the recipe and diary services over HTTP with gin.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fridgechef/internal/apperr"
	"fridgechef/internal/logging"
)

const msgInternal = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."

// respondError writes err as {"error": message}. Only the client-safe message
// leaves the server; the cause is logged.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal(msgInternal, err)
	}
	status := appErr.Kind.HTTPStatus()

	l := logging.FromContext(c.Request.Context())
	attrs := []any{
		slog.String("kind", appErr.Kind.String()),
		slog.Int("status", status),
	}
	if cause := appErr.Cause(); cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	if status >= http.StatusInternalServerError {
		l.Error(appErr.Message, attrs...)
	} else {
		l.Info(appErr.Message, attrs...)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message})
}

// bindJSON decodes the request body into dst. Any decoding or validation
// failure becomes a Validation error carrying msg; the failing fields are
// logged.
func bindJSON(c *gin.Context, dst any, msg string) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	l := logging.FromContext(c.Request.Context())
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			l.Debug("request field rejected",
				slog.String("field", fe.Field()),
				slog.String("rule", fe.Tag()),
			)
		}
	} else {
		l.Debug("request body rejected", slog.String("err", err.Error()))
	}
	return apperr.Wrap(err, apperr.KindValidation, msg)
}

// failedRule reports the first validation rule that rejected field, if any.
func failedRule(err error, field string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ""
	}
	for _, fe := range verrs {
		if fe.Field() == field {
			return fe.Tag()
		}
	}
	return ""
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
