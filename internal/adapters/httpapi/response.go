package httpapi

import (
	"net/http"

	"board/internal/adapters/httpapi/middleware"
	"board/internal/core/apperror"

	"github.com/gin-gonic/gin"
)

const (
	successCode    = "SU"
	successMessage = "Success"
)

var statusByKind = map[apperror.Kind]int{
	apperror.KindUserNotFound:       http.StatusNotFound,
	apperror.KindCategoryNotFound:   http.StatusNotFound,
	apperror.KindPostNotFound:       http.StatusNotFound,
	apperror.KindCommentNotFound:    http.StatusNotFound,
	apperror.KindNoPermission:       http.StatusForbidden,
	apperror.KindValidation:         http.StatusBadRequest,
	apperror.KindUnauthorized:       http.StatusUnauthorized,
	apperror.KindInvalidCredentials: http.StatusUnauthorized,
	apperror.KindDuplicateUser:      http.StatusConflict,
	apperror.KindStorage:            http.StatusInternalServerError,
}

// respond writes the success envelope with payload merged in.
func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"code": successCode, "message": successMessage}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"code": kind, "message": apperror.MessageOf(err)})
}

func badRequest(c *gin.Context) {
	respondError(c, apperror.Validation(""))
}

// caller returns the authenticated username set by the JWT middleware.
func caller(c *gin.Context) (string, bool) {
	username := c.GetString(middleware.UsernameKey)
	if username == "" {
		respondError(c, apperror.New(apperror.KindUnauthorized, ""))
		return "", false
	}
	return username, true
}
