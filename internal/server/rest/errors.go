package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/gin-gonic/gin"
)

const (
	msgInternal      = "internal server error"
	msgNotFound      = "endpoint not found"
	msgInvalidToken  = "authorization token is invalid or expired, please log in again"
	msgInvalidCreds  = "invalid username or password"
	msgMissingToken  = "authorization token is missing, please log in"
	msgMalformedAuth = "authorization header is malformed, expected: Bearer <token>"
)

// errorMapping pairs a sentinel with the status and the public message.
// The first entry matching errors.Is wins.
var errorMapping = []struct {
	err     error
	status  int
	message string
}{
	{common.ErrMissingCredentials, http.StatusBadRequest, "username and password are required"},
	{common.ErrPasswordTooShort, http.StatusBadRequest, "password must be at least 6 characters"},
	{common.ErrPasswordTooLong, http.StatusBadRequest, "password must be at most 72 bytes"},
	{common.ErrInvalidRequestBody, http.StatusBadRequest, "invalid request body"},
	{common.ErrUsernameTaken, http.StatusBadRequest, "username is already taken"},
	{common.ErrInvalidCredentials, http.StatusUnauthorized, msgInvalidCreds},
	{common.ErrNoCredential, http.StatusUnauthorized, msgMissingToken},
	{common.ErrMalformedCredential, http.StatusUnauthorized, msgMalformedAuth},
	{common.ErrTokenExpired, http.StatusUnauthorized, msgInvalidToken},
	{common.ErrInvalidToken, http.StatusUnauthorized, msgInvalidToken},
	{common.ErrorNotFound, http.StatusNotFound, "product not found"},
}

// statusFor maps err to an HTTP status and public message. Unknown errors
// are 500 with a generic message.
func statusFor(err error) (int, string, bool) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return m.status, m.message, true
		}
	}
	return http.StatusInternalServerError, msgInternal, false
}

// abortWithError writes the error envelope and stops the handler chain.
func abortWithError(c *gin.Context, l logging.Logger, err error) {
	status, message, known := statusFor(err)
	if !known {
		l.Error(c.Request.Context(), "request failed", "error", err, "request_id", c.GetString(requestIDKey))
	}
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}
