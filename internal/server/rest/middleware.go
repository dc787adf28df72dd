package rest

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const (
	identityCtxKey ctxKey = "identity"

	identityKey  = "identity"
	requestIDKey = "request_id"
)

// IdentityFromContext returns the identity the access gate attached to the
// request context.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(models.Identity)
	return id, ok
}

func identityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// parseBearer extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func parseBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", common.ErrNoCredential
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) || parts[1] == "" {
		return "", common.ErrMalformedCredential
	}
	return parts[1], nil
}

// RequireAuth admits a request only with a valid bearer token. On success
// the caller's identity is available through IdentityFromContext.
func RequireAuth(tv TokenVerifier, l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := parseBearer(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			l.Warn(ctx, "access denied", "reason", err.Error(), "path", c.Request.URL.Path)
			abortWithError(c, l, err)
			return
		}

		claims, err := tv.Verify(token)
		if err != nil {
			l.Warn(ctx, "access denied", "reason", err.Error(), "path", c.Request.URL.Path)
			abortWithError(c, l, common.ErrInvalidToken)
			return
		}

		id := models.Identity{UserID: claims.UserID, UserName: claims.UserName}
		c.Set(identityKey, id)
		c.Request = c.Request.WithContext(context.WithValue(ctx, identityCtxKey, id))

		c.Next()
	}
}

// RequestID propagates or generates the X-Request-Id header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// RequestLogger logs one line per request. Bodies are never logged.
func RequestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start).String(),
			"request_id", c.GetString(requestIDKey),
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			l.Error(ctx, "Request completed", args...)
		case status >= http.StatusBadRequest:
			l.Warn(ctx, "Request completed", args...)
		default:
			l.Info(ctx, "Request completed", args...)
		}
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				l.Error(c.Request.Context(), "Panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Success: false, Message: msgInternal})
			}
		}()
		c.Next()
	}
}

// CORS allows any origin and answers preflight requests directly.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id")
		h.Set("Access-Control-Expose-Headers", common.RequestIDHeaderName)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
