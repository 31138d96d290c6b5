package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/idgen"
	"github.com/alfredjeanlab/cafedash/internal/session"
)

const ctxRequestID = "requestID"

// requestID reuses the caller's X-Request-ID or assigns one, echoes it in the
// response and attaches it to the request context so upstream calls carry it.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(client.RequestIDHeader))
		if id == "" {
			id = idgen.RequestID()
		}
		c.Set(ctxRequestID, id)
		c.Header(client.RequestIDHeader, id)
		c.Request = c.Request.WithContext(client.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", c.GetString(ctxRequestID),
		}
		if status >= http.StatusInternalServerError {
			logger.Warn("request failed", attrs...)
			return
		}
		logger.Info("request", attrs...)
	}
}

func recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in handler", "path", c.Request.URL.Path, "panic", fmt.Sprint(r), "request_id", c.GetString(ctxRequestID))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": client.MsgUnknown})
			}
		}()
		c.Next()
	}
}

// corsMiddleware allows the listed origins, or any origin when none are
// configured.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type", client.RequestIDHeader},
		ExposeHeaders:    []string{client.RequestIDHeader},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// callerSession builds a session from the Authorization header. A missing
// header yields an anonymous session; the remote API decides what that may
// see.
func callerSession(c *gin.Context) (*session.Session, error) {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return session.Anonymous(), nil
	}
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("invalid authorization header")
	}
	return session.FromToken(strings.TrimSpace(token))
}
