package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// VisitorCookie identifies a browser for the view navigator
const VisitorCookie = "qmc_visitor"

const contextVisitor = "visitor"

// RequestLogger logs one line per request
func RequestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := lgr.Info()
		if status >= http.StatusInternalServerError {
			event = lgr.Error()
		} else if status >= http.StatusBadRequest {
			event = lgr.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Str("ip", c.ClientIP()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}

// Visitor makes sure every browser carries a visitor id cookie
func Visitor(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, id, int((365 * 24 * time.Hour).Seconds()), "/", "", secure, true)
		}
		c.Set(contextVisitor, id)
		c.Next()
	}
}

// VisitorID returns the id set by Visitor
func VisitorID(c *gin.Context) string {
	return c.GetString(contextVisitor)
}
