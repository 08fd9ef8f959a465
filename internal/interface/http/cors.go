package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Content-Type"
	corsMaxAge  = "600"
)

// corsMiddleware answers preflights and stamps the allow headers for a browser UI on
// another origin. An empty allow-list means any origin; an unlisted origin gets no
// Access-Control-Allow-Origin and the browser blocks it.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	anyOrigin := len(allowed) == 0 || slices.Contains(allowed, "*")
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if origin, ok := allowOrigin(c.GetHeader("Origin"), allowed, anyOrigin); ok {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Max-Age", corsMaxAge)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func allowOrigin(origin string, allowed []string, anyOrigin bool) (string, bool) {
	if anyOrigin {
		return "*", true
	}
	for _, candidate := range allowed {
		if origin != "" && strings.EqualFold(strings.TrimRight(candidate, "/"), origin) {
			return origin, true
		}
	}
	return "", false
}
