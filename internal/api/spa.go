package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// newFallbackHandler answers unmatched routes. /api paths get a JSON 404;
// anything else is served from distDir, then distDir/index.html, then the
// frontend entry document, so client-side deep links resolve.
func newFallbackHandler(distDir string, frontend Frontend) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
			routeNotFound(c)
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			routeNotFound(c)
			return
		}

		if distDir != "" {
			if file, ok := distFile(distDir, reqPath); ok {
				c.File(file)
				return
			}
			if index, ok := distFile(distDir, "/index.html"); ok {
				c.File(index)
				return
			}
		}

		if frontend != nil {
			frontend.Entry(c)
			return
		}

		routeNotFound(c)
	}
}

func routeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": "route not found",
		"code":  "not_found",
		"path":  c.Request.URL.Path,
	})
}

// distFile resolves reqPath inside distDir, refusing to escape it
func distFile(distDir, reqPath string) (string, bool) {
	clean := path.Clean("/" + reqPath)
	file := filepath.Join(distDir, filepath.FromSlash(clean))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}
