package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html")
		c.String(http.StatusOK, `<!doctype html>
<html><head><title>Staysboard Docs</title></head>
<body>
<redoc spec-url="/openapi.yaml"></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body></html>`)
	})
	r.GET("/openapi.yaml", func(c *gin.Context) {
		possiblePaths := []string{
			"/docs/openapi.yaml",
			"docs/openapi.yaml",
			filepath.Join(".", "docs", "openapi.yaml"),
		}

		var content []byte
		var err error
		for _, path := range possiblePaths {
			content, err = os.ReadFile(path)
			if err == nil {
				break
			}
		}
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "openapi.yaml not found"})
			return
		}

		c.Header("Content-Type", "application/yaml")
		c.String(http.StatusOK, string(content))
	})
}
