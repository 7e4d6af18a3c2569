package server

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupAssets serves the embedded static files under /assets.
func SetupAssets(r *gin.Engine, files fs.FS) error {
	staticFiles, err := fs.Sub(files, ".")
	if err != nil {
		return err
	}
	r.StaticFS("/assets", http.FS(staticFiles))
	return nil
}
