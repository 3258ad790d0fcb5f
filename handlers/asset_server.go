package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// AssetServer creates a handler serving uploaded files from a base directory.
// It expects the request path to be <publicPrefix>/<filename>, e.g.
// /uploads/1717171717171.png, and refuses anything resolving outside the
// directory.
func AssetServer(baseDir, publicPrefix string) http.HandlerFunc {
	cleanBaseDir := filepath.Clean(baseDir)
	routePrefix := "/" + publicPrefix + "/"
	log.Printf("Serving uploads for '%s*' from directory: %s", routePrefix, cleanBaseDir)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, routePrefix)
		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid asset path", http.StatusBadRequest)
			return
		}

		requestedPath := filepath.Clean(filepath.Join(cleanBaseDir, relativePath))
		if !strings.HasPrefix(requestedPath, cleanBaseDir) {
			log.Printf("SECURITY: Attempted asset access outside upload directory: Request='%s', Resolved='%s'", r.URL.Path, requestedPath)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if _, err := os.Stat(requestedPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			log.Printf("Error stating asset file %s: %v", requestedPath, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		http.ServeFile(w, r, requestedPath)
	}
}
