package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/edvin/dokdash/internal/render"
)

// SPA serves a bundled single-page app from staticDir, falling back to its
// index.html for unknown paths. Without a staticDir every unknown path gets
// the dashboard entry page.
type SPA struct {
	staticDir string
	entry     http.Handler
}

func NewSPA(staticDir string, entry http.Handler) *SPA {
	return &SPA{staticDir: staticDir, entry: entry}
}

func (h *SPA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.staticDir == "" {
		h.entry.ServeHTTP(w, r)
		return
	}

	path := filepath.Join(h.staticDir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))

	// Check if file exists
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		// Serve index.html for SPA routing
		http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
		return
	}

	// Cache static assets aggressively
	if strings.Contains(r.URL.Path, "/assets/") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}

	http.ServeFile(w, r, path)
}

// Assets serves the dashboard's embedded stylesheet and script. Mount it
// with render.AssetsPath stripped.
func Assets() http.Handler {
	files := http.FileServerFS(render.StaticFS())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}
