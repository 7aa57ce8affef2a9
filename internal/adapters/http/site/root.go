// Package site serves the landing page and its embedded assets.
package site

import (
	"bytes"
	"context"
	"io/fs"
	"net/http"
	"time"
)

// IndexPath is where GET / sends browsers.
const IndexPath = "/static/index.html"

// Register attaches the root redirect and the /static/ file server to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	root := NewRootHandler()
	mux.HandleFunc("GET /{$}", root.HandleRoot)
	mux.HandleFunc(IndexPath, root.HandleIndex)
	mux.Handle("/static/", http.StripPrefix("/static", http.FileServer(FS())))
}

// RootHandler handles the landing page routes.
type RootHandler struct {
	index   []byte
	modTime time.Time
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	index, err := fs.ReadFile(staticFS, "static/index.html")
	if err != nil {
		panic("site: index.html missing from embedded assets")
	}
	return &RootHandler{index: index, modTime: time.Now()}
}

// HandleRoot redirects GET / to the landing page with 307.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// HandleIndex serves index.html directly. http.FileServer would redirect
// any path ending in /index.html to its directory.
func (h *RootHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	http.ServeContent(w, r, "index.html", h.modTime, bytes.NewReader(h.index))
}
