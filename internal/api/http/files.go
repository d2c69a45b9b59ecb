package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aulanet/aulanet/internal/storage"
)

// MountFiles serves evaluation spec sheets and grade detail attachments.
// Read-only: uploads happen through the external grading workflow.
func MountFiles(r chi.Router, bs storage.BlobStore) {
	// GET /files/*  -> streams the blob at whatever follows /files/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found: "+err.Error(), http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	})
}
