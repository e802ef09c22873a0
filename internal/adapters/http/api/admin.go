// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// maxUploadBytes bounds an uploaded sheet. Real catalogs are a few KB.
const maxUploadBytes = 5 << 20

// AdminHandler handles authenticated catalog and link sheet uploads.
type AdminHandler struct {
	deps       Dependencies
	token      string
	uploadsDir string
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps Dependencies) *AdminHandler {
	return &AdminHandler{
		deps:       deps,
		uploadsDir: "uploads",
	}
}

// Authenticate rejects requests without the configured admin token. An
// empty configured token disables the admin surface entirely.
func (h *AdminHandler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "api.admin_auth"

		if h.token == "" {
			writeError(w, http.StatusForbidden, "admin_disabled", NewKind(op, ErrUnauthorized))
			return
		}
		got := r.Header.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized", NewKind(op, ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleUploadCatalog handles POST /admin/upload-catalog requests. The
// uploaded CSV is staged to disk and only swapped in when it parses.
func (h *AdminHandler) HandleUploadCatalog(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, "catalog", h.deps.ReloadCatalog)
}

// HandleUploadLinks handles POST /admin/upload-links requests.
func (h *AdminHandler) HandleUploadLinks(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, "links", h.deps.ReloadLinks)
}

func (h *AdminHandler) handleUpload(w http.ResponseWriter, r *http.Request, kind string, reload func(ctx context.Context, path string) error) {
	const op = "api.admin_upload"

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = file.Close() }()

	path, err := h.stage(file, kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if err := reload(r.Context(), path); err != nil {
		writeError(w, http.StatusBadRequest, "bad_sheet", WrapKind(op, ErrBadRequest, err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"filename": header.Filename,
	})
}

// stage writes an uploaded sheet into the uploads directory.
func (h *AdminHandler) stage(src io.Reader, kind string) (string, error) {
	if err := os.MkdirAll(h.uploadsDir, 0o750); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	name := fmt.Sprintf("%s-%d.csv", kind, time.Now().UnixNano())
	path := filepath.Join(h.uploadsDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, io.LimitReader(src, maxUploadBytes)); err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return path, nil
}
