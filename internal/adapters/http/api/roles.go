// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// RolesHandler handles role catalog requests.
type RolesHandler struct {
	deps Dependencies
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps Dependencies) *RolesHandler {
	return &RolesHandler{deps: deps}
}

// HandleGetRoles handles GET /get-roles requests.
func (h *RolesHandler) HandleGetRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"roles": h.deps.Roles(r.Context()),
	})
}

// HandleGetRoleLinks handles GET /role-links/{role} requests.
func (h *RolesHandler) HandleGetRoleLinks(w http.ResponseWriter, r *http.Request) {
	const op = "api.role_links"

	role, err := url.PathUnescape(chi.URLParam(r, "role"))
	if err != nil || role == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	rl, ok := h.deps.RoleLinks(r.Context(), role)
	if !ok {
		writeError(w, http.StatusNotFound, "role_not_found", NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, rl)
}
