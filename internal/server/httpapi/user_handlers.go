package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bookmarks/internal/server/identity"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Me(r.Context(), identity.UserIDFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	var req editUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.Edit(r.Context(), identity.UserIDFromContext(r.Context()), req.toUpdate())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
