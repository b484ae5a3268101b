package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/go-chi/chi/v5"
)

// NewRouter wires the REST routes. Everything outside /auth sits behind the
// identity guard keyed by secret.
func NewRouter(h *Handler, secret []byte, l logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID, tracing, accessLog(l), recoverer(l))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/signin", h.Signin)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticate(secret, l))

		r.Get("/users/me", h.Me)
		r.Patch("/users", h.EditUser)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", h.ListBookmarks)
			r.Post("/", h.CreateBookmark)
			r.Get("/{id}", h.GetBookmark)
			r.Patch("/{id}", h.EditBookmark)
			r.Delete("/{id}", h.DeleteBookmark)
		})
	})

	return r
}
