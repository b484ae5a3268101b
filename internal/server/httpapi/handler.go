// Package httpapi exposes the bookmarks REST API over HTTP using chi.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

type AuthService interface {
	Signup(ctx context.Context, email, password string) (*models.Token, error)
	Signin(ctx context.Context, email, password string) (*models.Token, error)
}

type UserService interface {
	Me(ctx context.Context, userID int64) (*models.User, error)
	Edit(ctx context.Context, userID int64, upd models.UserUpdate) (*models.User, error)
}

type BookmarkService interface {
	List(ctx context.Context, userID int64) ([]*models.Bookmark, error)
	Get(ctx context.Context, userID, id int64) (*models.Bookmark, error)
	Create(ctx context.Context, userID int64, title string, description *string, link string) (*models.Bookmark, error)
	Edit(ctx context.Context, userID, id int64, upd models.BookmarkUpdate) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id int64) error
}

// Handler serves the REST endpoints on top of the services.
type Handler struct {
	auth      AuthService
	users     UserService
	bookmarks BookmarkService
	logger    logging.Logger
}

func NewHandler(l logging.Logger, as AuthService, us UserService, bs BookmarkService) *Handler {
	return &Handler{
		auth:      as,
		users:     us,
		bookmarks: bs,
		logger:    l.With("module", "http_handler"),
	}
}

// fail writes the client-facing error for err. Server faults are logged with
// the full chain; client faults are logged at info so rejected signins can be
// told apart in logs.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	} else {
		h.logger.Info(r.Context(), "request rejected", "status", status, "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	writeError(w, status, msg)
}
