package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

// Repository stores bookmarks. Every method is scoped to the owning user:
// rows belonging to someone else behave as if they did not exist.
type Repository interface {
	List(ctx context.Context, userID int64) ([]*models.Bookmark, error)
	Get(ctx context.Context, userID, id int64) (*models.Bookmark, error)
	Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	Update(ctx context.Context, userID, id int64, upd models.BookmarkUpdate) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id int64) error
}
