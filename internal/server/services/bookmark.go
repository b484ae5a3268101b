package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
)

// BookmarkService manages bookmarks on behalf of their owner. Every call is
// scoped to userID.
type BookmarkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookmarkService(db *sql.DB, m repomanager.RepositoryManager) *BookmarkService {
	return &BookmarkService{db: db, repomanager: m}
}

func (s *BookmarkService) List(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	items, err := s.repomanager.Bookmarks(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookmarks: %w", err)
	}
	if items == nil {
		items = []*models.Bookmark{}
	}
	return items, nil
}

// Get returns common.ErrorNotFound for a bookmark that is missing or owned by
// someone else.
func (s *BookmarkService) Get(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	b, err := s.repomanager.Bookmarks(s.db).Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching bookmark: %w", err)
	}
	return b, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID int64, title string, description *string, link string) (*models.Bookmark, error) {
	b, err := s.repomanager.Bookmarks(s.db).Create(ctx, &models.Bookmark{
		Title:       title,
		Description: description,
		Link:        link,
		UserID:      userID,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error creating bookmark: %w", err)
	}
	return b, nil
}

// Edit returns common.ErrorAccessDenied for a bookmark that is missing or
// owned by someone else.
func (s *BookmarkService) Edit(ctx context.Context, userID, id int64, upd models.BookmarkUpdate) (*models.Bookmark, error) {
	repo := s.repomanager.Bookmarks(s.db)

	var (
		b   *models.Bookmark
		err error
	)
	if upd.Empty() {
		b, err = repo.Get(ctx, userID, id)
	} else {
		b, err = repo.Update(ctx, userID, id, upd)
	}
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorAccessDenied
		}
		return nil, fmt.Errorf("error updating bookmark: %w", err)
	}
	return b, nil
}

// Delete returns common.ErrorAccessDenied for a bookmark that is missing or
// owned by someone else.
func (s *BookmarkService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repomanager.Bookmarks(s.db).Delete(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorAccessDenied
		}
		return fmt.Errorf("error deleting bookmark: %w", err)
	}
	return nil
}
