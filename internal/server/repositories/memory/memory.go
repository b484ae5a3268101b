// Package memory provides an in-process RepositoryManager with the same
// contract as the PostgreSQL one. It backs service and handler tests.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
)

// Store holds users and bookmarks. The zero value is not usable; call New.
type Store struct {
	mu        sync.Mutex
	users     map[int64]models.User
	bookmarks map[int64]models.Bookmark
	userSeq   int64
	markSeq   int64
	now       func() time.Time
}

func New() *Store {
	return &Store{
		users:     make(map[int64]models.User),
		bookmarks: make(map[int64]models.Bookmark),
		now:       time.Now,
	}
}

// RunMigrations is a no-op.
func (s *Store) RunMigrations(context.Context, *sql.DB) error { return nil }

// Users ignores db; all repositories share the Store.
func (s *Store) Users(dbx.DBTX) users.Repository { return (*userRepo)(s) }

// Bookmarks ignores db; all repositories share the Store.
func (s *Store) Bookmarks(dbx.DBTX) bookmarks.Repository { return (*bookmarkRepo)(s) }

// DeleteUser removes a user and, like ON DELETE CASCADE, its bookmarks.
func (s *Store) DeleteUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	for k, b := range s.bookmarks {
		if b.UserID == id {
			delete(s.bookmarks, k)
		}
	}
}

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.userSeq++
	now := r.now()
	u := *user
	u.ID, u.CreatedAt, u.UpdatedAt = r.userSeq, now, now
	r.users[u.ID] = u

	out := u
	return &out, nil
}

func (r *userRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *userRepo) Update(_ context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Email != nil {
		for _, other := range r.users {
			if other.ID != id && other.Email == *upd.Email {
				return nil, common.ErrorAlreadyExists
			}
		}
		u.Email = *upd.Email
	}
	if upd.FirstName != nil {
		u.FirstName = copyString(upd.FirstName)
	}
	if upd.LastName != nil {
		u.LastName = copyString(upd.LastName)
	}
	u.UpdatedAt = r.now()
	r.users[id] = u

	return &u, nil
}

type bookmarkRepo Store

func (r *bookmarkRepo) List(_ context.Context, userID int64) ([]*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.Bookmark, 0)
	for _, b := range r.bookmarks {
		if b.UserID == userID {
			out := b
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *bookmarkRepo) Get(_ context.Context, userID, id int64) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &b, nil
}

func (r *bookmarkRepo) Create(_ context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[bookmark.UserID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.markSeq++
	now := r.now()
	b := *bookmark
	b.ID, b.CreatedAt, b.UpdatedAt = r.markSeq, now, now
	b.Description = copyString(bookmark.Description)
	r.bookmarks[b.ID] = b

	out := b
	return &out, nil
}

func (r *bookmarkRepo) Update(_ context.Context, userID, id int64, upd models.BookmarkUpdate) (*models.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Description != nil {
		b.Description = copyString(upd.Description)
	}
	if upd.Link != nil {
		b.Link = *upd.Link
	}
	b.UpdatedAt = r.now()
	r.bookmarks[id] = b

	out := b
	return &out, nil
}

func (r *bookmarkRepo) Delete(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookmarks[id]
	if !ok || b.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.bookmarks, id)
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
