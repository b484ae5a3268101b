package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bookmarks/internal/cryptox"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/bookmarks"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/users"
)

var testSecret = []byte("test-secret")

func newHasher() *cryptox.Argon2Hasher {
	return cryptox.NewArgon2Hasher(cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
}

// --- failing repositories ---

var errStore = errors.New("connection reset")

type brokenRM struct{ repomanager.RepositoryManager }

func (brokenRM) Users(dbx.DBTX) users.Repository         { return brokenUsers{} }
func (brokenRM) Bookmarks(dbx.DBTX) bookmarks.Repository { return brokenBookmarks{} }

type brokenUsers struct{ users.Repository }

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errStore }
func (brokenUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errStore
}
func (brokenUsers) GetUserByID(context.Context, int64) (*models.User, error) { return nil, errStore }
func (brokenUsers) Update(context.Context, int64, models.UserUpdate) (*models.User, error) {
	return nil, errStore
}

type brokenBookmarks struct{ bookmarks.Repository }

func (brokenBookmarks) List(context.Context, int64) ([]*models.Bookmark, error) { return nil, errStore }
func (brokenBookmarks) Get(context.Context, int64, int64) (*models.Bookmark, error) {
	return nil, errStore
}
func (brokenBookmarks) Create(context.Context, *models.Bookmark) (*models.Bookmark, error) {
	return nil, errStore
}
func (brokenBookmarks) Update(context.Context, int64, int64, models.BookmarkUpdate) (*models.Bookmark, error) {
	return nil, errStore
}
func (brokenBookmarks) Delete(context.Context, int64, int64) error { return errStore }

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error)         { return "", errors.New("rng failure") }
func (failingHasher) Verify(string, string) (bool, error) { return false, cryptox.ErrInvalidHash }

func strPtr(s string) *string { return &s }
