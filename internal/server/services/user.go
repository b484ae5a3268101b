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

// UserService serves the caller's own profile.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Me returns the stored profile of userID. A user deleted after its token
// was issued yields common.ErrInvalidToken.
func (s *UserService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// Edit applies upd to the caller's profile. An email that belongs to another
// account yields common.ErrCredentialsTaken.
func (s *UserService) Edit(ctx context.Context, userID int64, upd models.UserUpdate) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).Update(ctx, userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrInvalidToken
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.ErrCredentialsTaken
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}
