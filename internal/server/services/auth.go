// Package services contains server-side business logic: account signup and
// signin, profile reads and edits, and per-user bookmark management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
)

// PasswordHasher produces and checks self-describing password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) (bool, error)
}

// AuthService registers users and exchanges credentials for access tokens.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	jwtSecret   []byte
	now         func() time.Time
	// dummyHash is verified against when the email is unknown so that both
	// signin failures cost one password hash.
	dummyHash string
}

// NewAuthService constructs an AuthService. secret signs every issued token.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, secret []byte) *AuthService {
	// An empty dummy hash only loses the timing cover; Verify still fails.
	dummy, _ := hasher.Hash("bookmarks-unknown-user")
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		jwtSecret:   secret,
		now:         time.Now,
		dummyHash:   dummy,
	}
}

// Signup stores a new user and returns a token for it. A taken email yields
// common.ErrCredentialsTaken.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.Token, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, Hash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrCredentialsTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.IssueToken(user.ID, user.Email)
}

// Signin checks the password against the stored hash. An unknown email
// yields common.ErrCredentialsNotFound and a wrong password
// common.ErrCredentialsIncorrect; callers must not tell them apart.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*models.Token, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Verify(s.dummyHash, password)
			return nil, common.ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	ok, err := s.hasher.Verify(user.Hash, password)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrCredentialsIncorrect
	}

	return s.IssueToken(user.ID, user.Email)
}

// IssueToken signs an access token for the given user, valid for auth.AccessTokenTTL.
func (s *AuthService) IssueToken(userID int64, email string) (*models.Token, error) {
	token, err := auth.GenerateToken(userID, email, s.jwtSecret, s.now())
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &models.Token{AccessToken: token}, nil
}
