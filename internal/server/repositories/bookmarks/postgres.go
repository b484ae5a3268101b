// Package bookmarks provides the PostgreSQL-backed bookmark store.
package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/dmitrijs2005/bookmarks/internal/dbx"
	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

// PostgresRepository implements bookmark storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookmarkColumns = `id, title, description, link, user_id, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(s scanner) (*models.Bookmark, error) {
	b := &models.Bookmark{}
	if err := s.Scan(&b.ID, &b.Title, &b.Description, &b.Link, &b.UserID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the user's bookmarks ordered by id. An empty result is a
// non-nil empty slice.
func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]*models.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE id = $1 AND user_id = $2`

	b, err := scanBookmark(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

// Create inserts the bookmark for bookmark.UserID. A missing owner row
// yields common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	query :=
		`INSERT INTO bookmarks (title, description, link, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + bookmarkColumns

	b, err := scanBookmark(r.db.QueryRowContext(ctx, query, bookmark.Title, bookmark.Description, bookmark.Link, bookmark.UserID))
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

// Update changes the non-nil fields of upd on a bookmark owned by userID.
// Ownership is part of the WHERE clause, so a missing and a foreign
// bookmark both yield common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, userID, id int64, upd models.BookmarkUpdate) (*models.Bookmark, error) {
	query :=
		`UPDATE bookmarks SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			link = COALESCE($5, link),
			updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + bookmarkColumns

	b, err := scanBookmark(r.db.QueryRowContext(ctx, query, id, userID, upd.Title, upd.Description, upd.Link))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

// Delete removes a bookmark owned by userID.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
