package httpapi

import "github.com/dmitrijs2005/bookmarks/internal/server/models"

type authRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type editUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (r editUserRequest) toUpdate() models.UserUpdate {
	return models.UserUpdate{Email: r.Email, FirstName: r.FirstName, LastName: r.LastName}
}

type createBookmarkRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Link        string  `json:"link" validate:"required"`
}

type editBookmarkRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Link        *string `json:"link" validate:"omitempty,min=1"`
}

func (r editBookmarkRequest) toUpdate() models.BookmarkUpdate {
	return models.BookmarkUpdate{Title: r.Title, Description: r.Description, Link: r.Link}
}
