package article

import (
	"time"

	domain "article-api/internal/domain/article"
)

// CreateArticleRequest represents the request payload for creating an article.
type CreateArticleRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body" validate:"required"`
}

// UpdateArticleRequest represents the request payload for a partial article update.
// Absent fields are left unchanged.
type UpdateArticleRequest struct {
	ID    int64   `json:"-"`
	Title *string `json:"title" validate:"omitempty,max=255"`
	Body  *string `json:"body"`
}

// DeleteArticleRequest represents the request payload for deleting an article.
type DeleteArticleRequest struct {
	ID int64
}

// GetArticleRequest represents the request payload for retrieving an article.
type GetArticleRequest struct {
	ID int64
}

// ListArticlesRequest represents the request payload for listing articles.
// It supports pagination and search functionality.
type ListArticlesRequest struct {
	Query string `form:"query"`
	Page  int64  `form:"page"`
	Limit int64  `form:"limit"`
}

// ListArticlesResponse represents the response payload for article listing.
type ListArticlesResponse struct {
	Articles   []Article
	Pagination *domain.Pagination
}

// Article represents an article DTO for API responses.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(a *domain.Article) *Article {
	return &Article{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
