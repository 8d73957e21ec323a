package article

import "context"

// Service defines the interface for article business logic operations.
type Service interface {
	CreateArticle(ctx context.Context, in CreateArticleRequest) (*Article, error)
	UpdateArticle(ctx context.Context, in UpdateArticleRequest) (*Article, error)
	DeleteArticle(ctx context.Context, in DeleteArticleRequest) error
	GetArticle(ctx context.Context, in GetArticleRequest) (*Article, error)
	ListArticles(ctx context.Context, in ListArticlesRequest) (*ListArticlesResponse, error)
}

var _ Service = (*Usecase)(nil)
