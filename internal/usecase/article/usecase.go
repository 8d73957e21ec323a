package article

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "article-api/internal/domain/article"
	apperrors "article-api/pkg/errors"
	"article-api/pkg/logger"
	"article-api/pkg/security"
	"article-api/pkg/validation"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Repository defines the interface for article data access operations.
type Repository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)                     // Create a new article
	GetByID(ctx context.Context, id int64) (*domain.Article, error)                             // Retrieve article by ID
	Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Article, error)          // Apply a partial update
	Delete(ctx context.Context, id int64) error                                                 // Delete article by ID
	List(ctx context.Context, query string, page, limit int64) ([]domain.Article, int64, error) // List articles with pagination and search
}

// Usecase implements the business logic for article management operations.
type Usecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log, validate: validation.New()}
}

// CreateArticle validates the request and stores a new article.
func (uc *Usecase) CreateArticle(ctx context.Context, in CreateArticleRequest) (*Article, error) {
	log := logger.WithContext(ctx, uc.log)

	in.Title = strings.TrimSpace(in.Title)
	if strings.TrimSpace(in.Body) == "" {
		in.Body = ""
	}
	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, validation.Translate(err)
	}

	a, err := uc.repo.Create(ctx, &domain.Article{
		Title: in.Title,
		Body:  in.Body,
	})
	if err != nil {
		log.Error("failed to create article", zap.Error(err))
		return nil, err
	}

	log.Info("article created", zap.Int64("id", a.ID))
	return toDTO(a), nil
}

// UpdateArticle applies the allow-listed fields present in the request.
func (uc *Usecase) UpdateArticle(ctx context.Context, in UpdateArticleRequest) (*Article, error) {
	log := logger.WithContext(ctx, uc.log)

	if in.ID <= 0 {
		return nil, apperrors.ErrNotFound
	}

	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
	}
	if err := uc.validateUpdate(in); err != nil {
		log.Warn("validate failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	a, err := uc.repo.Update(ctx, in.ID, domain.Patch{Title: in.Title, Body: in.Body})
	if err != nil {
		var nf *apperrors.NotFoundError
		if !errors.As(err, &nf) {
			log.Error("failed to update article", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}

	log.Info("article updated", zap.Int64("id", a.ID))
	return toDTO(a), nil
}

func (uc *Usecase) validateUpdate(in UpdateArticleRequest) error {
	ve := &apperrors.ValidationError{Message: apperrors.DefaultValidationMessage}

	if err := uc.validate.Struct(in); err != nil {
		var translated *apperrors.ValidationError
		if !errors.As(validation.Translate(err), &translated) {
			return apperrors.NewInternalError("failed to validate article", err)
		}
		ve = translated
	}

	if in.Title == nil && in.Body == nil {
		ve.Add("title", "The title field is required when body is not present.")
		ve.Add("body", "The body field is required when title is not present.")
	}
	if in.Title != nil && *in.Title == "" {
		ve.Add("title", "The title field is required.")
	}
	if in.Body != nil && strings.TrimSpace(*in.Body) == "" {
		ve.Add("body", "The body field is required.")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// DeleteArticle removes an article by ID.
func (uc *Usecase) DeleteArticle(ctx context.Context, in DeleteArticleRequest) error {
	log := logger.WithContext(ctx, uc.log)

	if in.ID <= 0 {
		return apperrors.ErrNotFound
	}

	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		var nf *apperrors.NotFoundError
		if !errors.As(err, &nf) {
			log.Error("failed to delete article", zap.Int64("id", in.ID), zap.Error(err))
		}
		return err
	}

	log.Info("article deleted", zap.Int64("id", in.ID))
	return nil
}

// GetArticle retrieves an article by ID.
func (uc *Usecase) GetArticle(ctx context.Context, in GetArticleRequest) (*Article, error) {
	if in.ID <= 0 {
		return nil, apperrors.ErrNotFound
	}

	a, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		var nf *apperrors.NotFoundError
		if !errors.As(err, &nf) {
			logger.WithContext(ctx, uc.log).Error("failed to get article", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}

	return toDTO(a), nil
}

// ListArticles retrieves a paginated list of articles with optional search functionality.
func (uc *Usecase) ListArticles(ctx context.Context, in ListArticlesRequest) (*ListArticlesResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	if in.Page <= 0 {
		in.Page = defaultPage
	}
	if in.Limit <= 0 {
		in.Limit = defaultLimit
	}
	if in.Limit > maxLimit {
		in.Limit = maxLimit
	}

	query, err := security.ValidateSearchQuery(in.Query)
	if err != nil {
		log.Warn("invalid search query", zap.String("query", in.Query), zap.Error(err))
		return nil, searchQueryError(err)
	}

	log.Debug("listing articles", zap.String("query", query), zap.Int64("page", in.Page), zap.Int64("limit", in.Limit))

	items, total, err := uc.repo.List(ctx, query, in.Page, in.Limit)
	if err != nil {
		log.Error("failed to list articles", zap.String("query", query), zap.Int64("page", in.Page), zap.Int64("limit", in.Limit), zap.Error(err))
		return nil, err
	}

	articles := make([]Article, len(items))
	for i := range items {
		articles[i] = *toDTO(&items[i])
	}

	return &ListArticlesResponse{
		Articles:   articles,
		Pagination: domain.NewPagination(total, in.Page, in.Limit),
	}, nil
}

func searchQueryError(err error) error {
	if errors.Is(err, security.ErrSearchQueryTooLong) {
		return apperrors.NewValidationError("query", "The query may not be greater than 100 characters.")
	}
	return apperrors.NewValidationError("query", "The query format is invalid.")
}
