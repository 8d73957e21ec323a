package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"article-api/internal/domain/article"
	apperrors "article-api/pkg/errors"
	"article-api/pkg/security"
)

// ArticleRepoPG implements article persistence using GORM.
type ArticleRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewArticleRepoPG creates a new instance of ArticleRepoPG.
func NewArticleRepoPG(db *gorm.DB, log *zap.Logger) *ArticleRepoPG {
	return &ArticleRepoPG{db: db, log: log}
}

func articleNotFound(id int64) error {
	return apperrors.NewNotFoundError("article", fmt.Sprintf("article not found: id=%d", id))
}

// Create inserts a new article and returns it with ID and timestamps set.
func (r *ArticleRepoPG) Create(ctx context.Context, a *article.Article) (*article.Article, error) {
	if a == nil {
		return nil, errors.New("article cannot be nil")
	}

	model := ArticleSchema{
		Title: a.Title,
		Body:  a.Body,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create article in db", zap.Error(err))
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	r.log.Info("article created in db", zap.Int64("id", model.ID))
	return toArticle(&model), nil
}

// GetByID retrieves an article, or *errors.NotFoundError.
func (r *ArticleRepoPG) GetByID(ctx context.Context, id int64) (*article.Article, error) {
	var model ArticleSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, articleNotFound(id)
		}
		r.log.Error("failed to get article from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return toArticle(&model), nil
}

// Update applies the non-nil fields of patch and returns the stored article.
func (r *ArticleRepoPG) Update(ctx context.Context, id int64, patch article.Patch) (*article.Article, error) {
	var model ArticleSchema

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}

		// Only allow-listed columns are ever written
		updates := make(map[string]any, 2)
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Body != nil {
			updates["body"] = *patch.Body
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&model).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&model, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, articleNotFound(id)
		}
		r.log.Error("failed to update article in db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	r.log.Info("article updated in db", zap.Int64("id", id))
	return toArticle(&model), nil
}

// Delete removes an article, or returns *errors.NotFoundError if none was deleted.
func (r *ArticleRepoPG) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ArticleSchema{}, id)
	if res.Error != nil {
		r.log.Error("failed to delete article in db", zap.Error(res.Error), zap.Int64("id", id))
		return fmt.Errorf("failed to delete article: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return articleNotFound(id)
	}

	r.log.Info("article deleted in db", zap.Int64("id", id))
	return nil
}

// List returns one page of articles ordered by ID, plus the total match count.
// query is matched case-insensitively and literally against title and body.
func (r *ArticleRepoPG) List(ctx context.Context, query string, page, limit int64) ([]article.Article, int64, error) {
	tx := r.db.WithContext(ctx).Model(&ArticleSchema{})
	if query != "" {
		pattern := "%" + security.EscapeLike(query) + "%"
		tx = tx.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(body) LIKE LOWER(?) ESCAPE '\'`, pattern, pattern)
	}
	// Count and Find each start from the same filtered statement
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		r.log.Error("failed to count articles", zap.Error(err), zap.String("query", query))
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	pagination := article.NewPagination(total, page, limit)

	var models []ArticleSchema
	if err := tx.Order("id ASC").Offset(int(pagination.Offset())).Limit(int(limit)).Find(&models).Error; err != nil {
		r.log.Error("failed to list articles from db", zap.Error(err), zap.String("query", query), zap.Int64("page", page), zap.Int64("limit", limit))
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}

	articles := make([]article.Article, len(models))
	for i := range models {
		articles[i] = *toArticle(&models[i])
	}

	return articles, total, nil
}

func toArticle(m *ArticleSchema) *article.Article {
	return &article.Article{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
