package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"article-api/internal/usecase/article"
)

// ArticleHandler handles HTTP requests for article operations
type ArticleHandler struct {
	uc article.Service
}

// NewArticleHandler creates a new ArticleHandler instance
func NewArticleHandler(uc article.Service) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// ListArticles handles GET /articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var req article.ListArticlesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		// Unparseable paging falls back to defaults
		req = article.ListArticlesRequest{Query: c.Query("query")}
	}

	resp, err := h.uc.ListArticles(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Data: resp.Articles,
		Meta: Meta{
			Total:      resp.Pagination.Total,
			Page:       resp.Pagination.Page,
			Limit:      resp.Pagination.Limit,
			TotalPages: resp.Pagination.TotalPages,
		},
	})
}

// GetArticle handles GET /articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	a, err := h.uc.GetArticle(c.Request.Context(), article.GetArticleRequest{ID: id})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: a})
}

// CreateArticle handles POST /articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req article.CreateArticleRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	a, err := h.uc.CreateArticle(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, DataResponse{Data: a})
}

// UpdateArticle handles PUT /articles/:id
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req article.UpdateArticleRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	req.ID = id

	a, err := h.uc.UpdateArticle(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: a})
}

// DeleteArticle handles DELETE /articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.uc.DeleteArticle(c.Request.Context(), article.DeleteArticleRequest{ID: id}); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
