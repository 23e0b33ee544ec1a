package service

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/akash-kant/searchsearviceusingtavily/internal/pkg/errors"
	"github.com/akash-kant/searchsearviceusingtavily/internal/pkg/logger"
	"github.com/akash-kant/searchsearviceusingtavily/internal/pkg/response"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/biz"
)

// SearchService exposes the search use case over HTTP
type SearchService struct {
	uc     *biz.SearchUseCase
	logger *logger.Logger
}

// NewSearchService creates the search HTTP service
func NewSearchService(uc *biz.SearchUseCase, logger *logger.Logger) *SearchService {
	return &SearchService{
		uc:     uc,
		logger: logger,
	}
}

// RegisterRoutes mounts the search and cache-admin endpoints
func (s *SearchService) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/search", s.SearchPost)
	r.GET("/search", s.SearchGet)
	r.GET("/cache/stats", s.CacheStats)
	r.DELETE("/cache", s.ClearCache)
}

// SearchPost handles a JSON-body search request
func (s *SearchService) SearchPost(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInvalidParams))
		return
	}

	result := s.uc.Search(c.Request.Context(), req.Query, req.CallerToken, req.Config())
	response.Success(c, result)
}

// SearchGet handles a query-parameter search request
func (s *SearchService) SearchGet(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInvalidParams))
		return
	}

	result := s.uc.Search(c.Request.Context(), req.Query, req.CallerToken, req.Config())
	response.Success(c, result)
}

// CacheStats reports the cache size and fingerprints
func (s *SearchService) CacheStats(c *gin.Context) {
	resultCache := s.uc.Cache()
	response.Success(c, CacheStatsResponse{
		Size: resultCache.Len(),
		Keys: resultCache.Keys(),
	})
}

// ClearCache drops every cached response
func (s *SearchService) ClearCache(c *gin.Context) {
	s.uc.Cache().Clear()
	response.Success(c, gin.H{"cleared": true})
}
