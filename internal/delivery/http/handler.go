package http

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hvutuan2514/SkincareApp/internal/domain"
	"github.com/hvutuan2514/SkincareApp/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendations *usecase.RecommendationService
}

// NewHandler creates a new HTTP handler
func NewHandler(recommendations *usecase.RecommendationService) *Handler {
	return &Handler{
		recommendations: recommendations,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skincare-backend",
		"version": "1.0.0",
	})
}

// recommendationRequest is the JSON body for recommendation endpoints.
type recommendationRequest struct {
	SkinType        string            `json:"skinType"`
	SkinColor       string            `json:"skinColor"`
	IsSensitive     bool              `json:"isSensitive"`
	Concerns        []string          `json:"concerns"`
	ConcernSubtypes map[string]string `json:"concernSubtypes"`
	Routine         []string          `json:"routine"`
}

func (r recommendationRequest) toProfile() domain.SkinProfile {
	profile := domain.SkinProfile{
		SkinType:        r.SkinType,
		SkinColor:       r.SkinColor,
		IsSensitive:     r.IsSensitive,
		ConcernSubtypes: r.ConcernSubtypes,
		Routine:         r.Routine,
	}
	for _, name := range r.Concerns {
		profile.Concerns = append(profile.Concerns, domain.ConcernRef{Name: name})
	}
	return profile
}

// Recommend handles product recommendation requests
func (h *Handler) Recommend(c *gin.Context) {
	if h.recommendations == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Recommendation service not configured",
		})
		return
	}

	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.recommendations.Recommend(c.Request.Context(), req.toProfile())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecommendGrouped handles recommendation requests grouped by ingredient
func (h *Handler) RecommendGrouped(c *gin.Context) {
	if h.recommendations == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Recommendation service not configured",
		})
		return
	}

	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.recommendations.RecommendGrouped(c.Request.Context(), req.toProfile())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// analysisRequest is the JSON body for the skin analysis endpoint. The image
// is base64-encoded (data URL prefixes are not accepted).
type analysisRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mimeType"`
}

// AnalyzeSkin handles image-based skin analysis requests
func (h *Handler) AnalyzeSkin(c *gin.Context) {
	if h.recommendations == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Recommendation service not configured",
		})
		return
	}

	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image must be base64-encoded",
		})
		return
	}

	result, err := h.recommendations.AnalyzeSkin(c.Request.Context(), image, req.MimeType)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// filterRequest is the JSON body for the price filter endpoint.
type filterRequest struct {
	Products []domain.ScoredProduct `json:"products"`
	MinPrice string                 `json:"minPrice"`
	MaxPrice string                 `json:"maxPrice"`
}

// FilterProducts filters an already-scored product list by price range
func (h *Handler) FilterProducts(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	filtered, err := usecase.FilterByPrice(req.Products, req.MinPrice, req.MaxPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": filtered,
	})
}

// writeError maps domain errors to HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Product store temporarily unavailable",
		})
	case errors.Is(err, domain.ErrClassifierUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Skin analysis temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
