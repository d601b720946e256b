package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Saarathi-n/eshopzz/internal/domain"
	"github.com/Saarathi-n/eshopzz/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pipeline *usecase.Pipeline
}

// NewHandler creates a new HTTP handler
func NewHandler(pipeline *usecase.Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// productPayload is the outbound product shape: the domain record plus the
// derived has_comparison flag.
type productPayload struct {
	domain.ProductRecord
	HasComparison bool `json:"has_comparison"`
}

// filtersRequest mirrors domain.FilterSpec on the wire.
type filtersRequest struct {
	Category   string      `json:"category"`
	PriceRange *priceRange `json:"price_range" binding:"omitempty"`
	MinRating  *float64    `json:"min_rating" binding:"omitempty,min=0,max=5"`
	PrimeOnly  bool        `json:"prime_only"`
}

type priceRange struct {
	Min float64 `json:"min" binding:"min=0"`
	Max float64 `json:"max" binding:"min=0,gtefield=Min"`
}

// sortRequest carries a sort mode change.
type sortRequest struct {
	Sort string `json:"sort" binding:"required,oneof=relevance price_asc price_desc rating"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "eshopzz",
		"version": "1.0.0",
	})
}

// Index returns API info
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "eshopzz API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"/api/v1/search":  "GET - Search products (params: q, sort)",
			"/api/v1/filters": "PUT - Update filter spec",
			"/api/v1/sort":    "PUT - Update sort mode",
			"/api/v1/results": "GET - Current result view",
			"/health":         "GET - Health check",
		},
		"sort_options": []domain.SortMode{
			domain.SortRelevance, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortRating,
		},
	})
}

// Search handles product search requests. The query is submitted through
// the pipeline; an optional sort parameter is applied first so the response
// is already ordered.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")

	if sortParam := c.Query("sort"); sortParam != "" {
		h.pipeline.SetSortMode(domain.ParseSortMode(sortParam))
	}

	view, err := h.pipeline.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":  false,
				"error":    `Query parameter "q" is required`,
				"products": []productPayload{},
			})
			return
		}

		c.JSON(http.StatusBadGateway, gin.H{
			"success":  false,
			"error":    err.Error(),
			"products": []productPayload{},
		})
		return
	}

	respondView(c, view)
}

// UpdateFilters replaces the active filter spec and returns the recomputed
// view. No retrieval is triggered.
func (h *Handler) UpdateFilters(c *gin.Context) {
	var req filtersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	spec := domain.FilterSpec{
		Category:  req.Category,
		MinRating: req.MinRating,
		PrimeOnly: req.PrimeOnly,
	}
	if spec.Category == "" {
		spec.Category = domain.AllCategories
	}
	if req.PriceRange != nil {
		spec.PriceRange = &domain.PriceRange{Min: req.PriceRange.Min, Max: req.PriceRange.Max}
	}

	respondView(c, h.pipeline.SetFilters(spec))
}

// UpdateSort replaces the sort mode and returns the recomputed view.
func (h *Handler) UpdateSort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	respondView(c, h.pipeline.SetSortMode(domain.ParseSortMode(req.Sort)))
}

// Results returns the current view without side effects.
func (h *Handler) Results(c *gin.Context) {
	respondView(c, h.pipeline.Snapshot())
}

// respondView writes the standard result envelope for a pipeline view.
func respondView(c *gin.Context, view usecase.View) {
	products := make([]productPayload, 0, len(view.Displayed))
	for _, p := range view.Displayed {
		products = append(products, productPayload{
			ProductRecord: p,
			HasComparison: p.HasMatch(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"query":       view.Query,
		"phase":       view.Phase,
		"count":       len(products),
		"total":       view.Total,
		"is_fallback": view.IsFallback,
		"products":    products,
	})
}
