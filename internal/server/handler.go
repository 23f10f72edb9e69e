package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/stylist/internal/common"
	"github.com/Veraticus/stylist/internal/model"
	"github.com/Veraticus/stylist/internal/service"
	"github.com/Veraticus/stylist/internal/storage"
)

// Recommender produces recommendations for a shop.
type Recommender interface {
	Recommend(ctx context.Context, shopID string, prefs model.Preferences) (model.Recommendation, error)
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	recommender Recommender
	history     service.HistoryStore
	version     string
}

// NewHandler creates a new HTTP handler.
func NewHandler(recommender Recommender, history service.HistoryStore, version string) *Handler {
	return &Handler{recommender: recommender, history: history, version: version}
}

type recommendRequest struct {
	ShopID     string `json:"shop_id" binding:"required,max=255"`
	BudgetTier string `json:"budget_tier" binding:"required"`
	Size       string `json:"size"`
	Style      string `json:"style"`
	Occasion   string `json:"occasion"`
	Weather    string `json:"weather"`
}

type historyQuery struct {
	ShopID string `form:"shop_id" binding:"required,max=255"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylist",
		"version": h.version,
	})
}

// Recommend handles recommendation submissions.
func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "shop_id and budget_tier are required"})
		return
	}

	tier, err := model.ParseBudgetTier(req.BudgetTier)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	prefs := model.Preferences{
		BudgetTier: tier,
		Size:       req.Size,
		Style:      req.Style,
		Occasion:   req.Occasion,
		Weather:    req.Weather,
	}

	rec, err := h.recommender.Recommend(c.Request.Context(), req.ShopID, prefs)
	if err != nil {
		status := statusFor(err)
		common.LogError(c.Request.Context(), err, "recommendation failed", common.Fields{
			"shop_id": req.ShopID,
			"status":  status,
		})
		c.JSON(status, errorResponse{Error: common.UserMessage(err, http.StatusText(status))})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// History returns the most recent recommendations of a shop.
func (h *Handler) History(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "shop_id is required and limit must be positive"})
		return
	}
	if q.Limit == 0 {
		q.Limit = storage.DefaultHistoryLimit
	}

	records, err := h.history.GetRecentRecommendations(c.Request.Context(), q.ShopID, q.Limit)
	if err != nil {
		common.LogError(c.Request.Context(), err, "history lookup failed", common.Fields{"shop_id": q.ShopID})
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "history is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidPreferences):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnknownShop):
		return http.StatusNotFound
	case errors.Is(err, common.ErrCatalogUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
