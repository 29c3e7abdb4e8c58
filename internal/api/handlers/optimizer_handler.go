package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minhle/fnb-optimizer/internal/forecast"
	"github.com/minhle/fnb-optimizer/internal/service"
)

type OptimizerHandler struct {
	service *service.OptimizerService
}

func NewOptimizerHandler(service *service.OptimizerService) *OptimizerHandler {
	return &OptimizerHandler{service: service}
}

func parseDays(c *gin.Context, fallback int) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(fallback)))
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}

func (h *OptimizerHandler) GetForecast(c *gin.Context) {
	days := parseDays(c, 7)

	points, err := h.service.ForecastDemand(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, forecast.ErrHorizonOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid forecast horizon", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to forecast demand", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":     days,
		"forecast": points,
	})
}

func (h *OptimizerHandler) GetRestockingNeeds(c *gin.Context) {
	days := parseDays(c, 7)

	decisions, err := h.service.RestockingNeeds(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, forecast.ErrHorizonOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid forecast horizon", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate restocking needs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":       days,
		"restocking": decisions,
	})
}

func (h *OptimizerHandler) GetNearExpiry(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	materials, err := h.service.NearExpiryMaterials(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find near-expiry materials", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

func (h *OptimizerHandler) GetRecommendations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	recommendations, err := h.service.RecommendDishes(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to recommend dishes", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

func (h *OptimizerHandler) GetReport(c *gin.Context) {
	days := parseDays(c, 7)

	report, err := h.service.GenerateReport(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, forecast.ErrHorizonOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid forecast horizon", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *OptimizerHandler) InvalidateReports(c *gin.Context) {
	if err := h.service.InvalidateReports(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate reports", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
