package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wayfare/tripplan-backend-go/internal/models"
	"github.com/wayfare/tripplan-backend-go/internal/service"
	"github.com/wayfare/tripplan-backend-go/pkg/response"
)

// OptimizationHandler handles HTTP requests for itinerary optimization
type OptimizationHandler struct {
	service *service.OptimizationService
}

// NewOptimizationHandler creates a new optimization handler
func NewOptimizationHandler(service *service.OptimizationService) *OptimizationHandler {
	return &OptimizationHandler{service: service}
}

// Optimize handles POST /api/v1/trips/:tripId/optimize
func (h *OptimizationHandler) Optimize(c *gin.Context) {
	var req models.OptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	// the path is authoritative for the trip id
	req.TripID = c.Param("tripId")
	if req.TripID == "" {
		response.BadRequest(c, "Trip ID is required", nil)
		return
	}

	result, err := h.service.Optimize(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, "Failed to run optimization", err)
		return
	}

	if !result.Attempted {
		response.Error(c, http.StatusUnprocessableEntity, result.Reason, nil)
		return
	}

	response.Success(c, result)
}

// GetResult handles GET /api/v1/trips/:tripId/result
func (h *OptimizationHandler) GetResult(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		response.BadRequest(c, "Trip ID is required", nil)
		return
	}

	stored, err := h.service.GetActiveResult(tripID)
	if err != nil {
		response.InternalError(c, "Failed to get result", err)
		return
	}
	if stored == nil {
		response.NotFound(c, "No optimization result for this trip")
		return
	}

	response.Success(c, stored)
}

// ListResults handles GET /api/v1/trips/:tripId/results
func (h *OptimizationHandler) ListResults(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		response.BadRequest(c, "Trip ID is required", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	results, total, err := h.service.ListResults(tripID, page, pageSize)
	if err != nil {
		response.InternalError(c, "Failed to list results", err)
		return
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       results,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
		"totalPages": totalPages,
	})
}
