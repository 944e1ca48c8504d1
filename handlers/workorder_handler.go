package handlers

import (
	"errors"
	"net/http"
	"time"

	"cleanops-backend/models"
	"cleanops-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkOrderHandler handles HTTP requests for work orders
type WorkOrderHandler struct {
	orderService *service.WorkOrderService
	quoteService *service.QuoteService
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(orderService *service.WorkOrderService, quoteService *service.QuoteService) *WorkOrderHandler {
	return &WorkOrderHandler{
		orderService: orderService,
		quoteService: quoteService,
	}
}

// CreateWorkOrderRequest represents the request body for booking a job
type CreateWorkOrderRequest struct {
	CustomerName  string     `json:"customer_name" binding:"required"`
	CustomerPhone string     `json:"customer_phone"`
	Address       string     `json:"address" binding:"required"`
	ServiceType   string     `json:"service_type" binding:"required"`
	Hours         float64    `json:"hours" binding:"required"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	Notes         *string    `json:"notes"`
}

// CreateWorkOrder handles POST /api/work-orders
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.orderService.CreateWorkOrder(c.Request.Context(), service.CreateWorkOrderRequest{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		RawAddress:    req.Address,
		ServiceType:   req.ServiceType,
		Hours:         req.Hours,
		ScheduledAt:   req.ScheduledAt,
		Notes:         req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"work_order":         result.Order,
			"address_candidates": result.Candidates,
		},
	})
}

// GetWorkOrder handles GET /api/work-orders/:id
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid work order ID format",
			},
		})
		return
	}

	order, err := h.orderService.GetWorkOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Work order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AssignTeamRequest represents the request body for assigning a team
type AssignTeamRequest struct {
	TeamID string `json:"team_id" binding:"required"`
}

// AssignTeam handles POST /api/work-orders/:id/assign
func (h *WorkOrderHandler) AssignTeam(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid work order ID format",
			},
		})
		return
	}

	var req AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TEAM_ID",
				"message": "Invalid team_id format",
			},
		})
		return
	}

	order, err := h.orderService.AssignTeam(c.Request.Context(), orderID, teamID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "ASSIGN_FAILED"
		switch {
		case errors.Is(err, service.ErrWorkOrderNotFound), errors.Is(err, service.ErrTeamNotFound):
			status = http.StatusNotFound
			code = "NOT_FOUND"
		case errors.Is(err, service.ErrTeamInactive):
			status = http.StatusConflict
			code = "TEAM_INACTIVE"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateStatusRequest represents the request body for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles POST /api/work-orders/:id/status
func (h *WorkOrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid work order ID format",
			},
		})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, models.WorkOrderStatus(req.Status))
	if err != nil {
		status := http.StatusInternalServerError
		code := "UPDATE_FAILED"
		switch {
		case errors.Is(err, service.ErrWorkOrderNotFound):
			status = http.StatusNotFound
			code = "NOT_FOUND"
		case errors.Is(err, service.ErrInvalidTransition):
			status = http.StatusConflict
			code = "INVALID_TRANSITION"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListWorkOrders handles GET /api/work-orders
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	var status *models.WorkOrderStatus
	if s := c.Query("status"); s != "" {
		v := models.WorkOrderStatus(s)
		status = &v
	}

	var teamID *uuid.UUID
	if t := c.Query("team_id"); t != "" {
		id, err := uuid.Parse(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TEAM_ID",
					"message": "Invalid team_id format",
				},
			})
			return
		}
		teamID = &id
	}

	orders, err := h.orderService.ListWorkOrders(c.Request.Context(), status, teamID, 50, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// QuoteRequest represents the request body for a price quote
type QuoteRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	ServiceType  string  `json:"service_type" binding:"required"`
	Hours        float64 `json:"hours" binding:"required"`
}

// GenerateQuote handles POST /api/quotes
func (h *WorkOrderHandler) GenerateQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	quote, err := h.quoteService.GenerateQuote(c.Request.Context(), service.QuoteRequest{
		CustomerName: req.CustomerName,
		ServiceType:  req.ServiceType,
		Hours:        req.Hours,
	})
	if err != nil {
		status := http.StatusInternalServerError
		code := "QUOTE_FAILED"
		if errors.Is(err, service.ErrUnknownServiceType) {
			status = http.StatusBadRequest
			code = "UNKNOWN_SERVICE_TYPE"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}
