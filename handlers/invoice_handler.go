package handlers

import (
	"errors"
	"io"
	"net/http"

	"cleanops-backend/service"
	"cleanops-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	documents      storage.Storage
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, documents storage.Storage) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		documents:      documents,
	}
}

// GenerateInvoiceRequest represents the request body for raising an invoice
type GenerateInvoiceRequest struct {
	WorkOrderID string `json:"work_order_id" binding:"required"`
}

// GenerateInvoice handles POST /api/invoices
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	var req GenerateInvoiceRequest
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

	workOrderID, err := uuid.Parse(req.WorkOrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_WORK_ORDER_ID",
				"message": "Invalid work_order_id format",
			},
		})
		return
	}

	invoice, err := h.invoiceService.GenerateInvoice(c.Request.Context(), workOrderID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "GENERATE_FAILED"
		switch {
		case errors.Is(err, service.ErrWorkOrderNotFound):
			status = http.StatusNotFound
			code = "NOT_FOUND"
		case errors.Is(err, service.ErrOrderNotCompleted):
			status = http.StatusConflict
			code = "ORDER_NOT_COMPLETED"
		case errors.Is(err, service.ErrUnknownServiceType):
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

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    invoice,
	})
}

// GetInvoice handles GET /api/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid invoice ID format",
			},
		})
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Invoice not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    invoice,
	})
}

// GetForWorkOrder handles GET /api/work-orders/:id/invoice
func (h *InvoiceHandler) GetForWorkOrder(c *gin.Context) {
	workOrderID, err := uuid.Parse(c.Param("id"))
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

	invoice, err := h.invoiceService.GetInvoiceForWorkOrder(c.Request.Context(), workOrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "No invoice raised for this work order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    invoice,
	})
}

// DownloadDocument handles GET /api/invoices/:id/document
func (h *InvoiceHandler) DownloadDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid invoice ID format",
			},
		})
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Invoice not found",
			},
		})
		return
	}

	if invoice.DocumentKey == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_DOCUMENT",
				"message": "No document stored for this invoice",
			},
		})
		return
	}

	reader, err := h.documents.Download(c.Request.Context(), *invoice.DocumentKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename="+invoice.Number+".txt")
	c.Header("Content-Type", "text/plain")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already sent at this point, so just record the failure.
		_ = c.Error(err)
	}
}
