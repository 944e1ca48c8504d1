package handlers

import (
	"net/http"

	"cleanops-backend/address"
	"cleanops-backend/service"

	"github.com/gin-gonic/gin"
)

// AddressHandler handles HTTP requests for address validation
type AddressHandler struct {
	validator service.AddressValidator
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(validator service.AddressValidator) *AddressHandler {
	return &AddressHandler{validator: validator}
}

// ValidateAddressRequest represents the request body for address validation
type ValidateAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// ValidateAddress handles POST /api/address/validate
func (h *AddressHandler) ValidateAddress(c *gin.Context) {
	var req ValidateAddressRequest
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

	candidates := h.validator.Validate(c.Request.Context(), req.Address)

	// The UI shows an "unverified" warning for anything the LLM did not
	// confirm.
	verified := len(candidates) > 0 && candidates[0].Source == address.SourceLLM

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"candidates": candidates,
			"verified":   verified,
		},
	})
}
