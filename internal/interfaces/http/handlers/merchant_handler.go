package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"merchant-kita.onboarding/internal/domain/entities"
	"merchant-kita.onboarding/internal/interfaces/http/middleware"
	"merchant-kita.onboarding/internal/interfaces/http/response"
	"merchant-kita.onboarding/internal/usecases"
)

// MerchantHandler handles merchant selection endpoints
type MerchantHandler struct {
	merchants *usecases.MerchantUsecase
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchants *usecases.MerchantUsecase) *MerchantHandler {
	return &MerchantHandler{merchants: merchants}
}

// GetSelection returns the merchant list and the current selection
// GET /api/v1/merchants/selection
func (h *MerchantHandler) GetSelection(c *gin.Context) {
	available := make([]entities.Merchant, 0)
	for _, m := range middleware.GetMerchants(c) {
		available = append(available, entities.Merchant{
			MerchantCode: m.MerchantCode,
			MerchantName: m.MerchantName,
		})
	}

	selection, err := h.merchants.Selection(c.Request.Context(), available)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, selection)
}

// PutSelection switches the selected merchant
// PUT /api/v1/merchants/selection
func (h *MerchantHandler) PutSelection(c *gin.Context) {
	var input struct {
		MerchantCode string `json:"merchantCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	selection, err := h.merchants.Select(c.Request.Context(), input.MerchantCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, selection)
}
