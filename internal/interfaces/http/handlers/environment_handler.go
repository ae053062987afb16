package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/interfaces/http/middleware"
	"merchant-kita.onboarding/internal/interfaces/http/response"
	"merchant-kita.onboarding/internal/usecases"
)

// EnvironmentHandler handles the environment mode endpoints
type EnvironmentHandler struct {
	env *usecases.EnvironmentUsecase
}

// NewEnvironmentHandler creates a new environment handler
func NewEnvironmentHandler(env *usecases.EnvironmentUsecase) *EnvironmentHandler {
	return &EnvironmentHandler{env: env}
}

// GetMode returns the current environment mode
// GET /api/v1/environment
func (h *EnvironmentHandler) GetMode(c *gin.Context) {
	mode, err := h.env.Mode(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mode": mode})
}

// PutMode switches the environment mode. Live mode requires the selected
// merchant's compliance to be fully verified.
// PUT /api/v1/environment
func (h *EnvironmentHandler) PutMode(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	var input struct {
		Mode entities.EnvMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	mode, err := h.env.SetMode(c.Request.Context(), code, input.Mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mode": mode})
}
