package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/domain/repositories"
	"merchant-kita.onboarding/internal/interfaces/http/middleware"
	"merchant-kita.onboarding/internal/interfaces/http/response"
	"merchant-kita.onboarding/internal/usecases"
)

// ComplianceHandler handles compliance record and screen-routing endpoints
type ComplianceHandler struct {
	client repositories.RecordClient
	router *usecases.StatusRouter
}

// NewComplianceHandler creates a new compliance handler
func NewComplianceHandler(client repositories.RecordClient, router *usecases.StatusRouter) *ComplianceHandler {
	return &ComplianceHandler{client: client, router: router}
}

// GetRecord returns the remote compliance record for the selected merchant
// GET /api/v1/compliance
func (h *ComplianceHandler) GetRecord(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	record, err := h.client.Fetch(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, record)
}

// GetScreen resolves which compliance screen the client should render.
// ?restart=1 on a rejected record resets the draft and returns the wizard.
// GET /api/v1/compliance/screen
func (h *ComplianceHandler) GetScreen(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	record, err := h.client.Fetch(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	restart := c.Query("restart") == "1"
	screen, err := h.router.Resolve(c.Request.Context(), code, record.Status, restart)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"screen":   screen,
		"status":   record.Status,
		"progress": record.Progress,
	})
}
