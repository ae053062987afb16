package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/infrastructure/jobs"
	"merchant-kita.onboarding/internal/interfaces/http/middleware"
	"merchant-kita.onboarding/internal/interfaces/http/response"
	"merchant-kita.onboarding/internal/usecases"
)

// WizardHandler handles the onboarding wizard endpoints
type WizardHandler struct {
	wizard   *usecases.WizardUsecase
	autosave *jobs.AutosaveJob
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizard *usecases.WizardUsecase, autosave *jobs.AutosaveJob) *WizardHandler {
	return &WizardHandler{wizard: wizard, autosave: autosave}
}

// GetState returns the current wizard state for the selected merchant
// GET /api/v1/wizard
func (h *WizardHandler) GetState(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	state, err := h.wizard.Load(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// Next advances the wizard one step
// POST /api/v1/wizard/next
func (h *WizardHandler) Next(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	var input usecases.NextInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	// Any step data still waiting on the debounce must land before the step
	// is validated and sent.
	h.autosave.Flush(code)

	state, err := h.wizard.Next(c.Request.Context(), code, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// Back moves the wizard one step backwards
// POST /api/v1/wizard/back
func (h *WizardHandler) Back(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	state, err := h.wizard.Back(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// Submit starts remote verification for the completed wizard
// POST /api/v1/wizard/submit
func (h *WizardHandler) Submit(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	h.autosave.Flush(code)

	state, err := h.wizard.Submit(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// UpdateDraft queues a partial draft update behind the autosave debounce
// PUT /api/v1/wizard/draft
func (h *WizardHandler) UpdateDraft(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	var patch entities.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	h.autosave.Touch(code, &patch)

	response.Success(c, http.StatusAccepted, gin.H{
		"queued": h.autosave.Pending(code),
	})
}

// EditOwner begins an in-place edit of an existing representative
// POST /api/v1/wizard/owners/:id/edit
func (h *WizardHandler) EditOwner(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid owner id")
		return
	}

	state, err := h.wizard.EditOwner(c.Request.Context(), code, ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// RemoveOwner deletes a representative from the draft
// DELETE /api/v1/wizard/owners/:id
func (h *WizardHandler) RemoveOwner(c *gin.Context) {
	code, ok := middleware.GetMerchantCode(c)
	if !ok {
		response.Error(c, domainerrors.ErrMerchantCodeRequired)
		return
	}

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid owner id")
		return
	}

	state, err := h.wizard.RemoveOwner(c.Request.Context(), code, ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}
