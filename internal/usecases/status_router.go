package usecases

import (
	"context"

	"go.uber.org/zap"
	"merchant-kita.onboarding/internal/domain/entities"
	"merchant-kita.onboarding/pkg/logger"
)

// ResolveScreen maps a compliance status onto the screen the merchant lands
// on. Unknown statuses fall through to the wizard so a new status value from
// the remote service never locks anyone out.
func ResolveScreen(status entities.ComplianceStatus) entities.Screen {
	switch status {
	case entities.ComplianceStatusUnderReview:
		return entities.ScreenUnderReview
	case entities.ComplianceStatusApproved,
		entities.ComplianceStatusRejected,
		entities.ComplianceStatusPending:
		return entities.ScreenStatus
	default:
		return entities.ScreenWizard
	}
}

// StatusRouter resolves the landing screen and owns the single destructive
// path: restarting a rejected submission.
type StatusRouter struct {
	wizard *WizardUsecase
}

// NewStatusRouter creates a new status router
func NewStatusRouter(wizard *WizardUsecase) *StatusRouter {
	return &StatusRouter{wizard: wizard}
}

// Resolve returns the screen for a status. When the submission was rejected
// and the merchant asked to start over, the local draft is wiped first and
// the merchant lands on a fresh wizard.
func (r *StatusRouter) Resolve(ctx context.Context, merchantCode string, status entities.ComplianceStatus, restart bool) (entities.Screen, error) {
	if status == entities.ComplianceStatusRejected && restart {
		if err := r.wizard.ResetDraft(ctx, merchantCode); err != nil {
			return "", err
		}
		logger.Info(ctx, "draft reset after rejection",
			zap.String("merchant_code", merchantCode),
		)
		return entities.ScreenWizard, nil
	}
	return ResolveScreen(status), nil
}
