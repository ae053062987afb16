package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"merchant-kita.onboarding/internal/domain/entities"
	domainerrors "merchant-kita.onboarding/internal/domain/errors"
	"merchant-kita.onboarding/internal/domain/repositories"
	"merchant-kita.onboarding/internal/infrastructure/mirror"
	"merchant-kita.onboarding/pkg/logger"
)

// EnvironmentUsecase owns the global test/live mode. Live mode is only
// reachable once compliance is fully verified; any progress event below the
// threshold forces the mode back to test.
type EnvironmentUsecase struct {
	settings repositories.SettingRepository
	client   repositories.RecordClient
}

// NewEnvironmentUsecase creates a new environment usecase
func NewEnvironmentUsecase(settings repositories.SettingRepository, client repositories.RecordClient) *EnvironmentUsecase {
	return &EnvironmentUsecase{settings: settings, client: client}
}

// Mode returns the current mode, defaulting to test.
func (u *EnvironmentUsecase) Mode(ctx context.Context) (entities.EnvMode, error) {
	v, err := u.settings.Get(ctx, repositories.SettingEnvMode)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return entities.EnvModeTest, nil
	}
	if err != nil {
		return "", err
	}

	mode := entities.EnvMode(v)
	if !mode.Valid() {
		return entities.EnvModeTest, nil
	}
	return mode, nil
}

// SetMode switches the mode. Switching to live requires the merchant's
// compliance record to be fully verified.
func (u *EnvironmentUsecase) SetMode(ctx context.Context, merchantCode string, mode entities.EnvMode) (entities.EnvMode, error) {
	if !mode.Valid() {
		return "", domainerrors.BadRequest("unknown environment mode")
	}

	if mode == entities.EnvModeLive {
		record, err := u.client.Fetch(ctx, merchantCode)
		if err != nil {
			return "", err
		}
		if !record.FullyVerified() {
			return "", domainerrors.NewAppError(403, "compliance must be completed before going live", domainerrors.ErrComplianceIncomplete)
		}
	}

	if err := u.settings.Set(ctx, repositories.SettingEnvMode, string(mode)); err != nil {
		return "", err
	}
	return mode, nil
}

// WatchProgress reverts live mode to test whenever a progress event drops
// below the verified threshold. It blocks until the context is cancelled or
// the event channel closes.
func (u *EnvironmentUsecase) WatchProgress(ctx context.Context, events <-chan mirror.ProgressEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Progress >= entities.ProgressSubmitted {
				continue
			}
			mode, err := u.Mode(ctx)
			if err != nil || mode != entities.EnvModeLive {
				continue
			}
			if err := u.settings.Set(ctx, repositories.SettingEnvMode, string(entities.EnvModeTest)); err != nil {
				logger.Warn(ctx, "environment revert failed", zap.Error(err))
				continue
			}
			logger.Info(ctx, "environment reverted to test",
				zap.String("merchant_code", ev.MerchantCode),
				zap.Int("progress", ev.Progress),
			)
		}
	}
}
