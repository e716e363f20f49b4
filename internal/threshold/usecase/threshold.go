package usecase

import (
	"context"

	"aquasentry-srv/internal/model"
	"aquasentry-srv/internal/threshold"
	"aquasentry-srv/internal/threshold/repository"

	"github.com/friendsofgo/errors"
)

const roleAdmin = "admin"

// Current returns the active configuration. Store failures degrade to
// the compiled-in defaults so evaluation keeps running.
func (uc *implUseCase) Current(ctx context.Context) model.ThresholdConfig {
	cfg, err := uc.repo.Detail(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.l.Warnf(ctx, "internal.threshold.usecase.Current.Detail: falling back to defaults: %v", err)
		}
		return model.DefaultThresholdConfig()
	}
	return cfg
}

func (uc *implUseCase) Update(ctx context.Context, input threshold.UpdateInput) (model.ThresholdConfig, error) {
	if input.Scope.Role != roleAdmin {
		return model.ThresholdConfig{}, threshold.ErrPermissionDenied
	}
	if err := validateConfig(input.Config); err != nil {
		uc.l.Warnf(ctx, "internal.threshold.usecase.Update.Validate: %v", err)
		return model.ThresholdConfig{}, threshold.ErrInvalidConfig
	}

	if err := uc.repo.Upsert(ctx, input.Config); err != nil {
		uc.l.Errorf(ctx, "internal.threshold.usecase.Update.Upsert: %v", err)
		return model.ThresholdConfig{}, err
	}
	return input.Config, nil
}

// validateConfig rejects documents that would make evaluation
// nonsensical: unknown parameters, inverted bounds, or a negative
// trend window.
func validateConfig(cfg model.ThresholdConfig) error {
	if len(cfg.Parameters) == 0 {
		return errors.New("no parameters configured")
	}
	for param, th := range cfg.Parameters {
		if !param.IsValid() {
			return errors.Errorf("unknown parameter %q", param)
		}
		if th.WarningMin != nil && th.WarningMax != nil && *th.WarningMin > *th.WarningMax {
			return errors.Errorf("%s: warning bounds inverted", param)
		}
		if th.CriticalMin != nil && th.CriticalMax != nil && *th.CriticalMin > *th.CriticalMax {
			return errors.Errorf("%s: critical bounds inverted", param)
		}
	}
	if cfg.TrendDetection.Enabled {
		if cfg.TrendDetection.ThresholdPercentage <= 0 {
			return errors.New("trend threshold percentage must be positive")
		}
		if cfg.TrendDetection.TimeWindowMinutes <= 0 {
			return errors.New("trend time window must be positive")
		}
	}
	return nil
}
