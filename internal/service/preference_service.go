package service

import (
	"context"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/repository"
)

// PreferenceService handles per-user tax configuration.
type PreferenceService struct {
	preferenceRepo *repository.PreferenceRepository
}

// NewPreferenceService creates a new PreferenceService with the provided repository dependency.
func NewPreferenceService(preferenceRepo *repository.PreferenceRepository) *PreferenceService {
	return &PreferenceService{preferenceRepo: preferenceRepo}
}

// GetPreference retrieves a user's tax preferences, falling back to defaults
// when the user has never saved any.
func (s *PreferenceService) GetPreference(userID string) (model.TaxPreference, error) {
	pref, found, err := s.preferenceRepo.GetPreference(userID)
	if err != nil {
		return model.TaxPreference{}, err
	}
	if !found {
		return model.DefaultTaxPreference(userID, time.Now()), nil
	}
	return pref, nil
}

// UpdatePreference applies a partial update on top of the user's current (or
// default) preferences and stores the result.
func (s *PreferenceService) UpdatePreference(ctx context.Context, userID string, req request.UpdatePreferenceRequest) (model.TaxPreference, error) {
	pref, err := s.GetPreference(userID)
	if err != nil {
		return model.TaxPreference{}, err
	}

	if req.TaxJurisdiction != nil {
		pref.TaxJurisdiction = *req.TaxJurisdiction
	}
	if req.DefaultTaxYear != nil {
		pref.DefaultTaxYear = *req.DefaultTaxYear
	}
	if req.ShortTermThresholdDays != nil {
		pref.ShortTermThresholdDays = *req.ShortTermThresholdDays
	}
	if req.EnableWashSaleDetection != nil {
		pref.EnableWashSaleDetection = *req.EnableWashSaleDetection
	}
	if req.WashSaleWindowDays != nil {
		pref.WashSaleWindowDays = *req.WashSaleWindowDays
	}
	if req.AutoHarvestLosses != nil {
		pref.AutoHarvestLosses = *req.AutoHarvestLosses
	}
	if req.HarvestThresholdPercent != nil {
		pref.HarvestThresholdPercent = *req.HarvestThresholdPercent
	}
	if req.MinHarvestAmount != nil {
		pref.MinHarvestAmount = *req.MinHarvestAmount
	}

	if err := s.preferenceRepo.UpsertPreference(ctx, &pref); err != nil {
		return model.TaxPreference{}, err
	}

	return pref, nil
}
