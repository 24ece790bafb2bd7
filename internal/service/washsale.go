package service

import (
	"time"

	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/repository"
)

// WashSaleDetector scans loss dispositions against nearby replacement
// acquisitions of the same symbol. "Substantially identical" is defined
// narrowly as an exact symbol match; ETF/option equivalence is not modeled.
type WashSaleDetector struct {
	lotRepo *repository.LotRepository
}

// NewWashSaleDetector creates a new WashSaleDetector with the provided repository dependency.
func NewWashSaleDetector(lotRepo *repository.LotRepository) *WashSaleDetector {
	return &WashSaleDetector{lotRepo: lotRepo}
}

// FindReplacement searches the user's acquisitions (open or closed) of the
// symbol with an acquisition date within ±windowDays of the disposition date,
// excluding the ids in excludeLotIDs (the lot being disposed and its
// remainder, which share one acquisition). Returns the earliest matching
// replacement lot, or nil when the disposition is not a wash sale.
func (d *WashSaleDetector) FindReplacement(userID, symbol string, dispositionDate time.Time, windowDays int, excludeLotIDs ...string) (*model.TaxLot, error) {
	start := dispositionDate.AddDate(0, 0, -windowDays)
	end := dispositionDate.AddDate(0, 0, windowDays)

	candidates, err := d.lotRepo.GetAcquisitionsInWindow(userID, symbol, start, end)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(excludeLotIDs))
	for _, id := range excludeLotIDs {
		excluded[id] = true
	}

	// Candidates arrive ordered by acquisition date ascending, so the first
	// non-excluded lot is the earliest replacement.
	for i := range candidates {
		if excluded[candidates[i].ID] {
			continue
		}
		return &candidates[i], nil
	}

	return nil, nil
}
