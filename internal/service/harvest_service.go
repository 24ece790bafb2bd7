package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/repository"
)

// HarvestService scans open lots for qualifying unrealized-loss opportunities.
// Current prices are handed in by the caller (or fall back to the latest price
// pushed by the market-data collaborator); the engine never fetches prices.
type HarvestService struct {
	lotRepo           *repository.LotRepository
	priceRepo         *repository.PriceRepository
	preferenceService *PreferenceService

	// now is swappable for tests.
	now func() time.Time
}

// NewHarvestService creates a new HarvestService with the provided dependencies.
func NewHarvestService(
	lotRepo *repository.LotRepository,
	priceRepo *repository.PriceRepository,
	preferenceService *PreferenceService,
) *HarvestService {
	return &HarvestService{
		lotRepo:           lotRepo,
		priceRepo:         priceRepo,
		preferenceService: preferenceService,
		now:               time.Now,
	}
}

// FindOpportunities returns one opportunity per open lot carrying an
// unrealized loss. A lot qualifies as harvestable only when the loss meets
// both the threshold percent and the minimum amount, and no same-symbol
// acquisition inside the trailing wash-sale window would disallow the loss if
// it were realized today.
func (s *HarvestService) FindOpportunities(ctx context.Context, req request.FindOpportunitiesRequest) ([]model.HarvestingOpportunity, error) {
	prefs, err := s.preferenceService.GetPreference(req.UserID)
	if err != nil {
		return nil, err
	}

	thresholdPercent := prefs.HarvestThresholdPercent
	if req.ThresholdPercent != nil {
		thresholdPercent = *req.ThresholdPercent
	}
	minAmount := prefs.MinHarvestAmount
	if req.MinAmount != nil {
		minAmount = *req.MinAmount
	}

	openLots, err := s.lotRepo.GetOpenLots(req.UserID)
	if err != nil {
		return nil, err
	}

	prices, err := s.resolvePrices(openLots, req.Prices)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -prefs.WashSaleWindowDays)
	expiresAt := today.AddDate(0, 0, prefs.WashSaleWindowDays)

	// One window scan per symbol, shared across that symbol's lots.
	blockedSymbols := make(map[string]map[string]bool)

	opportunities := []model.HarvestingOpportunity{}
	for _, lot := range openLots {
		price, ok := prices[lot.Symbol]
		if !ok {
			log.Printf("harvest scan: no price for %s, skipping lot %s", lot.Symbol, lot.ID)
			continue
		}

		currentValue := lot.Quantity * price
		unrealizedLoss := currentValue - lot.CostBasis
		if unrealizedLoss >= 0 {
			continue
		}

		// Guarded division: a zero-basis lot reports zero percent and is
		// never harvestable.
		var lossPercent float64
		if lot.CostBasis == 0 {
			lossPercent = 0
		} else {
			lossPercent = unrealizedLoss / lot.CostBasis * 100
		}

		opp := model.HarvestingOpportunity{
			LotID:                 lot.ID,
			Symbol:                lot.Symbol,
			Quantity:              lot.Quantity,
			CostBasis:             lot.CostBasis,
			CurrentPrice:          price,
			CurrentValue:          currentValue,
			UnrealizedLoss:        unrealizedLoss,
			UnrealizedLossPercent: lossPercent,
			HoldingPeriodDays:     holdingPeriodDays(lot.AcquisitionDate, today),
			ExpiresAt:             expiresAt,
		}

		switch {
		case lot.CostBasis == 0:
			opp.ReasonNotHarvestable = model.ReasonZeroCostBasis
		case math.Abs(unrealizedLoss) < minAmount:
			opp.ReasonNotHarvestable = model.ReasonBelowMinimumAmount
		case math.Abs(lossPercent) < thresholdPercent:
			opp.ReasonNotHarvestable = model.ReasonBelowThresholdPercent
		default:
			blocked, err := s.symbolBlocked(blockedSymbols, req.UserID, lot.Symbol, lot.ID, windowStart, today)
			if err != nil {
				return nil, err
			}
			if blocked {
				opp.ReasonNotHarvestable = model.ReasonWashSaleWindowActive
			} else {
				opp.IsHarvestable = true
			}
		}

		opportunities = append(opportunities, opp)
	}

	return opportunities, nil
}

// resolvePrices merges caller-supplied prices with stored latest prices for
// the symbols the caller did not cover.
func (s *HarvestService) resolvePrices(lots []model.TaxLot, supplied map[string]float64) (map[string]float64, error) {
	prices := make(map[string]float64, len(supplied))
	for symbol, price := range supplied {
		prices[symbol] = price
	}

	var missing []string
	seen := make(map[string]bool)
	for _, lot := range lots {
		if _, ok := prices[lot.Symbol]; ok || seen[lot.Symbol] {
			continue
		}
		seen[lot.Symbol] = true
		missing = append(missing, lot.Symbol)
	}

	stored, err := s.priceRepo.GetLatestPrices(missing)
	if err != nil {
		return nil, err
	}
	for symbol, price := range stored {
		prices[symbol] = price
	}

	return prices, nil
}

// symbolBlocked reports whether realizing a loss on the lot today would fall
// inside an active wash-sale window: another acquisition of the same symbol
// within the trailing window. Results are cached per symbol with the blocking
// lot ids, so one lot on a symbol never blocks itself while a sibling does.
func (s *HarvestService) symbolBlocked(cache map[string]map[string]bool, userID, symbol, lotID string, windowStart, today time.Time) (bool, error) {
	acquirers, ok := cache[symbol]
	if !ok {
		candidates, err := s.lotRepo.GetAcquisitionsInWindow(userID, symbol, windowStart, today)
		if err != nil {
			return false, err
		}
		acquirers = make(map[string]bool, len(candidates))
		for _, c := range candidates {
			acquirers[c.ID] = true
		}
		cache[symbol] = acquirers
	}

	for id := range acquirers {
		if id != lotID {
			return true, nil
		}
	}
	return false, nil
}
