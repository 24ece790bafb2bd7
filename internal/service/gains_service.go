package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/repository"
)

// GainsService rolls closed lots into per-symbol, per-tax-year short/long-term
// summaries. Summary rows are derived data, treated as a materialized view:
// every run rebuilds the full (user, tax year) set from closed lots instead of
// patching rows incrementally, so repeated runs on unchanged data converge.
type GainsService struct {
	lotRepo     *repository.LotRepository
	summaryRepo *repository.SummaryRepository
	yearLocks   *keyedMutex
}

// NewGainsService creates a new GainsService with the provided repository dependencies.
func NewGainsService(
	lotRepo *repository.LotRepository,
	summaryRepo *repository.SummaryRepository,
) *GainsService {
	return &GainsService{
		lotRepo:     lotRepo,
		summaryRepo: summaryRepo,
		yearLocks:   newKeyedMutex(),
	}
}

// RecomputeSummary rebuilds all capital gains summaries for the user and tax
// year and returns the resulting rows ordered by symbol.
//
// Wash-sale-disallowed losses are excluded from the gain/loss sums: they were
// already deferred onto a replacement lot's cost basis at disposition time and
// must not be subtracted a second time. Wash-sale lots still count toward
// positionsClosed.
func (s *GainsService) RecomputeSummary(ctx context.Context, userID string, taxYear int) ([]model.CapitalGainsSummary, error) {
	unlock := s.yearLocks.Lock(fmt.Sprintf("%s|%d", userID, taxYear))
	defer unlock()

	start, end := repository.TaxYearBounds(taxYear)
	closedLots, err := s.lotRepo.GetClosedLotsInYear(userID, start, end)
	if err != nil {
		return nil, err
	}

	bySymbol := make(map[string]*model.CapitalGainsSummary)
	for _, lot := range closedLots {
		summary, ok := bySymbol[lot.Symbol]
		if !ok {
			summary = &model.CapitalGainsSummary{
				ID:      uuid.New().String(),
				UserID:  userID,
				TaxYear: taxYear,
				Symbol:  lot.Symbol,
			}
			bySymbol[lot.Symbol] = summary
		}

		summary.PositionsClosed++

		if lot.IsWashSale {
			continue
		}
		if lot.IsLongTerm {
			summary.LongTermGainLoss += lot.GainLoss
		} else {
			summary.ShortTermGainLoss += lot.GainLoss
		}
	}

	summaries := make([]model.CapitalGainsSummary, 0, len(bySymbol))
	for _, summary := range bySymbol {
		summary.TotalGainLoss = summary.ShortTermGainLoss + summary.LongTermGainLoss
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Symbol < summaries[j].Symbol
	})

	if err := s.summaryRepo.ReplaceSummaries(ctx, userID, taxYear, summaries); err != nil {
		return nil, err
	}

	return summaries, nil
}

// GetSummaries retrieves the stored summaries for a user and tax year.
func (s *GainsService) GetSummaries(userID string, taxYear int) ([]model.CapitalGainsSummary, error) {
	return s.summaryRepo.GetSummaries(userID, taxYear)
}
