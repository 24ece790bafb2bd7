package service

import (
	"context"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/repository"
)

// ReportService composes the full-year tax report from aggregated capital
// gains plus externally supplied dividend/interest/distribution events.
// Pure aggregation: the only writes are the aggregator's own rebuild.
type ReportService struct {
	gainsService *GainsService
	taxEventRepo *repository.TaxEventRepository
}

// NewReportService creates a new ReportService with the provided dependencies.
func NewReportService(gainsService *GainsService, taxEventRepo *repository.TaxEventRepository) *ReportService {
	return &ReportService{
		gainsService: gainsService,
		taxEventRepo: taxEventRepo,
	}
}

// BuildReport recomputes the capital gains summaries for the tax year, then
// folds them together with the year's tax events into a single report.
func (s *ReportService) BuildReport(ctx context.Context, userID string, taxYear int) (*model.TaxReport, error) {
	summaries, err := s.gainsService.RecomputeSummary(ctx, userID, taxYear)
	if err != nil {
		return nil, err
	}

	start, end := repository.TaxYearBounds(taxYear)
	events, err := s.taxEventRepo.GetEvents(userID, repository.EventFilter{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, err
	}

	report := &model.TaxReport{
		UserID:      userID,
		TaxYear:     taxYear,
		Symbols:     summaries,
		GeneratedAt: time.Now().UTC(),
	}

	for _, summary := range summaries {
		report.ShortTermGains += summary.ShortTermGainLoss
		report.LongTermGains += summary.LongTermGainLoss
		report.PositionsClosed += summary.PositionsClosed
	}
	report.TotalGains = report.ShortTermGains + report.LongTermGains

	for _, event := range events {
		switch event.EventType {
		case model.EventDividend, model.EventStockDividend:
			report.Dividends += event.Amount
		case model.EventInterest:
			report.Interest += event.Amount
		case model.EventCapitalGainDistribution:
			report.CapitalGainDistributions += event.Amount
		case model.EventWashSale:
			report.WashSales += event.Amount
		}
	}

	return report, nil
}
