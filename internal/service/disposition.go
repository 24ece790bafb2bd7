package service

import (
	"time"

	"github.com/duyet/finance-hub-sub002/internal/model"
)

// Disposition holds the computed outcome of disposing a quantity from a lot.
type Disposition struct {
	Quantity          float64
	CostBasisSold     float64
	Proceeds          float64
	GainLoss          float64
	HoldingPeriodDays int
	IsLongTerm        bool
}

// ComputeDisposition calculates proceeds, allocated cost basis, gain/loss and
// holding-period classification for disposing quantity units of the lot.
//
// Cost basis is allocated proportionally: costBasisSold = costBasis × q / lot.quantity.
// The holding period is the count of whole days between acquisition and
// disposition; a lot is long-term when it reaches the preference threshold
// (365 days by default).
func ComputeDisposition(lot model.TaxLot, quantity float64, dispositionDate time.Time, dispositionPrice float64, shortTermThresholdDays int) Disposition {
	costBasisSold := lot.CostBasis * (quantity / lot.Quantity)
	proceeds := quantity * dispositionPrice
	days := holdingPeriodDays(lot.AcquisitionDate, dispositionDate)

	return Disposition{
		Quantity:          quantity,
		CostBasisSold:     costBasisSold,
		Proceeds:          proceeds,
		GainLoss:          proceeds - costBasisSold,
		HoldingPeriodDays: days,
		IsLongTerm:        days >= shortTermThresholdDays,
	}
}

// holdingPeriodDays returns floor((disposition − acquisition) in whole days),
// computed on UTC instants so DST shifts in local zones cannot skew the count.
func holdingPeriodDays(acquisition, disposition time.Time) int {
	delta := disposition.UTC().Sub(acquisition.UTC())
	if delta < 0 {
		return 0
	}
	return int(delta.Hours() / 24)
}
