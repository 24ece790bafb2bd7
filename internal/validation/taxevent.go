package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
)

// ValidEventType contains the allowed tax event type values.
var ValidEventType = map[string]bool{
	model.EventDividend:                true,
	model.EventInterest:                true,
	model.EventCapitalGainDistribution: true,
	model.EventStockSplit:              true,
	model.EventStockDividend:           true,
	model.EventReturnOfCapital:         true,
	model.EventWashSale:                true,
	model.EventOther:                   true,
}

// ValidateRecordTaxEvent validates a tax event record request.
func ValidateRecordTaxEvent(req request.RecordTaxEventRequest) error {
	if err := ValidateUUID(req.UserID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if strings.TrimSpace(req.EventType) == "" {
		errors["eventType"] = "eventType is required"
	} else if !ValidEventType[req.EventType] {
		errors["eventType"] = fmt.Sprintf("invalid eventType: %s", req.EventType)
	}

	if req.Amount < 0 || !isFinite(req.Amount) {
		errors["amount"] = "amount must be non-negative"
	}

	if strings.TrimSpace(req.EventDate) == "" {
		errors["eventDate"] = "eventDate is required"
	} else if _, err := time.Parse("2006-01-02", req.EventDate); err != nil {
		errors["eventDate"] = err.Error()
	}

	if req.RelatedLotID != "" {
		if err := ValidateUUID(req.RelatedLotID); err != nil {
			errors["relatedLotId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
