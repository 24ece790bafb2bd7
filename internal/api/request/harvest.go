package request

// FindOpportunitiesRequest is the payload for a harvesting scan.
// ThresholdPercent and MinAmount override the user's stored preferences when
// set. Prices supplies current market prices per symbol; symbols missing from
// the map fall back to the latest stored price.
type FindOpportunitiesRequest struct {
	UserID           string             `json:"userId"`
	ThresholdPercent *float64           `json:"thresholdPercent,omitempty"`
	MinAmount        *float64           `json:"minAmount,omitempty"`
	Prices           map[string]float64 `json:"prices,omitempty"`
}
