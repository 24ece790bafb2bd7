package request

// CreateLotRequest is the payload for creating a tax lot on acquisition.
// CostBasisOverride is optional and replaces the default quantity×price basis
// for corporate-action adjustments.
type CreateLotRequest struct {
	UserID            string            `json:"userId"`
	Symbol            string            `json:"symbol"`
	Quantity          float64           `json:"quantity"`
	AcquisitionDate   string            `json:"acquisitionDate"`
	AcquisitionPrice  float64           `json:"acquisitionPrice"`
	CostBasisOverride *float64          `json:"costBasisOverride,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// DisposeLotRequest is the payload for disposing all or part of a lot.
type DisposeLotRequest struct {
	UserID           string  `json:"userId"`
	Quantity         float64 `json:"quantity"`
	DispositionDate  string  `json:"dispositionDate"`
	DispositionPrice float64 `json:"dispositionPrice"`
}
