package request

// RecordTaxEventRequest is the payload for recording an external tax event.
type RecordTaxEventRequest struct {
	UserID       string  `json:"userId"`
	Symbol       string  `json:"symbol"`
	EventType    string  `json:"eventType"`
	Amount       float64 `json:"amount"`
	EventDate    string  `json:"eventDate"`
	RelatedLotID string  `json:"relatedLotId,omitempty"`
	Description  string  `json:"description,omitempty"`
}
