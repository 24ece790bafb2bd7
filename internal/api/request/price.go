package request

// PriceEntry is one symbol price pushed by the market-data collaborator.
type PriceEntry struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	AsOf   string  `json:"asOf"`
}

// UpsertPricesRequest is the payload for a price push.
type UpsertPricesRequest struct {
	Prices []PriceEntry `json:"prices"`
}

// SetFeedTokenRequest is the payload for storing the market-data feed
// credential. The token is encrypted at rest.
type SetFeedTokenRequest struct {
	Token string `json:"token"`
}
