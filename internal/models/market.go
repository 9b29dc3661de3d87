package models

// PriceQuote is an ephemeral market price for one symbol. It is fetched
// fresh per request and never persisted; a failed fetch degrades to a
// zero-valued quote rather than an error at the dashboard level.
type PriceQuote struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousClose float64 `json:"previousClose"`
}
