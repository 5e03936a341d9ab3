package models

// PriceBreakdown is derived from a base hourly rate and an hour count; it is
// never stored. Subtotal, platform fee and tax are carried unrounded; only
// the grand total is rounded (half-up).
type PriceBreakdown struct {
	Subtotal    float64 `json:"subtotal"`
	PlatformFee float64 `json:"platformFee"`
	Tax         float64 `json:"tax"`
	Total       int64   `json:"total"`
}

// PriceDisplay carries locale-formatted strings for rendering.
type PriceDisplay struct {
	Subtotal    string `json:"subtotal"`
	PlatformFee string `json:"platformFee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}
