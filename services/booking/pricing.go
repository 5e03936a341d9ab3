package booking

import (
	"math"

	"streambook/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Platform fee is charged on the subtotal; tax applies to subtotal plus fee.
const (
	PlatformFeeRate = 0.30
	TaxRate         = 0.11
)

// CalculatePrice derives the price breakdown for a selection. Subtotal, fee
// and tax stay unrounded; only the grand total is rounded, half-up. Invalid
// input degrades to a zero breakdown instead of failing.
func CalculatePrice(basePrice float64, hourCount int) models.PriceBreakdown {
	if basePrice < 0 || hourCount <= 0 {
		return models.PriceBreakdown{}
	}
	subtotal := basePrice * float64(hourCount)
	fee := subtotal * PlatformFeeRate
	tax := (subtotal + fee) * TaxRate
	total := int64(math.Floor(subtotal + fee + tax + 0.5))

	return models.PriceBreakdown{
		Subtotal:    subtotal,
		PlatformFee: fee,
		Tax:         tax,
		Total:       total,
	}
}

var displayPrinter = message.NewPrinter(language.Indonesian)

// FormatPrice renders a breakdown with locale thousands separators. The
// unrounded components are displayed to whole units; only Total carries the
// rounded value.
func FormatPrice(p models.PriceBreakdown) models.PriceDisplay {
	return models.PriceDisplay{
		Subtotal:    displayPrinter.Sprintf("%.0f", p.Subtotal),
		PlatformFee: displayPrinter.Sprintf("%.0f", p.PlatformFee),
		Tax:         displayPrinter.Sprintf("%.0f", p.Tax),
		Total:       displayPrinter.Sprintf("%d", p.Total),
	}
}
