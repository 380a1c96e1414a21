package engine

import "math"

// Marketplace fee schedule.
const (
	ListingFee         = 0.20
	TransactionFeeRate = 0.065
	PaymentFeeRate     = 0.03
	PaymentFeeFlat     = 0.25
	OffsiteAdsFeeRate  = 0.15
)

type ProfitInput struct {
	Price        float64
	Cost         float64
	Discount     float64 // shown on the form; not part of the calculation
	AdSpend      float64
	IsOffsiteAds bool
}

func DefaultProfitInput() ProfitInput {
	return ProfitInput{Price: 15.0, Cost: 0, Discount: 0, AdSpend: 1.0}
}

// ProfitResult holds rounded values: Profit and Fees to cents, Margin to a
// tenth of a percent.
type ProfitResult struct {
	Profit float64
	Margin float64
	Fees   float64

	ListingFee     float64
	TransactionFee float64
	OffsiteFee     float64
}

func CalculateProfit(in ProfitInput) ProfitResult {
	transaction := in.Price*TransactionFeeRate + (in.Price*PaymentFeeRate + PaymentFeeFlat)
	offsite := 0.0
	if in.IsOffsiteAds {
		offsite = in.Price * OffsiteAdsFeeRate
	}
	totalCosts := in.Cost + ListingFee + transaction + offsite + in.AdSpend
	profit := in.Price - totalCosts

	margin := 0.0
	if in.Price > 0 {
		margin = profit / in.Price * 100
	}

	return ProfitResult{
		Profit:         roundTo(profit, 2),
		Margin:         roundTo(margin, 1),
		Fees:           roundTo(ListingFee+transaction+offsite, 2),
		ListingFee:     ListingFee,
		TransactionFee: roundTo(transaction, 2),
		OffsiteFee:     roundTo(offsite, 2),
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
