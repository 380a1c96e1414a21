package engine

import "math"

const (
	// ProjectionMonths is the fixed horizon of a revenue projection.
	ProjectionMonths = 12
	// WeeksPerMonth is the simulator's month length.
	WeeksPerMonth = 4
)

// SimulationInput drives the revenue projection. Values are taken as given;
// negative inputs are not rejected.
type SimulationInput struct {
	StartingListings  float64
	UploadRatePerWeek float64
	AvgPrice          float64
	ConversionRate    float64 // percent, 2.5 means 2.5%
	VisitsPerListing  float64
}

func DefaultSimulation() SimulationInput {
	return SimulationInput{
		StartingListings:  0,
		UploadRatePerWeek: 5,
		AvgPrice:          12.0,
		ConversionRate:    2.5,
		VisitsPerListing:  10,
	}
}

type MonthProjection struct {
	Month    int
	Listings float64
	Visits   float64
	Sales    float64
	Revenue  int64
}

// Project runs the linear listings model for twelve months. Listings accumulate
// by uploadRate*4 each month and traffic scales with the listing count.
func Project(in SimulationInput) []MonthProjection {
	out := make([]MonthProjection, 0, ProjectionMonths)
	listings := in.StartingListings
	for month := 1; month <= ProjectionMonths; month++ {
		listings += in.UploadRatePerWeek * WeeksPerMonth
		visits := listings * in.VisitsPerListing
		sales := visits * (in.ConversionRate / 100)
		out = append(out, MonthProjection{
			Month:    month,
			Listings: listings,
			Visits:   visits,
			Sales:    sales,
			Revenue:  int64(roundHalfUp(sales * in.AvgPrice)),
		})
	}
	return out
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf,
// so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// TotalRevenue sums the rounded monthly revenue.
func TotalRevenue(months []MonthProjection) int64 {
	var total int64
	for _, m := range months {
		total += m.Revenue
	}
	return total
}

// PeakRevenue returns the largest monthly revenue, 0 for an empty projection.
func PeakRevenue(months []MonthProjection) int64 {
	var peak int64
	for i, m := range months {
		if i == 0 || m.Revenue > peak {
			peak = m.Revenue
		}
	}
	return peak
}
