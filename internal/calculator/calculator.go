// Package calculator implements the averaging-down, target-average and
// profit calculations. Every function is pure: results depend only on the
// input record and nothing is retained between calls.
package calculator

import "math"

// AveragingDown blends an existing position with an additional purchase.
func AveragingDown(in AveragingDownInput) (AveragingDownResult, error) {
	if !positive(in.CurrentQuantity) || !positive(in.AdditionalQuantity) {
		return AveragingDownResult{}, invalid(KindInvalidQuantity, "quantities must be greater than zero")
	}
	if !positive(in.CurrentPrice) || !positive(in.AdditionalPrice) {
		return AveragingDownResult{}, invalid(KindInvalidPrice, "prices must be greater than zero")
	}

	currentInvestment := in.CurrentPrice * in.CurrentQuantity
	additionalInvestment := in.AdditionalPrice * in.AdditionalQuantity
	totalInvestment := currentInvestment + additionalInvestment

	totalQuantity := in.CurrentQuantity + in.AdditionalQuantity
	averagePrice := totalInvestment / totalQuantity

	profitLoss := (in.AdditionalPrice - averagePrice) / averagePrice * 100

	return AveragingDownResult{
		AveragePrice:         round(averagePrice, 2),
		TotalQuantity:        totalQuantity,
		TotalInvestment:      round(totalInvestment, 2),
		ProfitLossPercentage: round(profitLoss, 2),
		BreakEvenPrice:       round(averagePrice, 2),
	}, nil
}

// TargetAverage solves
//
//	target = (avg*qty + newPrice*x) / (qty + x)
//
// for x, the quantity to buy at newPrice.
func TargetAverage(in TargetAverageInput) (TargetAverageResult, error) {
	if !positive(in.CurrentQuantity) {
		return TargetAverageResult{}, invalid(KindInvalidQuantity, "current quantity must be greater than zero")
	}
	if !positive(in.CurrentPrice) || !positive(in.NewPrice) {
		return TargetAverageResult{}, invalid(KindInvalidPrice, "prices must be greater than zero")
	}
	if !positive(in.CurrentAveragePrice) || !positive(in.TargetAveragePrice) {
		return TargetAverageResult{}, invalid(KindInvalidAveragePrice, "average prices must be greater than zero")
	}
	if in.TargetAveragePrice >= in.CurrentAveragePrice {
		return TargetAverageResult{}, invalid(KindTargetNotLower, "target average must be lower than current average")
	}

	currentInvestment := in.CurrentAveragePrice * in.CurrentQuantity
	required := (currentInvestment - in.TargetAveragePrice*in.CurrentQuantity) /
		(in.TargetAveragePrice - in.NewPrice)

	// target == newPrice divides by zero and yields +Inf.
	if required <= 0 || math.IsNaN(required) || math.IsInf(required, 0) {
		return TargetAverageResult{}, invalid(KindUnreachableTarget, "target average cannot be reached with this purchase price")
	}

	requiredInvestment := in.NewPrice * required
	totalQuantity := in.CurrentQuantity + required
	totalInvestment := currentInvestment + requiredInvestment

	return TargetAverageResult{
		RequiredQuantity:   round(required, 4),
		RequiredInvestment: round(requiredInvestment, 2),
		TotalQuantity:      round(totalQuantity, 4),
		TotalInvestment:    round(totalInvestment, 2),
	}, nil
}

// Profit computes the realized result of buying and selling quantity units.
// It never fails; the rate is 0 when there is no cost basis.
func Profit(buyPrice, sellPrice, quantity float64) ProfitResult {
	totalBuy := buyPrice * quantity
	totalSell := sellPrice * quantity
	profit := totalSell - totalBuy

	var rate float64
	if totalBuy > 0 {
		rate = profit / totalBuy * 100
	}

	return ProfitResult{
		TotalBuy:   totalBuy,
		TotalSell:  totalSell,
		Profit:     profit,
		ProfitRate: rate,
	}
}
