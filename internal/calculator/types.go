package calculator

type AveragingDownInput struct {
	CurrentPrice       float64 `json:"currentPrice"`
	CurrentQuantity    float64 `json:"currentQuantity"`
	AdditionalPrice    float64 `json:"additionalPrice"`
	AdditionalQuantity float64 `json:"additionalQuantity"`
}

type AveragingDownResult struct {
	AveragePrice    float64 `json:"averagePrice"`
	TotalQuantity   float64 `json:"totalQuantity"`
	TotalInvestment float64 `json:"totalInvestment"`
	// ProfitLossPercentage compares the additional purchase price with the
	// blended average, not a market price with the average.
	ProfitLossPercentage float64 `json:"profitLossPercentage"`
	BreakEvenPrice       float64 `json:"breakEvenPrice"`
}

type TargetAverageInput struct {
	CurrentPrice        float64 `json:"currentPrice"` // validated but not used by the solve
	CurrentQuantity     float64 `json:"currentQuantity"`
	CurrentAveragePrice float64 `json:"currentAveragePrice"`
	TargetAveragePrice  float64 `json:"targetAveragePrice"`
	NewPrice            float64 `json:"newPrice"`
}

type TargetAverageResult struct {
	RequiredQuantity   float64 `json:"requiredQuantity"`
	RequiredInvestment float64 `json:"requiredInvestment"`
	TotalQuantity      float64 `json:"totalQuantity"`
	TotalInvestment    float64 `json:"totalInvestment"`
}

type ProfitResult struct {
	TotalBuy   float64 `json:"totalBuy"`
	TotalSell  float64 `json:"totalSell"`
	Profit     float64 `json:"profit"`
	ProfitRate float64 `json:"profitRate"` // percent
}
