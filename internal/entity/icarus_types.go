package entity

import "encoding/json"

// IcarusAnalyticsRequest is the POST body of the Icarus analyticsPosition
// endpoint.
type IcarusAnalyticsRequest struct {
	Params []IcarusTokenParam `json:"params"`
}

// IcarusTokenParam selects the NFT position to value.
type IcarusTokenParam struct {
	TokenID int64 `json:"token_id"`
}

// IcarusAnalyticsResponse wraps the analyticsPosition result.
type IcarusAnalyticsResponse struct {
	Result IcarusResult `json:"result"`
}

// IcarusResult holds the valued position.
type IcarusResult struct {
	Position IcarusPosition `json:"position"`
}

// IcarusPosition is a concentrated liquidity position with its event history
// and accrued profit.
type IcarusPosition struct {
	CurrentLiquidity json.Number           `json:"current_liquidity"`
	PositionEvents   []IcarusPositionEvent `json:"position_events"`
	PositionProfit   IcarusPositionProfit  `json:"position_profit"`
}

// IcarusPositionEvent is one ownership event carrying the current valuation.
type IcarusPositionEvent struct {
	Owner         string              `json:"owner"`
	CurrentValues IcarusCurrentValues `json:"current_values"`
}

// IcarusCurrentValues holds the USD valuation of a position event.
type IcarusCurrentValues struct {
	TotalValueCurrent float64 `json:"total_value_current"`
}

// IcarusPositionProfit carries accrued but uncollected fees.
type IcarusPositionProfit struct {
	UncollectedUSDFees float64 `json:"uncollected_usd_fees"`
}
