package entity

// TropykusPortfolioResponse is the Tropykus market portfolio payload for one
// address.
type TropykusPortfolioResponse struct {
	Protocol       string                  `json:"protocol"`
	PortfolioItems []TropykusPortfolioItem `json:"portfolio_items"`
	TotalItems     int                     `json:"total_items"`
}

// TropykusPortfolioItem is one kToken market position with its USD value
// already computed upstream.
type TropykusPortfolioItem struct {
	Symbol           string  `json:"symbol"`
	UnderlyingSymbol string  `json:"underlying_symbol"`
	Balance          string  `json:"balance"`
	Price            float64 `json:"price"`
	USDValue         float64 `json:"usd_value"`
}
