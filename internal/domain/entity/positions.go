package entity

import "strings"

// YieldEntry is a price/APR feed record for a yield-bearing token, keyed by
// token address and independent of the wallet's actual balance.
type YieldEntry struct {
	TokenAddress string        `json:"token_address"`
	Symbol       string        `json:"token_symbol"`
	Name         string        `json:"token_name,omitempty"`
	Decimals     OptionalInt   `json:"-"`
	PriceUSD     float64       `json:"price"`
	APRPercent   float64       `json:"apr"`
	Protocol     string        `json:"protocol"`
}

// AddressKey returns the lower-cased token address.
func (y YieldEntry) AddressKey() string {
	return strings.ToLower(y.TokenAddress)
}

// LendingAction labels the side of a money-market position.
type LendingAction string

const (
	ActionLend   LendingAction = "LEND"
	ActionBorrow LendingAction = "BORROW"
)

// LendingEntry is one merged APR record for a money-market reserve. The
// explorer address is the token contract the wallet actually holds (the
// receipt token); TotalAPR is negative for borrow positions.
type LendingEntry struct {
	ExplorerAddress string        `json:"explorer_address"`
	ReserveAddress  string        `json:"reserve_address"`
	Action          LendingAction `json:"action"`
	OrganicAPR      float64       `json:"organic_apr"`
	IncentivizedAPR float64       `json:"incentivized_apr"`
	TotalAPR        float64       `json:"total_apr"`
	CampaignID      string        `json:"campaign_id,omitempty"`
	Status          string        `json:"status,omitempty"`
}

// ExplorerKey returns the lower-cased explorer address.
func (l LendingEntry) ExplorerKey() string {
	return strings.ToLower(l.ExplorerAddress)
}

// IsBorrow reports whether the entry represents a borrow position.
func (l LendingEntry) IsBorrow() bool {
	return l.TotalAPR < 0
}

// LendingProtocolData bundles one protocol's APR entries with its own price
// table. Prices are keyed by lower-cased explorer address; the wallet token's
// reported exchange rate is never consulted for lending valuation.
type LendingProtocolData struct {
	Protocol    string             `json:"protocol"`
	Entries     []LendingEntry     `json:"entries"`
	TokenPrices map[string]float64 `json:"token_prices"`
}

// PriceFor looks up the protocol price for an explorer address.
func (d LendingProtocolData) PriceFor(address string) (float64, bool) {
	p, ok := d.TokenPrices[strings.ToLower(address)]
	return p, ok
}

// NFTPosition is a valued LP/position NFT.
type NFTPosition struct {
	TokenAddress       string        `json:"contract_address"`
	PositionID         string        `json:"nft_id"`
	Name               string        `json:"name,omitempty"`
	TotalValueUSD      float64       `json:"total_value_usd"`
	UncollectedFeesUSD OptionalFloat `json:"-"`
	Protocol           string        `json:"protocol"`
}

// AddressKey returns the lower-cased contract address.
func (n NFTPosition) AddressKey() string {
	return strings.ToLower(n.TokenAddress)
}

// RewardEntry is a claimable reward attributed to a token.
type RewardEntry struct {
	TokenAddress    string  `json:"token_address"`
	Symbol          string  `json:"token_symbol"`
	AmountFormatted string  `json:"amount_formatted"`
	PriceUSD        float64 `json:"token_price"`
	USDValue        float64 `json:"usd_value"`
}

// AddressKey returns the lower-cased token address.
func (r RewardEntry) AddressKey() string {
	return strings.ToLower(r.TokenAddress)
}

// MarketItem is a portfolio line supplied fully valued by a market adapter
// (Tropykus style): no wallet-balance lookup is needed, the USD value is
// taken as reported.
type MarketItem struct {
	Protocol         string  `json:"protocol"`
	Symbol           string  `json:"symbol"`
	BalanceFormatted string  `json:"balance_formatted"`
	PriceUSD         float64 `json:"price"`
	USDValue         float64 `json:"usd_value"`
}
