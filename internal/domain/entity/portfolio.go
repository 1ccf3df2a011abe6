package entity

import "time"

// ProductiveSource names which service type produced a productive position.
type ProductiveSource string

const (
	SourceYield   ProductiveSource = "yield"
	SourceLending ProductiveSource = "lending"
)

// ProductivePosition is the classifier's merged record: one per yield entry
// and one per lending entry, enriched with the matching wallet balance when
// one exists. A missing match keeps the record with balance "0" so the
// price/APR remains visible even though it contributes no USD value.
type ProductivePosition struct {
	TokenAddress string           `json:"token_address"`
	Symbol       string           `json:"token_symbol"`
	Name         string           `json:"token_name,omitempty"`
	RawBalance   string           `json:"balance"`
	Decimals     OptionalInt      `json:"-"`
	PriceUSD     float64          `json:"price"`
	APRPercent   float64          `json:"apr"`
	Protocol     string           `json:"protocol"`
	Source       ProductiveSource `json:"source"`
}

// PortfolioInput is the full position record for one wallet address, fetched
// in advance by the data-retrieval layer. The engine treats it as read-only.
type PortfolioInput struct {
	WalletTokens []TokenPosition
	YieldEntries []YieldEntry
	Lending      map[string]LendingProtocolData
	NFTPositions []NFTPosition
	Rewards      []RewardEntry
	MarketItems  []MarketItem
}

// AggregateTotals is the valuation summary for one aggregation pass.
// TotalValueUSD is always derived as ProductiveValueUSD + IdleValueUSD and
// never accumulated independently.
type AggregateTotals struct {
	TotalTokenCount    int     `json:"total_token_count"`
	TotalValueUSD      float64 `json:"total_value_usd"`
	ProductiveValueUSD float64 `json:"productive_value_usd"`
	IdleValueUSD       float64 `json:"idle_value_usd"`
}

// Snapshot bundles the totals with the classified lists for the rendering
// and export consumers. It is built fresh per query and never persisted.
type Snapshot struct {
	Address     string                         `json:"address"`
	Totals      AggregateTotals                `json:"totals"`
	WalletOnly  []TokenPosition                `json:"wallet_tokens"`
	Productive  []ProductivePosition           `json:"productive_positions"`
	NFTs        []NFTPosition                  `json:"nft_positions"`
	Rewards     []RewardEntry                  `json:"rewards"`
	Lending     map[string]LendingProtocolData `json:"lending,omitempty"`
	MarketItems []MarketItem                   `json:"market_items,omitempty"`
	GeneratedAt time.Time                      `json:"generated_at"`
}
