package entity

// MerklChainRewards is one element of the Merkl v4 /users/{address}/rewards
// response, grouping claimable rewards by chain.
type MerklChainRewards struct {
	Chain   MerklChain    `json:"chain"`
	Rewards []MerklReward `json:"rewards"`
}

// MerklChain identifies the chain a reward group belongs to.
type MerklChain struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MerklReward is a single claimable reward with its raw amount and token.
type MerklReward struct {
	Amount     string           `json:"amount"`
	Claimed    string           `json:"claimed"`
	Pending    string           `json:"pending"`
	Token      MerklToken       `json:"token"`
	Breakdowns []MerklBreakdown `json:"breakdowns"`
}

// MerklBreakdown ties a reward slice back to the campaign that emitted it.
type MerklBreakdown struct {
	CampaignID string `json:"campaignId"`
	Reason     string `json:"reason"`
	Amount     string `json:"amount"`
}

// MerklToken carries the token metadata and USD price Merkl attaches to
// rewards and opportunities.
type MerklToken struct {
	Address  string  `json:"address"`
	ChainID  int64   `json:"chainId"`
	Symbol   string  `json:"symbol"`
	Decimals int     `json:"decimals"`
	Price    float64 `json:"price"`
}

// MerklOpportunity is one entry of the Merkl v4 /opportunities response. For
// lending campaigns the first token carries the receipt price and the second
// the underlying reserve address.
type MerklOpportunity struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Status string       `json:"status"`
	Action string       `json:"action"`
	APR    float64      `json:"apr"`
	Tokens []MerklToken `json:"tokens"`
}
