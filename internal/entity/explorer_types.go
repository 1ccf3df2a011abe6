package entity

// ExplorerBalancesResponse wraps the Rootstock explorer v3
// /balances/address/{address} payload.
type ExplorerBalancesResponse struct {
	Data []ExplorerBalance `json:"data"`
}

// ExplorerBalance is one balance snapshot. The v3 API returns the balance as
// an already formatted decimal string, not a raw wei integer.
type ExplorerBalance struct {
	Address     string `json:"address"`
	Balance     string `json:"balance"`
	BlockNumber int64  `json:"blockNumber"`
}
