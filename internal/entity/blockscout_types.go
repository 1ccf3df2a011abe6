package entity

// BlockscoutTokenBalance is one element of the Blockscout
// /addresses/{address}/token-balances response array.
type BlockscoutTokenBalance struct {
	Token   BlockscoutToken `json:"token"`
	TokenID *string         `json:"token_id"`
	Value   string          `json:"value"`
}

// BlockscoutToken describes the token side of a balance entry. Decimals and
// ExchangeRate arrive as strings and may be null, hence pointer fields.
type BlockscoutToken struct {
	AddressHash          string  `json:"address_hash"`
	CirculatingMarketCap *string `json:"circulating_market_cap"`
	Decimals             *string `json:"decimals"`
	ExchangeRate         *string `json:"exchange_rate"`
	HoldersCount         *string `json:"holders_count"`
	IconURL              string  `json:"icon_url"`
	Name                 string  `json:"name"`
	Symbol               string  `json:"symbol"`
	TotalSupply          *string `json:"total_supply"`
	Type                 string  `json:"type"`
	Volume24h            *string `json:"volume_24h"`
}

// BlockscoutNFTResponse wraps the /addresses/{address}/nft item list.
type BlockscoutNFTResponse struct {
	Items []BlockscoutNFTItem `json:"items"`
}

// BlockscoutNFTItem is one NFT instance owned by an address.
type BlockscoutNFTItem struct {
	ID        string             `json:"id"`
	Name      *string            `json:"name"`
	TokenType string             `json:"token_type"`
	Token     BlockscoutNFTToken `json:"token"`
}

// BlockscoutNFTToken is the collection descriptor nested in an NFT item.
type BlockscoutNFTToken struct {
	AddressHash string `json:"address_hash"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
}

// BlockscoutTokenInfo is the /tokens/{address} response, used to look up a
// single token's exchange rate when it is missing from the balance feed.
type BlockscoutTokenInfo struct {
	Address      string  `json:"address_hash"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Decimals     *string `json:"decimals"`
	ExchangeRate *string `json:"exchange_rate"`
	Type         string  `json:"type"`
}
