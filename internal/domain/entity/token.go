package entity

import "strings"

// TokenType distinguishes the chain's native asset from contract tokens.
type TokenType string

const (
	// TokenTypeNative marks the chain's native asset (no contract of its own).
	TokenTypeNative TokenType = "native"
	// TokenTypeFungible marks ERC-20 style contract tokens.
	TokenTypeFungible TokenType = "fungible"
)

// DefaultDecimals is assumed whenever a token reports no decimal exponent.
const DefaultDecimals = 18

// ZeroAddress represents the EVM zero address, used for injected native assets.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// ClaimTag records which source claimed a token during classification.
type ClaimTag string

const (
	ClaimWallet  ClaimTag = "wallet"
	ClaimYield   ClaimTag = "yield"
	ClaimLending ClaimTag = "lending"
	ClaimNFT     ClaimTag = "nft"
	ClaimReward  ClaimTag = "reward"
)

// TokenDescriptor holds the identity and pricing metadata of a single token.
// Address may be empty for native assets that have no contract; when present
// it is compared case-insensitively everywhere.
type TokenDescriptor struct {
	Address      string        `json:"address"`
	Symbol       string        `json:"symbol"`
	Name         string        `json:"name"`
	Decimals     OptionalInt   `json:"-"`
	Type         TokenType     `json:"type"`
	ExchangeRate OptionalFloat `json:"-"`
	IconURL      string        `json:"icon_url,omitempty"`
}

// AddressKey returns the lower-cased address used for all matching.
func (d TokenDescriptor) AddressKey() string {
	return strings.ToLower(d.Address)
}

// TokenPosition is a wallet holding: a token plus its raw integer balance as
// reported by the explorer (a base-unit string, not yet scaled by decimals).
type TokenPosition struct {
	Token      TokenDescriptor `json:"token"`
	RawBalance string          `json:"value"`
	Claim      ClaimTag        `json:"claim,omitempty"`
}

// AlreadyScaled reports whether RawBalance is the display magnitude itself.
// Native balances from the explorer v3 API come pre-formatted with a zero
// decimal exponent and must not be divided again.
func (p TokenPosition) AlreadyScaled() bool {
	return p.Token.Type == TokenTypeNative && p.Token.Decimals.Or(DefaultDecimals) == 0
}
