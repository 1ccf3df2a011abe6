package engine

import (
	"strings"

	"yield_tracker/internal/domain/entity"
)

// Classification partitions one wallet's positions so that every token
// address is rendered exactly once: either as a plain wallet holding or as a
// productive position owned by a service feed.
type Classification struct {
	// ServiceClaimed is the set of lower-cased addresses referenced by any
	// yield, NFT, reward or lending record.
	ServiceClaimed map[string]struct{}
	// WalletOnly holds the wallet tokens not claimed by any service. Tokens
	// without an address are always kept here.
	WalletOnly []entity.TokenPosition
	// Productive holds one merged record per yield entry and per lending
	// entry that carries an explorer address.
	Productive []entity.ProductivePosition
}

// Claimed reports whether the given address belongs to a service feed.
func (c Classification) Claimed(address string) bool {
	key := lowerNonEmpty(address)
	if key == "" {
		return false
	}
	_, ok := c.ServiceClaimed[key]
	return ok
}

// Classify computes which source owns every token address. Matching is by
// exact case-insensitive address equality only; symbols and names play no
// part. A token claimed by both a yield feed and a lending feed yields two
// separate productive records; the classifier never merges across service
// types.
func Classify(in entity.PortfolioInput) Classification {
	claimed := claimedAddresses(in)

	byAddress := make(map[string]entity.TokenPosition, len(in.WalletTokens))
	for _, pos := range in.WalletTokens {
		if key := lowerNonEmpty(pos.Token.Address); key != "" {
			byAddress[key] = pos
		}
	}

	walletOnly := make([]entity.TokenPosition, 0, len(in.WalletTokens))
	for _, pos := range in.WalletTokens {
		key := lowerNonEmpty(pos.Token.Address)
		if key != "" {
			if _, taken := claimed[key]; taken {
				continue
			}
		}
		pos.Claim = entity.ClaimWallet
		walletOnly = append(walletOnly, pos)
	}

	productive := make([]entity.ProductivePosition, 0, len(in.YieldEntries))
	for _, y := range in.YieldEntries {
		rec := entity.ProductivePosition{
			TokenAddress: y.TokenAddress,
			Symbol:       y.Symbol,
			Name:         y.Name,
			RawBalance:   "0",
			Decimals:     y.Decimals,
			PriceUSD:     y.PriceUSD,
			APRPercent:   y.APRPercent,
			Protocol:     y.Protocol,
			Source:       entity.SourceYield,
		}
		if match, ok := byAddress[y.AddressKey()]; ok {
			rec.RawBalance = match.RawBalance
			if !rec.Decimals.IsSet() {
				rec.Decimals = match.Token.Decimals
			}
			if rec.Symbol == "" {
				rec.Symbol = match.Token.Symbol
			}
			if rec.Name == "" {
				rec.Name = match.Token.Name
			}
		}
		productive = append(productive, rec)
	}

	for _, data := range in.Lending {
		for _, l := range data.Entries {
			key := l.ExplorerKey()
			if key == "" {
				continue
			}
			price, _ := data.PriceFor(key)
			rec := entity.ProductivePosition{
				TokenAddress: l.ExplorerAddress,
				RawBalance:   "0",
				PriceUSD:     price,
				APRPercent:   l.TotalAPR,
				Protocol:     data.Protocol,
				Source:       entity.SourceLending,
			}
			if match, ok := byAddress[key]; ok {
				rec.RawBalance = match.RawBalance
				rec.Decimals = match.Token.Decimals
				rec.Symbol = match.Token.Symbol
				rec.Name = match.Token.Name
			}
			productive = append(productive, rec)
		}
	}

	return Classification{
		ServiceClaimed: claimed,
		WalletOnly:     walletOnly,
		Productive:     productive,
	}
}

// claimedAddresses builds the union of every address referenced by a service
// feed, all lower-cased. Empty addresses are never claimed.
func claimedAddresses(in entity.PortfolioInput) map[string]struct{} {
	claimed := make(map[string]struct{})
	add := func(address string) {
		if key := lowerNonEmpty(address); key != "" {
			claimed[key] = struct{}{}
		}
	}
	for _, y := range in.YieldEntries {
		add(y.TokenAddress)
	}
	for _, n := range in.NFTPositions {
		add(n.TokenAddress)
	}
	for _, r := range in.Rewards {
		add(r.TokenAddress)
	}
	for _, data := range in.Lending {
		for _, l := range data.Entries {
			add(l.ExplorerAddress)
		}
	}
	return claimed
}

func lowerNonEmpty(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
