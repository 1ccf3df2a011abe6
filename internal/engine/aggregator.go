package engine

import (
	"yield_tracker/internal/domain/entity"
)

// Aggregate computes the USD valuation summary for one wallet. The rules run
// in a fixed order:
//
//  1. totalTokenCount counts every wallet token record, native included.
//  2. Wallet tokens are idle: scaled balance times the token's own reported
//     rate, added when positive. Productive attribution happens only through
//     the dedicated service records below.
//  3. NFT positions add their total USD value to productive.
//  4. Reward entries add their USD value to idle (unclaimed is not deployed).
//  5. Yield entries with a matching wallet balance add scaled × entry price
//     to productive.
//  6. Lending entries with a matching wallet balance resolve the price from
//     the protocol's own table; borrow entries (negative APR) subtract the
//     value from productive, lend entries add it.
//  7. Market items add their adapter-reported USD value to productive.
//  8. totalValueUSD is recomputed as productive + idle.
//
// Non-positive products are skipped everywhere except the borrow subtraction.
// Any input that fails to parse contributes 0.
func Aggregate(in entity.PortfolioInput) entity.AggregateTotals {
	totals := entity.AggregateTotals{
		TotalTokenCount: len(in.WalletTokens),
	}

	byAddress := make(map[string]entity.TokenPosition, len(in.WalletTokens))
	for _, pos := range in.WalletTokens {
		if key := lowerNonEmpty(pos.Token.Address); key != "" {
			byAddress[key] = pos
		}
	}

	for _, pos := range in.WalletTokens {
		value := scalePosition(pos) * safeFloat(pos.Token.ExchangeRate.Or(0))
		if value > 0 {
			totals.IdleValueUSD += value
		}
	}

	for _, nft := range in.NFTPositions {
		if v := safeFloat(nft.TotalValueUSD); v > 0 {
			totals.ProductiveValueUSD += v
		}
	}

	for _, reward := range in.Rewards {
		if v := safeFloat(reward.USDValue); v > 0 {
			totals.IdleValueUSD += v
		}
	}

	for _, y := range in.YieldEntries {
		match, ok := byAddress[y.AddressKey()]
		if !ok {
			continue
		}
		decimals := y.Decimals.Or(match.Token.Decimals.Or(entity.DefaultDecimals))
		value := Scale(match.RawBalance, decimals, match.AlreadyScaled()) * safeFloat(y.PriceUSD)
		if value > 0 {
			totals.ProductiveValueUSD += value
		}
	}

	for _, data := range in.Lending {
		for _, l := range data.Entries {
			match, ok := byAddress[l.ExplorerKey()]
			if !ok {
				continue
			}
			price, ok := data.PriceFor(l.ExplorerKey())
			if !ok {
				continue
			}
			value := scalePosition(match) * safeFloat(price)
			if value <= 0 {
				continue
			}
			if l.IsBorrow() {
				totals.ProductiveValueUSD -= value
			} else {
				totals.ProductiveValueUSD += value
			}
		}
	}

	for _, item := range in.MarketItems {
		if v := safeFloat(item.USDValue); v > 0 {
			totals.ProductiveValueUSD += v
		}
	}

	totals.TotalValueUSD = totals.ProductiveValueUSD + totals.IdleValueUSD
	return totals
}

// Evaluate runs classification and aggregation over one input record and
// returns the snapshot body consumed by the rendering and export layers.
// The caller stamps the address and timestamp.
func Evaluate(in entity.PortfolioInput) entity.Snapshot {
	classified := Classify(in)
	return entity.Snapshot{
		Totals:      Aggregate(in),
		WalletOnly:  classified.WalletOnly,
		Productive:  classified.Productive,
		NFTs:        in.NFTPositions,
		Rewards:     in.Rewards,
		Lending:     in.Lending,
		MarketItems: in.MarketItems,
	}
}
