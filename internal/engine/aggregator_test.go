package engine

import (
	"testing"

	"yield_tracker/internal/domain/entity"
)

func nativePosition(raw string, rate float64) entity.TokenPosition {
	return entity.TokenPosition{
		Token: entity.TokenDescriptor{
			Symbol:       "rBTC",
			Name:         "Rootstock Smart Bitcoin",
			Decimals:     entity.IntOf(18),
			Type:         entity.TokenTypeNative,
			ExchangeRate: entity.FloatOf(rate),
		},
		RawBalance: raw,
	}
}

func TestAggregateNativePlusYieldScenario(t *testing.T) {
	// 2.5 rBTC at $60,000 idle plus 1.0 mToken at $1.05 productive.
	in := entity.PortfolioInput{
		WalletTokens: []entity.TokenPosition{
			nativePosition("2500000000000000000", 60000),
			walletToken("0xAAA1", "mUSD", "1000000000000000000", 18, 0),
		},
		YieldEntries: []entity.YieldEntry{
			{TokenAddress: "0xaaa1", Symbol: "mUSD", Decimals: entity.IntOf(18), PriceUSD: 1.05, APRPercent: 5.0, Protocol: "Midas"},
		},
	}

	got := Aggregate(in)

	if got.TotalTokenCount != 2 {
		t.Errorf("TotalTokenCount = %d, want 2", got.TotalTokenCount)
	}
	if !almostEqual(got.IdleValueUSD, 150000) {
		t.Errorf("IdleValueUSD = %v, want 150000", got.IdleValueUSD)
	}
	if !almostEqual(got.ProductiveValueUSD, 1.05) {
		t.Errorf("ProductiveValueUSD = %v, want 1.05", got.ProductiveValueUSD)
	}
	if !almostEqual(got.TotalValueUSD, 150001.05) {
		t.Errorf("TotalValueUSD = %v, want 150001.05", got.TotalValueUSD)
	}
}

func TestAggregateTotalIsAlwaysDerived(t *testing.T) {
	inputs := []entity.PortfolioInput{
		{},
		{
			WalletTokens: []entity.TokenPosition{
				walletToken("0x1", "A", "1000000000000000000", 18, 2.0),
				walletToken("0x2", "B", "garbage", 18, 5.0),
			},
			NFTPositions: []entity.NFTPosition{{TokenAddress: "0x3", TotalValueUSD: 99.5}},
			Rewards:      []entity.RewardEntry{{TokenAddress: "0x4", USDValue: 3.25}},
		},
		{
			WalletTokens: []entity.TokenPosition{
				walletToken("0x5", "C", "4000000000000000000", 18, 0),
			},
			Lending: map[string]entity.LendingProtocolData{
				"avalon": {
					Protocol: "Avalon",
					Entries: []entity.LendingEntry{
						{ExplorerAddress: "0x5", Action: entity.ActionBorrow, TotalAPR: -6.0},
					},
					TokenPrices: map[string]float64{"0x5": 10},
				},
			},
		},
	}

	for i, in := range inputs {
		got := Aggregate(in)
		if !almostEqual(got.TotalValueUSD, got.ProductiveValueUSD+got.IdleValueUSD) {
			t.Errorf("input %d: total %v != productive %v + idle %v",
				i, got.TotalValueUSD, got.ProductiveValueUSD, got.IdleValueUSD)
		}
	}
}

func TestAggregateBorrowSubtractsFromProductive(t *testing.T) {
	// A $500 lend position and a $100 borrow against the same protocol.
	in := entity.PortfolioInput{
		WalletTokens: []entity.TokenPosition{
			walletToken("0xLEND", "lUSDT", "500000000", 6, 0),
			walletToken("0xBORROW", "vdUSDT", "100000000", 6, 0),
		},
		Lending: map[string]entity.LendingProtocolData{
			"layerbank": {
				Protocol: "LayerBank",
				Entries: []entity.LendingEntry{
					{ExplorerAddress: "0xlend", Action: entity.ActionLend, TotalAPR: 4.0},
					{ExplorerAddress: "0xborrow", Action: entity.ActionBorrow, TotalAPR: -2.5},
				},
				TokenPrices: map[string]float64{
					"0xlend":   1.0,
					"0xborrow": 1.0,
				},
			},
		},
	}

	got := Aggregate(in)

	if !almostEqual(got.ProductiveValueUSD, 400) {
		t.Errorf("ProductiveValueUSD = %v, want 500 - 100 = 400", got.ProductiveValueUSD)
	}
	if !almostEqual(got.TotalValueUSD, 400) {
		t.Errorf("TotalValueUSD = %v, want 400", got.TotalValueUSD)
	}
}

func TestAggregateLendingWithoutPriceSkipped(t *testing.T) {
	in := entity.PortfolioInput{
		WalletTokens: []entity.TokenPosition{
			walletToken("0xEEE5", "aWRBTC", "1000000000000000000", 18, 0),
		},
		Lending: map[string]entity.LendingProtocolData{
			"avalon": {
				Protocol: "Avalon",
				Entries: []entity.LendingEntry{
					{ExplorerAddress: "0xeee5", Action: entity.ActionLend, TotalAPR: 1.0},
				},
			},
		},
	}

	got := Aggregate(in)

	if got.ProductiveValueUSD != 0 {
		t.Errorf("ProductiveValueUSD = %v, want 0 when no protocol price exists", got.ProductiveValueUSD)
	}
}

func TestAggregateNFTAndRewardPlacement(t *testing.T) {
	in := entity.PortfolioInput{
		NFTPositions: []entity.NFTPosition{
			{TokenAddress: "0xNFT", PositionID: "42", TotalValueUSD: 250.75, Protocol: "Icarus"},
			{TokenAddress: "0xNFT", PositionID: "43", TotalValueUSD: 0},
		},
		Rewards: []entity.RewardEntry{
			{TokenAddress: "0xRWD", Symbol: "MERKL", USDValue: 12.30},
			{TokenAddress: "0xRWD2", Symbol: "DUST", USDValue: 0},
		},
	}

	got := Aggregate(in)

	if !almostEqual(got.ProductiveValueUSD, 250.75) {
		t.Errorf("ProductiveValueUSD = %v, want 250.75 from the NFT position", got.ProductiveValueUSD)
	}
	if !almostEqual(got.IdleValueUSD, 12.30) {
		t.Errorf("IdleValueUSD = %v, want 12.30 from the reward", got.IdleValueUSD)
	}
	if got.TotalTokenCount != 0 {
		t.Errorf("TotalTokenCount = %d, want 0 (NFTs and rewards are not wallet tokens)", got.TotalTokenCount)
	}
}

func TestAggregateMarketItemsAddDirectly(t *testing.T) {
	in := entity.PortfolioInput{
		MarketItems: []entity.MarketItem{
			{Protocol: "Tropykus", Symbol: "kDOC", USDValue: 77.7},
			{Protocol: "Tropykus", Symbol: "kRBTC", USDValue: 0},
		},
	}

	got := Aggregate(in)

	if !almostEqual(got.ProductiveValueUSD, 77.7) {
		t.Errorf("ProductiveValueUSD = %v, want 77.7", got.ProductiveValueUSD)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	in := entity.PortfolioInput{
		WalletTokens: []entity.TokenPosition{
			nativePosition("2500000000000000000", 60000),
			walletToken("0xAAA1", "mUSD", "1000000000000000000", 18, 0),
		},
		YieldEntries: []entity.YieldEntry{
			{TokenAddress: "0xaaa1", PriceUSD: 1.05, Protocol: "Midas"},
		},
		NFTPositions: []entity.NFTPosition{{TokenAddress: "0xNFT", TotalValueUSD: 250.75}},
		Rewards:      []entity.RewardEntry{{TokenAddress: "0xRWD", USDValue: 12.30}},
	}

	first := Aggregate(in)
	second := Aggregate(in)
	if first != second {
		t.Errorf("Aggregate is not idempotent: first %+v, second %+v", first, second)
	}
}

func TestAggregateMalformedInputsContributeZero(t *testing.T) {
	in := entity.PortfolioInput{
		WalletTokens: []entity.TokenPosition{
			walletToken("0x1", "BAD", "not-a-number", 18, 100),
			walletToken("0x2", "NEG", "-1000000000000000000", 18, 2.0),
		},
	}

	got := Aggregate(in)

	if got.TotalValueUSD != 0 || got.IdleValueUSD != 0 || got.ProductiveValueUSD != 0 {
		t.Errorf("totals = %+v, want all zero for malformed and negative balances", got)
	}
	if got.TotalTokenCount != 2 {
		t.Errorf("TotalTokenCount = %d, want 2 (count is independent of value)", got.TotalTokenCount)
	}
}

func TestEvaluateCombinesClassificationAndTotals(t *testing.T) {
	in := entity.PortfolioInput{
		WalletTokens: []entity.TokenPosition{
			walletToken("0xAAA1", "mUSD", "1000000000000000000", 18, 0),
			walletToken("0xBBB2", "XUSD", "3000000000000000000", 18, 1.0),
		},
		YieldEntries: []entity.YieldEntry{
			{TokenAddress: "0xaaa1", PriceUSD: 1.05, Protocol: "Midas"},
		},
	}

	snap := Evaluate(in)

	if len(snap.WalletOnly) != 1 || snap.WalletOnly[0].Token.Address != "0xBBB2" {
		t.Errorf("WalletOnly = %+v, want only the unclaimed token", snap.WalletOnly)
	}
	if len(snap.Productive) != 1 {
		t.Errorf("Productive = %+v, want one yield record", snap.Productive)
	}
	if !almostEqual(snap.Totals.TotalValueUSD, snap.Totals.ProductiveValueUSD+snap.Totals.IdleValueUSD) {
		t.Errorf("snapshot totals are not internally consistent: %+v", snap.Totals)
	}
}
