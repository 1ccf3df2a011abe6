package export

import (
	"testing"
	"time"

	"yield_tracker/internal/domain/entity"
)

func testSnapshot() *entity.Snapshot {
	return &entity.Snapshot{
		Address: "0x26d2e5bd1a418aff98523a70ec4d12cb370cdd85",
		Totals: entity.AggregateTotals{
			TotalTokenCount:    2,
			TotalValueUSD:      150001.05,
			ProductiveValueUSD: 1.05,
			IdleValueUSD:       150000,
		},
		WalletOnly: []entity.TokenPosition{
			{
				Token: entity.TokenDescriptor{
					Symbol:       "rBTC",
					Name:         "Rootstock Smart Bitcoin",
					Decimals:     entity.IntOf(0),
					Type:         entity.TokenTypeNative,
					ExchangeRate: entity.FloatOf(60000),
				},
				RawBalance: "2.5",
			},
		},
		Productive: []entity.ProductivePosition{
			{
				TokenAddress: "0xaaa1",
				Symbol:       "mUSD",
				Name:         "Midas USD",
				RawBalance:   "1000000000000000000",
				Decimals:     entity.IntOf(18),
				PriceUSD:     1.05,
				APRPercent:   5.0,
				Protocol:     "Midas",
				Source:       entity.SourceYield,
			},
		},
		Rewards: []entity.RewardEntry{
			{TokenAddress: "0xrwd", Symbol: "MERKL", AmountFormatted: "12.3000 MERKL", PriceUSD: 1, USDValue: 12.3},
		},
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(testSnapshot())
	if err != nil {
		t.Fatalf("BuildWorkbook returned error: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Wallet", "Portfolio", "Summary"} {
		if index, err := f.GetSheetIndex(sheet); err != nil || index < 0 {
			t.Errorf("missing sheet %q (index=%d, err=%v)", sheet, index, err)
		}
	}
	if index, err := f.GetSheetIndex("Sheet1"); err == nil && index >= 0 {
		t.Errorf("default sheet must be removed")
	}

	symbol, err := f.GetCellValue("Wallet", "A2")
	if err != nil || symbol != "rBTC" {
		t.Errorf("Wallet!A2 = %q (err=%v), want rBTC", symbol, err)
	}

	protocol, err := f.GetCellValue("Portfolio", "B2")
	if err != nil || protocol != "Midas" {
		t.Errorf("Portfolio!B2 = %q (err=%v), want Midas", protocol, err)
	}

	title, err := f.GetCellValue("Summary", "A1")
	if err != nil || title != "Portfolio Summary - 0x26d2e5bd1a418aff98523a70ec4d12cb370cdd85" {
		t.Errorf("Summary!A1 = %q (err=%v)", title, err)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	got := Filename("0x26d2e5bd1a418aff98523a70ec4d12cb370cdd85", now)
	want := "portfolio_0x26d2e5_20250601_123045.xlsx"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}
