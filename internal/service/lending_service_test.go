package service

import (
	"context"
	"math"
	"testing"

	"yield_tracker/internal/domain/entity"
	apientity "yield_tracker/internal/entity"

	"go.uber.org/zap"
)

func TestLayerBankMergeWithIncentivizedCampaign(t *testing.T) {
	merkl := &mockMerklClient{
		GetOpportunityByCampaignFunc: func(ctx context.Context, campaignID string) (*apientity.MerklOpportunity, error) {
			return &apientity.MerklOpportunity{
				ID:     "771",
				Status: "LIVE",
				Action: "LEND",
				APR:    2.5,
				Tokens: []apientity.MerklToken{
					{Address: "0xRECEIPT", Price: 1.01},
					{Address: "0xRESERVE", Price: 0},
				},
			}, nil
		},
	}
	footprint := &mockFootprintClient{
		QueryReserveRatesFunc: func(ctx context.Context) ([]apientity.FootprintReserveRow, error) {
			return []apientity.FootprintReserveRow{
				{Reserve: "0xreserve", LiquidityRate: 0.03, VariableBorrowRate: 0.05},
			}, nil
		},
	}

	svc := NewLendingService(merkl, footprint, nil, zap.NewNop())
	data := svc.GetLendingData(context.Background(), []string{"0xcampaign"})

	layerbank, ok := data["layerbank"]
	if !ok {
		t.Fatalf("expected layerbank block, got %v", data)
	}
	if len(layerbank.Entries) != 1 {
		t.Fatalf("expected one merged entry, got %d", len(layerbank.Entries))
	}

	merged := layerbank.Entries[0]
	if merged.Action != entity.ActionLend {
		t.Errorf("Action = %v, want lend", merged.Action)
	}
	if math.Abs(merged.OrganicAPR-3.0) > 1e-9 {
		t.Errorf("OrganicAPR = %v, want 3.0 (liquidity rate as percent)", merged.OrganicAPR)
	}
	if math.Abs(merged.TotalAPR-5.5) > 1e-9 {
		t.Errorf("TotalAPR = %v, want organic 3.0 + incentivized 2.5", merged.TotalAPR)
	}
	if merged.ExplorerAddress != "0xreceipt" {
		t.Errorf("ExplorerAddress = %q, want lower-cased receipt token", merged.ExplorerAddress)
	}
	if price, ok := layerbank.PriceFor("0xreceipt"); !ok || price != 1.01 {
		t.Errorf("PriceFor(receipt) = %v/%v, want 1.01", price, ok)
	}
}

func TestLayerBankReserveWithoutCampaignGetsBothSides(t *testing.T) {
	merkl := &mockMerklClient{
		GetOpportunityByCampaignFunc: func(ctx context.Context, campaignID string) (*apientity.MerklOpportunity, error) {
			return nil, nil
		},
	}
	footprint := &mockFootprintClient{
		QueryReserveRatesFunc: func(ctx context.Context) ([]apientity.FootprintReserveRow, error) {
			return []apientity.FootprintReserveRow{
				{Reserve: "0xRES", LiquidityRate: 0.02, VariableBorrowRate: 0.04},
			}, nil
		},
	}

	svc := NewLendingService(merkl, footprint, nil, zap.NewNop())
	data := svc.GetLendingData(context.Background(), nil)

	layerbank := data["layerbank"]
	if len(layerbank.Entries) != 2 {
		t.Fatalf("expected lend and borrow entries, got %d", len(layerbank.Entries))
	}

	var lend, borrow *entity.LendingEntry
	for i := range layerbank.Entries {
		switch layerbank.Entries[i].Action {
		case entity.ActionLend:
			lend = &layerbank.Entries[i]
		case entity.ActionBorrow:
			borrow = &layerbank.Entries[i]
		}
	}
	if lend == nil || borrow == nil {
		t.Fatalf("missing side: lend=%v borrow=%v", lend, borrow)
	}
	if math.Abs(lend.TotalAPR-2.0) > 1e-9 {
		t.Errorf("lend TotalAPR = %v, want 2.0", lend.TotalAPR)
	}
	if math.Abs(borrow.TotalAPR+4.0) > 1e-9 {
		t.Errorf("borrow TotalAPR = %v, want -4.0 (cost)", borrow.TotalAPR)
	}
	if !borrow.IsBorrow() {
		t.Errorf("borrow entry with negative APR must report IsBorrow")
	}
	if lend.ExplorerAddress != "" || borrow.ExplorerAddress != "" {
		t.Errorf("entries without campaigns must not claim a wallet token")
	}
}

func TestLayerBankSkipsNonLiveOpportunities(t *testing.T) {
	merkl := &mockMerklClient{
		GetOpportunityByCampaignFunc: func(ctx context.Context, campaignID string) (*apientity.MerklOpportunity, error) {
			return &apientity.MerklOpportunity{
				ID: "9", Status: "PAST", Action: "LEND", APR: 10,
				Tokens: []apientity.MerklToken{{Address: "0xA", Price: 1}, {Address: "0xB"}},
			}, nil
		},
	}
	footprint := &mockFootprintClient{
		QueryReserveRatesFunc: func(ctx context.Context) ([]apientity.FootprintReserveRow, error) {
			return nil, nil
		},
	}

	svc := NewLendingService(merkl, footprint, nil, zap.NewNop())
	data := svc.GetLendingData(context.Background(), []string{"0xc"})

	if _, ok := data["layerbank"]; ok {
		t.Errorf("PAST opportunity with no organic rows should produce no protocol block, got %v", data)
	}
}

func TestGetMarketItemsTropykus(t *testing.T) {
	tropykus := &mockTropykusClient{
		GetPortfolioFunc: func(ctx context.Context, address string) (*apientity.TropykusPortfolioResponse, error) {
			return &apientity.TropykusPortfolioResponse{
				Protocol: "Tropykus",
				PortfolioItems: []apientity.TropykusPortfolioItem{
					{Symbol: "kDOC", Balance: "12.5", Price: 1.0, USDValue: 12.5},
				},
				TotalItems: 1,
			}, nil
		},
	}

	svc := NewLendingService(&mockMerklClient{}, &mockFootprintClient{}, tropykus, zap.NewNop())
	items, err := svc.GetMarketItems(context.Background(), "0xABC")
	if err != nil {
		t.Fatalf("GetMarketItems returned error: %v", err)
	}
	if len(items) != 1 || items[0].USDValue != 12.5 || items[0].Protocol != "Tropykus" {
		t.Errorf("items = %+v, want one Tropykus item at 12.5 USD", items)
	}
}

func TestGetMarketItemsDisabled(t *testing.T) {
	svc := NewLendingService(&mockMerklClient{}, &mockFootprintClient{}, nil, zap.NewNop())
	items, err := svc.GetMarketItems(context.Background(), "0xABC")
	if err != nil || items != nil {
		t.Errorf("disabled market feed: items=%v err=%v, want nil/nil", items, err)
	}
}
