package service

import (
	"context"
	"math"
	"testing"

	apientity "yield_tracker/internal/entity"

	"go.uber.org/zap"
)

func TestGetRewardsSummary(t *testing.T) {
	merkl := &mockMerklClient{
		GetUserRewardsFunc: func(ctx context.Context, address string) ([]apientity.MerklChainRewards, error) {
			return []apientity.MerklChainRewards{
				{
					Rewards: []apientity.MerklReward{
						{
							Amount: "12300000000000000000",
							Token: apientity.MerklToken{
								Address:  "0xRWD",
								Symbol:   "MERKL",
								Decimals: 18,
								Price:    1.0,
							},
							Breakdowns: []apientity.MerklBreakdown{
								{CampaignID: "0xc1"},
								{CampaignID: "0xc1"},
								{CampaignID: "0xc2"},
							},
						},
						{
							// No token metadata, must be skipped.
							Amount: "5",
						},
					},
				},
			}, nil
		},
	}

	svc := NewRewardsService(merkl, zap.NewNop())
	summary, err := svc.GetRewardsSummary(context.Background(), "0xABC")
	if err != nil {
		t.Fatalf("GetRewardsSummary returned error: %v", err)
	}

	if len(summary.Rewards) != 1 {
		t.Fatalf("expected one reward (token-less entry skipped), got %d", len(summary.Rewards))
	}
	reward := summary.Rewards[0]
	if math.Abs(reward.USDValue-12.3) > 1e-9 {
		t.Errorf("USDValue = %v, want 12.3", reward.USDValue)
	}
	if reward.AmountFormatted != "12.3000 MERKL" {
		t.Errorf("AmountFormatted = %q, want \"12.3000 MERKL\"", reward.AmountFormatted)
	}

	if len(summary.CampaignIDs) != 2 {
		t.Fatalf("CampaignIDs = %v, want two deduplicated IDs", summary.CampaignIDs)
	}
}

func TestGetRewardsSummaryMalformedAmount(t *testing.T) {
	merkl := &mockMerklClient{
		GetUserRewardsFunc: func(ctx context.Context, address string) ([]apientity.MerklChainRewards, error) {
			return []apientity.MerklChainRewards{
				{
					Rewards: []apientity.MerklReward{
						{
							Amount: "garbage",
							Token:  apientity.MerklToken{Address: "0xRWD", Symbol: "X", Decimals: 18, Price: 5},
						},
					},
				},
			}, nil
		},
	}

	svc := NewRewardsService(merkl, zap.NewNop())
	summary, err := svc.GetRewardsSummary(context.Background(), "0xABC")
	if err != nil {
		t.Fatalf("GetRewardsSummary returned error: %v", err)
	}
	if len(summary.Rewards) != 1 || summary.Rewards[0].USDValue != 0 {
		t.Errorf("malformed amount must value to 0, got %+v", summary.Rewards)
	}
}
