package service

import (
	"context"

	"yield_tracker/internal/domain/entity"
	apientity "yield_tracker/internal/entity"
)

type mockBlockscoutClient struct {
	GetTokenBalancesFunc func(ctx context.Context, address string) ([]apientity.BlockscoutTokenBalance, error)
	GetNFTItemsFunc      func(ctx context.Context, address string) ([]apientity.BlockscoutNFTItem, error)
	GetTokenInfoFunc     func(ctx context.Context, tokenAddress string) (*apientity.BlockscoutTokenInfo, error)
}

func (m *mockBlockscoutClient) GetTokenBalances(ctx context.Context, address string) ([]apientity.BlockscoutTokenBalance, error) {
	return m.GetTokenBalancesFunc(ctx, address)
}

func (m *mockBlockscoutClient) GetNFTItems(ctx context.Context, address string) ([]apientity.BlockscoutNFTItem, error) {
	return m.GetNFTItemsFunc(ctx, address)
}

func (m *mockBlockscoutClient) GetTokenInfo(ctx context.Context, tokenAddress string) (*apientity.BlockscoutTokenInfo, error) {
	return m.GetTokenInfoFunc(ctx, tokenAddress)
}

type mockExplorerClient struct {
	GetNativeBalanceFunc func(ctx context.Context, address string) (string, error)
}

func (m *mockExplorerClient) GetNativeBalance(ctx context.Context, address string) (string, error) {
	return m.GetNativeBalanceFunc(ctx, address)
}

type mockMerklClient struct {
	GetUserRewardsFunc           func(ctx context.Context, address string) ([]apientity.MerklChainRewards, error)
	GetOpportunityByCampaignFunc func(ctx context.Context, campaignID string) (*apientity.MerklOpportunity, error)
}

func (m *mockMerklClient) GetUserRewards(ctx context.Context, address string) ([]apientity.MerklChainRewards, error) {
	return m.GetUserRewardsFunc(ctx, address)
}

func (m *mockMerklClient) GetOpportunityByCampaign(ctx context.Context, campaignID string) (*apientity.MerklOpportunity, error) {
	return m.GetOpportunityByCampaignFunc(ctx, campaignID)
}

type mockMidasClient struct {
	GetAPYsFunc func(ctx context.Context) (map[string]float64, error)
}

func (m *mockMidasClient) GetAPYs(ctx context.Context) (map[string]float64, error) {
	return m.GetAPYsFunc(ctx)
}

type mockFootprintClient struct {
	QueryReserveRatesFunc func(ctx context.Context) ([]apientity.FootprintReserveRow, error)
}

func (m *mockFootprintClient) QueryReserveRates(ctx context.Context) ([]apientity.FootprintReserveRow, error) {
	return m.QueryReserveRatesFunc(ctx)
}

type mockIcarusClient struct {
	GetPositionValuationFunc func(ctx context.Context, tokenID int64) (*apientity.IcarusPosition, error)
}

func (m *mockIcarusClient) GetPositionValuation(ctx context.Context, tokenID int64) (*apientity.IcarusPosition, error) {
	return m.GetPositionValuationFunc(ctx, tokenID)
}

type mockTropykusClient struct {
	GetPortfolioFunc func(ctx context.Context, address string) (*apientity.TropykusPortfolioResponse, error)
}

func (m *mockTropykusClient) GetPortfolio(ctx context.Context, address string) (*apientity.TropykusPortfolioResponse, error) {
	return m.GetPortfolioFunc(ctx, address)
}

type mockBalanceService struct {
	GetWalletTokensFunc func(ctx context.Context, address string) (*WalletSnapshot, error)
}

func (m *mockBalanceService) GetWalletTokens(ctx context.Context, address string) (*WalletSnapshot, error) {
	return m.GetWalletTokensFunc(ctx, address)
}

type mockYieldService struct {
	GetYieldEntriesFunc func(ctx context.Context, address string) ([]entity.YieldEntry, error)
}

func (m *mockYieldService) GetYieldEntries(ctx context.Context, address string) ([]entity.YieldEntry, error) {
	return m.GetYieldEntriesFunc(ctx, address)
}

type mockLendingService struct {
	GetLendingDataFunc func(ctx context.Context, campaignIDs []string) map[string]entity.LendingProtocolData
	GetMarketItemsFunc func(ctx context.Context, address string) ([]entity.MarketItem, error)
}

func (m *mockLendingService) GetLendingData(ctx context.Context, campaignIDs []string) map[string]entity.LendingProtocolData {
	return m.GetLendingDataFunc(ctx, campaignIDs)
}

func (m *mockLendingService) GetMarketItems(ctx context.Context, address string) ([]entity.MarketItem, error) {
	return m.GetMarketItemsFunc(ctx, address)
}

type mockNFTService struct {
	GetNFTValuationsFunc func(ctx context.Context, address string) ([]entity.NFTPosition, error)
}

func (m *mockNFTService) GetNFTValuations(ctx context.Context, address string) ([]entity.NFTPosition, error) {
	return m.GetNFTValuationsFunc(ctx, address)
}

type mockRewardsService struct {
	GetRewardsSummaryFunc func(ctx context.Context, address string) (*RewardsSummary, error)
}

func (m *mockRewardsService) GetRewardsSummary(ctx context.Context, address string) (*RewardsSummary, error) {
	return m.GetRewardsSummaryFunc(ctx, address)
}
