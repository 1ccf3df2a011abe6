package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"yield_tracker/internal/client"
	"yield_tracker/internal/domain/entity"
	"yield_tracker/internal/pkg/utils"

	"go.uber.org/zap"
)

// RewardsSummary holds the claimable rewards for one address plus the
// campaign IDs they originate from, which drive the lending lookups.
type RewardsSummary struct {
	Rewards     []entity.RewardEntry
	CampaignIDs []string
}

// RewardsService resolves claimable Merkl rewards into USD-valued entries.
type RewardsService interface {
	GetRewardsSummary(ctx context.Context, address string) (*RewardsSummary, error)
}

// rewardsServiceImpl is the implementation of RewardsService.
type rewardsServiceImpl struct {
	merkl  client.MerklClient
	logger *zap.Logger
}

// NewRewardsService creates a new instance of rewardsServiceImpl.
func NewRewardsService(merkl client.MerklClient, logger *zap.Logger) RewardsService {
	return &rewardsServiceImpl{
		merkl:  merkl,
		logger: logger.Named("RewardsService"),
	}
}

// GetRewardsSummary implements the RewardsService interface. Each reward's
// USD value is its raw amount scaled by the token decimals times the Merkl
// price; rewards without token metadata are skipped.
func (s *rewardsServiceImpl) GetRewardsSummary(ctx context.Context, address string) (*RewardsSummary, error) {
	chains, err := s.merkl.GetUserRewards(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Merkl rewards for %s: %w", address, err)
	}

	summary := &RewardsSummary{}
	seenCampaigns := make(map[string]struct{})

	for _, chain := range chains {
		for _, reward := range chain.Rewards {
			if reward.Token.Address == "" {
				s.logger.Warn("Reward missing token information, skipping")
				continue
			}

			amount := scaleRewardAmount(reward.Amount, reward.Token.Decimals)
			usdValue := amount * reward.Token.Price

			summary.Rewards = append(summary.Rewards, entity.RewardEntry{
				TokenAddress:    reward.Token.Address,
				Symbol:          reward.Token.Symbol,
				AmountFormatted: utils.FormatTokenAmount(amount, reward.Token.Symbol),
				PriceUSD:        reward.Token.Price,
				USDValue:        usdValue,
			})

			for _, breakdown := range reward.Breakdowns {
				if breakdown.CampaignID == "" {
					continue
				}
				if _, seen := seenCampaigns[breakdown.CampaignID]; seen {
					continue
				}
				seenCampaigns[breakdown.CampaignID] = struct{}{}
				summary.CampaignIDs = append(summary.CampaignIDs, breakdown.CampaignID)
			}
		}
	}

	s.logger.Debug("Resolved Merkl rewards",
		zap.String("address", address),
		zap.Int("rewards", len(summary.Rewards)),
		zap.Int("campaigns", len(summary.CampaignIDs)))
	return summary, nil
}

func scaleRewardAmount(raw string, decimals int) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	if decimals < 0 {
		decimals = entity.DefaultDecimals
	}
	return v / math.Pow(10, float64(decimals))
}
