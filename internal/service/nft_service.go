package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"yield_tracker/internal/client"
	"yield_tracker/internal/domain/entity"
	apientity "yield_tracker/internal/entity"

	"go.uber.org/zap"
)

// NFTService values the concentrated liquidity NFTs an address holds by
// crossing the Blockscout inventory with Icarus position analytics.
type NFTService interface {
	GetNFTValuations(ctx context.Context, address string) ([]entity.NFTPosition, error)
}

// nftServiceImpl is the implementation of NFTService.
type nftServiceImpl struct {
	blockscout client.BlockscoutClient
	icarus     client.IcarusClient
	logger     *zap.Logger
}

// NewNFTService creates a new instance of nftServiceImpl.
func NewNFTService(blockscout client.BlockscoutClient, icarus client.IcarusClient, logger *zap.Logger) NFTService {
	return &nftServiceImpl{
		blockscout: blockscout,
		icarus:     icarus,
		logger:     logger.Named("NFTService"),
	}
}

// GetNFTValuations implements the NFTService interface. Only positions with
// non-zero remaining liquidity are valued; closed positions are skipped
// silently, and a single failed valuation does not fail the batch.
func (s *nftServiceImpl) GetNFTValuations(ctx context.Context, address string) ([]entity.NFTPosition, error) {
	items, err := s.blockscout.GetNFTItems(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch NFT inventory for %s: %w", address, err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var valuations []entity.NFTPosition
	for _, item := range items {
		if item.ID == "" || item.Token.AddressHash == "" {
			s.logger.Warn("Skipping NFT item with missing id or collection address")
			continue
		}

		position := s.valuePosition(ctx, item)
		if position != nil {
			valuations = append(valuations, *position)
		}
	}

	s.logger.Debug("Valued NFT positions",
		zap.String("address", address),
		zap.Int("inventory", len(items)),
		zap.Int("valued", len(valuations)))
	return valuations, nil
}

func (s *nftServiceImpl) valuePosition(ctx context.Context, item apientity.BlockscoutNFTItem) *entity.NFTPosition {
	tokenID, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		s.logger.Warn("NFT id is not numeric, skipping",
			zap.String("id", item.ID),
			zap.String("collection", item.Token.AddressHash))
		return nil
	}

	position, err := s.icarus.GetPositionValuation(ctx, tokenID)
	if err != nil {
		s.logger.Warn("Failed to value NFT position",
			zap.Int64("tokenId", tokenID),
			zap.Error(err))
		return nil
	}

	liquidity, _ := position.CurrentLiquidity.Float64()
	if liquidity == 0 {
		return nil
	}

	collection := strings.ToLower(item.Token.AddressHash)
	for _, event := range position.PositionEvents {
		if strings.ToLower(event.Owner) != collection {
			continue
		}

		name := item.Token.Name
		if item.Name != nil && *item.Name != "" {
			name = *item.Name
		}
		return &entity.NFTPosition{
			TokenAddress:       item.Token.AddressHash,
			PositionID:         item.ID,
			Name:               name,
			TotalValueUSD:      event.CurrentValues.TotalValueCurrent,
			UncollectedFeesUSD: entity.FloatOf(position.PositionProfit.UncollectedUSDFees),
			Protocol:           "Uniswap",
		}
	}
	return nil
}
