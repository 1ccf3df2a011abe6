package service

import (
	"context"
	"fmt"
	"strings"

	"yield_tracker/internal/client"
	"yield_tracker/internal/domain/entity"

	"go.uber.org/zap"
)

// YieldService resolves the tracked yield tokens for an address: APR from the
// Midas data API and USD prices from the Merkl reward feed.
type YieldService interface {
	GetYieldEntries(ctx context.Context, address string) ([]entity.YieldEntry, error)
}

// yieldServiceImpl is the implementation of YieldService.
type yieldServiceImpl struct {
	midas  client.MidasClient
	merkl  client.MerklClient
	tokens map[string]string // token address (lowercase) -> Midas APY symbol
	logger *zap.Logger
}

// NewYieldService creates a new instance of yieldServiceImpl. The tokens map
// keys may arrive in any case; lookups are case-insensitive.
func NewYieldService(midas client.MidasClient, merkl client.MerklClient, tokens map[string]string, logger *zap.Logger) YieldService {
	normalized := make(map[string]string, len(tokens))
	for address, symbol := range tokens {
		normalized[strings.ToLower(address)] = symbol
	}
	return &yieldServiceImpl{
		midas:  midas,
		merkl:  merkl,
		tokens: normalized,
		logger: logger.Named("YieldService"),
	}
}

// GetYieldEntries implements the YieldService interface. Only configured
// tokens whose price shows up in the address's Merkl feed produce entries;
// the Midas APY fraction is converted to a percentage.
func (s *yieldServiceImpl) GetYieldEntries(ctx context.Context, address string) ([]entity.YieldEntry, error) {
	apys, err := s.midas.GetAPYs(ctx)
	if err != nil {
		s.logger.Warn("Failed to fetch Midas APYs, yield entries will carry zero APR", zap.Error(err))
		apys = map[string]float64{}
	}

	prices, err := s.merklPrices(ctx, address)
	if err != nil {
		return nil, err
	}

	entries := make([]entity.YieldEntry, 0, len(s.tokens))
	for tokenAddress, apySymbol := range s.tokens {
		price, ok := prices[tokenAddress]
		if !ok {
			continue
		}
		entries = append(entries, entity.YieldEntry{
			TokenAddress: tokenAddress,
			Symbol:       price.Symbol,
			Decimals:     entity.IntOf(price.Decimals),
			PriceUSD:     price.Price,
			APRPercent:   apys[apySymbol] * 100,
			Protocol:     "Midas",
		})
	}

	s.logger.Debug("Resolved yield entries",
		zap.String("address", address),
		zap.Int("count", len(entries)))
	return entries, nil
}

type merklTokenPrice struct {
	Symbol   string
	Decimals int
	Price    float64
}

// merklPrices extracts the price of every configured yield token present in
// the address's Merkl reward feed.
func (s *yieldServiceImpl) merklPrices(ctx context.Context, address string) (map[string]merklTokenPrice, error) {
	chains, err := s.merkl.GetUserRewards(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Merkl prices for %s: %w", address, err)
	}

	prices := make(map[string]merklTokenPrice)
	for _, chain := range chains {
		for _, reward := range chain.Rewards {
			key := strings.ToLower(reward.Token.Address)
			if _, tracked := s.tokens[key]; !tracked {
				continue
			}
			prices[key] = merklTokenPrice{
				Symbol:   reward.Token.Symbol,
				Decimals: reward.Token.Decimals,
				Price:    reward.Token.Price,
			}
		}
	}
	return prices, nil
}
