package service

import (
	"context"
	"fmt"
	"strings"

	"yield_tracker/internal/client"
	"yield_tracker/internal/domain/entity"
	apientity "yield_tracker/internal/entity"

	"go.uber.org/zap"
)

const (
	nativeSymbol  = "rBTC"
	nativeName    = "Rootstock Smart Bitcoin"
	nativeIconURL = "https://assets.coingecko.com/coins/images/5070/small/RBTC-logo.png?1718152038"

	wrappedSymbol = "WRBTC"
	wrappedName   = "Wrapped Rootstock Smart Bitcoin"
)

// WalletSnapshot is the normalized wallet feed with the evidence flags the
// raw Blockscout response carried.
type WalletSnapshot struct {
	Positions []entity.TokenPosition
	Evidence  Evidence
}

// BalanceService assembles a wallet's token positions from Blockscout and the
// Rootstock explorer, including the native rBTC injection.
type BalanceService interface {
	GetWalletTokens(ctx context.Context, address string) (*WalletSnapshot, error)
}

// balanceServiceImpl is the implementation of BalanceService.
type balanceServiceImpl struct {
	blockscout   client.BlockscoutClient
	explorer     client.ExplorerClient
	wrbtcAddress string
	logger       *zap.Logger
}

// NewBalanceService creates a new instance of balanceServiceImpl.
func NewBalanceService(blockscout client.BlockscoutClient, explorer client.ExplorerClient, wrbtcAddress string, logger *zap.Logger) BalanceService {
	return &balanceServiceImpl{
		blockscout:   blockscout,
		explorer:     explorer,
		wrbtcAddress: wrbtcAddress,
		logger:       logger.Named("BalanceService"),
	}
}

// GetWalletTokens implements the BalanceService interface. ERC-721 entries
// are dropped from the fungible feed (they are valued by the NFT service)
// but still counted as NFT evidence. When the explorer reports a native
// balance it is injected at the head of the list, priced from an RBTC/WRBTC
// wallet entry or, failing that, the WRBTC token info endpoint, and the
// wrapped RBTC entry is renamed to WRBTC to keep symbols unambiguous.
func (s *balanceServiceImpl) GetWalletTokens(ctx context.Context, address string) (*WalletSnapshot, error) {
	rawBalances, err := s.blockscout.GetTokenBalances(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token balances for %s: %w", address, err)
	}

	evidence := gatherBalanceEvidence(rawBalances)

	positions := make([]entity.TokenPosition, 0, len(rawBalances))
	for _, raw := range rawBalances {
		if raw.Token.Type == "ERC-721" {
			continue
		}
		positions = append(positions, toTokenPosition(raw))
	}

	positions = s.injectNativeBalance(ctx, address, positions)

	s.logger.Debug("Assembled wallet positions",
		zap.String("address", address),
		zap.Int("count", len(positions)))

	return &WalletSnapshot{Positions: positions, Evidence: evidence}, nil
}

// injectNativeBalance prepends the native rBTC position when the explorer
// reports one. The explorer balance arrives pre-formatted, so the position
// carries zero decimals and passes through scaling unchanged.
func (s *balanceServiceImpl) injectNativeBalance(ctx context.Context, address string, positions []entity.TokenPosition) []entity.TokenPosition {
	nativeBalance, err := s.explorer.GetNativeBalance(ctx, address)
	if err != nil {
		s.logger.Warn("Failed to fetch native balance, continuing without it",
			zap.String("address", address),
			zap.Error(err))
		return positions
	}
	if nativeBalance == "" {
		return positions
	}

	price := s.resolveNativePrice(ctx, positions)

	native := entity.TokenPosition{
		Token: entity.TokenDescriptor{
			Address:      entity.ZeroAddress,
			Symbol:       nativeSymbol,
			Name:         nativeName,
			Decimals:     entity.IntOf(0),
			Type:         entity.TokenTypeNative,
			ExchangeRate: price,
			IconURL:      nativeIconURL,
		},
		RawBalance: nativeBalance,
	}

	// The wallet's own RBTC entry is the wrapped token; rename it so the
	// native and wrapped positions are distinguishable.
	for i := range positions {
		if positions[i].Token.Symbol == "RBTC" {
			positions[i].Token.Symbol = wrappedSymbol
			positions[i].Token.Name = wrappedName
			break
		}
	}

	return append([]entity.TokenPosition{native}, positions...)
}

// resolveNativePrice finds a USD price for native rBTC: first from an
// RBTC/WRBTC entry already in the wallet, then from the WRBTC token info
// endpoint. Blockscout carries no price for the native asset itself.
func (s *balanceServiceImpl) resolveNativePrice(ctx context.Context, positions []entity.TokenPosition) entity.OptionalFloat {
	for _, pos := range positions {
		if pos.Token.Symbol == "RBTC" || pos.Token.Symbol == wrappedSymbol {
			if pos.Token.ExchangeRate.Valid {
				return pos.Token.ExchangeRate
			}
		}
	}

	info, err := s.blockscout.GetTokenInfo(ctx, s.wrbtcAddress)
	if err != nil {
		s.logger.Warn("Could not fetch WRBTC price for native valuation", zap.Error(err))
		return entity.OptionalFloat{}
	}
	if info.ExchangeRate == nil {
		s.logger.Warn("WRBTC token info carries no exchange rate")
		return entity.OptionalFloat{}
	}
	return entity.ParseOptionalFloat(*info.ExchangeRate)
}

// toTokenPosition converts a raw Blockscout balance entry into the domain
// position, tolerating null decimals and exchange rates.
func toTokenPosition(raw apientity.BlockscoutTokenBalance) entity.TokenPosition {
	token := entity.TokenDescriptor{
		Address: strings.TrimSpace(raw.Token.AddressHash),
		Symbol:  raw.Token.Symbol,
		Name:    raw.Token.Name,
		Type:    entity.TokenTypeFungible,
		IconURL: raw.Token.IconURL,
	}
	if raw.Token.Decimals != nil {
		token.Decimals = entity.ParseOptionalInt(*raw.Token.Decimals)
	}
	if raw.Token.ExchangeRate != nil {
		token.ExchangeRate = entity.ParseOptionalFloat(*raw.Token.ExchangeRate)
	}
	return entity.TokenPosition{
		Token:      token,
		RawBalance: raw.Value,
	}
}
