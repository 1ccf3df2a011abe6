package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yield_tracker/internal/domain/entity"
	"yield_tracker/internal/engine"
	"yield_tracker/internal/metrics"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// PortfolioService orchestrates the source services into one valued
// portfolio snapshot per address.
type PortfolioService interface {
	GetPortfolio(ctx context.Context, address string) (*entity.Snapshot, error)
	GetWalletTokens(ctx context.Context, address string) ([]entity.TokenPosition, error)
}

// PortfolioOptions bounds the orchestrator's fan-out and snapshot caching.
type PortfolioOptions struct {
	MaxConcurrentRequests int
	RateLimitPerSecond    float64
	LimiterBurst          int
	SnapshotTTL           time.Duration
}

// portfolioServiceImpl is the implementation of PortfolioService.
type portfolioServiceImpl struct {
	balances BalanceService
	yield    YieldService
	lending  LendingService
	nfts     NFTService
	rewards  RewardsService

	cache   *gocache.Cache
	limiter *rate.Limiter
	opts    PortfolioOptions
	logger  *zap.Logger
}

// NewPortfolioService creates a new instance of portfolioServiceImpl.
func NewPortfolioService(
	balances BalanceService,
	yield YieldService,
	lending LendingService,
	nfts NFTService,
	rewards RewardsService,
	snapshotCache *gocache.Cache,
	opts PortfolioOptions,
	logger *zap.Logger,
) PortfolioService {
	if opts.MaxConcurrentRequests <= 0 {
		opts.MaxConcurrentRequests = 5
	}
	if opts.RateLimitPerSecond <= 0 {
		opts.RateLimitPerSecond = 10
	}
	if opts.LimiterBurst <= 0 {
		opts.LimiterBurst = 5
	}
	return &portfolioServiceImpl{
		balances: balances,
		yield:    yield,
		lending:  lending,
		nfts:     nfts,
		rewards:  rewards,
		cache:    snapshotCache,
		limiter:  rate.NewLimiter(rate.Limit(opts.RateLimitPerSecond), opts.LimiterBurst),
		opts:     opts,
		logger:   logger.Named("PortfolioService"),
	}
}

// GetPortfolio implements the PortfolioService interface. The wallet feed is
// mandatory; every other source degrades to empty on failure so a single
// upstream outage shrinks the snapshot instead of killing it. Snapshots are
// cached per lower-cased address for the configured TTL.
func (s *portfolioServiceImpl) GetPortfolio(ctx context.Context, address string) (*entity.Snapshot, error) {
	cacheKey := strings.ToLower(address)
	if cached, found := s.cache.Get(cacheKey); found {
		if snapshot, ok := cached.(*entity.Snapshot); ok {
			s.logger.Debug("Serving portfolio snapshot from cache", zap.String("address", address))
			return snapshot, nil
		}
	}

	buildStart := time.Now()

	walletSnap, err := s.balances.GetWalletTokens(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble wallet positions for %s: %w", address, err)
	}

	input := entity.PortfolioInput{WalletTokens: walletSnap.Positions}

	evidence := walletSnap.Evidence
	rewardsSummary, rewardsErr := s.fetchRewards(ctx, address)
	if rewardsErr != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("rewards").Inc()
		s.logger.Warn("Rewards probe failed, querying all sources",
			zap.String("address", address),
			zap.Error(rewardsErr))
		evidence = AllEvidence()
		rewardsSummary = &RewardsSummary{}
	} else if len(rewardsSummary.Rewards) > 0 {
		evidence.HasMerklRewards = true
	}
	input.Rewards = rewardsSummary.Rewards

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrentRequests)

	if evidence.HasYieldToken {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			yieldEntries, err := s.yield.GetYieldEntries(gctx, address)
			if err != nil {
				metrics.UpstreamErrorsTotal.WithLabelValues("yield").Inc()
				s.logger.Warn("Yield source degraded to empty",
					zap.String("address", address),
					zap.Error(err))
				return nil
			}
			input.YieldEntries = yieldEntries
			return nil
		})
	}

	if evidence.HasNFTs {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			nftPositions, err := s.nfts.GetNFTValuations(gctx, address)
			if err != nil {
				metrics.UpstreamErrorsTotal.WithLabelValues("nft").Inc()
				s.logger.Warn("NFT source degraded to empty",
					zap.String("address", address),
					zap.Error(err))
				return nil
			}
			input.NFTPositions = nftPositions
			return nil
		})
	}

	if evidence.HasLending {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			input.Lending = s.lending.GetLendingData(gctx, rewardsSummary.CampaignIDs)
			return nil
		})
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			marketItems, err := s.lending.GetMarketItems(gctx, address)
			if err != nil {
				metrics.UpstreamErrorsTotal.WithLabelValues("market").Inc()
				s.logger.Warn("Market source degraded to empty",
					zap.String("address", address),
					zap.Error(err))
				return nil
			}
			input.MarketItems = marketItems
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("portfolio fan-out canceled for %s: %w", address, err)
	}

	snapshot := engine.Evaluate(input)
	snapshot.Address = address
	snapshot.GeneratedAt = time.Now().UTC()

	s.cache.Set(cacheKey, &snapshot, s.opts.SnapshotTTL)
	metrics.SnapshotBuildDuration.Observe(time.Since(buildStart).Seconds())

	s.logger.Info("Portfolio snapshot built",
		zap.String("address", address),
		zap.Int("walletTokens", snapshot.Totals.TotalTokenCount),
		zap.Float64("totalValueUSD", snapshot.Totals.TotalValueUSD))
	return &snapshot, nil
}

// GetWalletTokens implements the PortfolioService interface. It serves the
// raw normalized wallet feed without service classification.
func (s *portfolioServiceImpl) GetWalletTokens(ctx context.Context, address string) ([]entity.TokenPosition, error) {
	walletSnap, err := s.balances.GetWalletTokens(ctx, address)
	if err != nil {
		return nil, err
	}
	return walletSnap.Positions, nil
}

func (s *portfolioServiceImpl) fetchRewards(ctx context.Context, address string) (*RewardsSummary, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.rewards.GetRewardsSummary(ctx, address)
}
