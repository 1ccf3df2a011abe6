package service

import (
	"context"
	"strings"

	"yield_tracker/internal/client"
	"yield_tracker/internal/domain/entity"
	apientity "yield_tracker/internal/entity"

	"go.uber.org/zap"
)

// LendingService merges organic rates from Footprint Analytics with
// incentivized campaign APRs from Merkl into per-protocol lending data, and
// fetches direct market positions from protocols that report USD values
// themselves.
type LendingService interface {
	GetLendingData(ctx context.Context, campaignIDs []string) map[string]entity.LendingProtocolData
	GetMarketItems(ctx context.Context, address string) ([]entity.MarketItem, error)
}

// lendingServiceImpl is the implementation of LendingService.
type lendingServiceImpl struct {
	merkl     client.MerklClient
	footprint client.FootprintClient
	tropykus  client.TropykusClient // nil when the Tropykus feed is disabled
	logger    *zap.Logger
}

// NewLendingService creates a new instance of lendingServiceImpl. tropykus
// may be nil.
func NewLendingService(merkl client.MerklClient, footprint client.FootprintClient, tropykus client.TropykusClient, logger *zap.Logger) LendingService {
	return &lendingServiceImpl{
		merkl:     merkl,
		footprint: footprint,
		tropykus:  tropykus,
		logger:    logger.Named("LendingService"),
	}
}

// incentivizedEntry is one LIVE Merkl lending opportunity. The explorer
// address is the receipt token that shows up in wallets; the reserve address
// is the underlying asset reported by Footprint.
type incentivizedEntry struct {
	campaignID      string
	status          string
	action          string
	apr             float64
	price           float64
	reserveAddress  string
	explorerAddress string
}

// GetLendingData implements the LendingService interface. The result maps
// protocol key to merged entries and the protocol's price table. Upstream
// failures degrade to an empty map rather than an error so one protocol
// outage never hides the rest of the portfolio.
func (s *lendingServiceImpl) GetLendingData(ctx context.Context, campaignIDs []string) map[string]entity.LendingProtocolData {
	result := make(map[string]entity.LendingProtocolData)

	layerbank := s.layerBankData(ctx, campaignIDs)
	if len(layerbank.Entries) > 0 || len(layerbank.TokenPrices) > 0 {
		result["layerbank"] = layerbank
	}

	return result
}

// layerBankData builds the LayerBank protocol block: organic rates per
// reserve from Footprint merged with the incentivized campaigns that target
// the same reserve.
func (s *lendingServiceImpl) layerBankData(ctx context.Context, campaignIDs []string) entity.LendingProtocolData {
	data := entity.LendingProtocolData{
		Protocol:    "LayerBank",
		TokenPrices: make(map[string]float64),
	}

	incentivized := s.fetchIncentivized(ctx, campaignIDs)
	for _, inc := range incentivized {
		if inc.explorerAddress != "" && inc.price > 0 {
			data.TokenPrices[inc.explorerAddress] = inc.price
		}
	}

	organicRows, err := s.footprint.QueryReserveRates(ctx)
	if err != nil {
		s.logger.Warn("Failed to fetch organic rates from Footprint", zap.Error(err))
		organicRows = nil
	}

	for _, row := range organicRows {
		reserve := strings.ToLower(strings.TrimSpace(row.Reserve))
		if reserve == "" {
			continue
		}

		var matched []incentivizedEntry
		for _, inc := range incentivized {
			if inc.reserveAddress == reserve {
				matched = append(matched, inc)
			}
		}

		if len(matched) == 0 {
			// No campaign targets this reserve; still expose both sides of
			// the market so the APR display is complete.
			data.Entries = append(data.Entries,
				mergeEntry(row, nil, entity.ActionLend),
				mergeEntry(row, nil, entity.ActionBorrow))
			continue
		}

		for i := range matched {
			action := entity.ActionLend
			if matched[i].action == "BORROW" {
				action = entity.ActionBorrow
			}
			data.Entries = append(data.Entries, mergeEntry(row, &matched[i], action))
		}
	}

	s.logger.Debug("Built LayerBank lending data",
		zap.Int("entries", len(data.Entries)),
		zap.Int("pricedTokens", len(data.TokenPrices)))
	return data
}

// fetchIncentivized resolves each campaign ID to its LIVE opportunity.
// Campaigns that fail to resolve are skipped.
func (s *lendingServiceImpl) fetchIncentivized(ctx context.Context, campaignIDs []string) []incentivizedEntry {
	var entries []incentivizedEntry
	for _, campaignID := range campaignIDs {
		opportunity, err := s.merkl.GetOpportunityByCampaign(ctx, campaignID)
		if err != nil {
			s.logger.Warn("Failed to resolve campaign opportunity",
				zap.String("campaignId", campaignID),
				zap.Error(err))
			continue
		}
		if opportunity == nil || opportunity.Status != "LIVE" || opportunity.APR <= 0 {
			continue
		}
		if len(opportunity.Tokens) < 2 {
			continue
		}

		entries = append(entries, incentivizedEntry{
			campaignID:      campaignID,
			status:          opportunity.Status,
			action:          opportunity.Action,
			apr:             opportunity.APR,
			price:           opportunity.Tokens[0].Price,
			reserveAddress:  strings.ToLower(opportunity.Tokens[1].Address),
			explorerAddress: strings.ToLower(opportunity.Tokens[0].Address),
		})
	}
	return entries
}

// mergeEntry combines one organic reserve row with an optional incentivized
// campaign. Rates arrive as fractions and convert to percentages; the borrow
// side's organic rate is a cost and therefore negative, with incentives
// reducing it.
func mergeEntry(row apientity.FootprintReserveRow, inc *incentivizedEntry, action entity.LendingAction) entity.LendingEntry {
	var organicAPR float64
	switch action {
	case entity.ActionBorrow:
		organicAPR = -(row.VariableBorrowRate * 100)
	default:
		organicAPR = row.LiquidityRate * 100
	}

	merged := entity.LendingEntry{
		ReserveAddress: strings.ToLower(strings.TrimSpace(row.Reserve)),
		Action:         action,
		OrganicAPR:     organicAPR,
		TotalAPR:       organicAPR,
	}
	if inc != nil {
		merged.IncentivizedAPR = inc.apr
		merged.TotalAPR = organicAPR + inc.apr
		merged.CampaignID = inc.campaignID
		merged.Status = inc.status
		merged.ExplorerAddress = inc.explorerAddress
	}
	return merged
}

// GetMarketItems implements the LendingService interface. Market protocols
// report USD values directly; only Tropykus is wired for now.
func (s *lendingServiceImpl) GetMarketItems(ctx context.Context, address string) ([]entity.MarketItem, error) {
	if s.tropykus == nil {
		return nil, nil
	}

	portfolio, err := s.tropykus.GetPortfolio(ctx, address)
	if err != nil {
		return nil, err
	}

	items := make([]entity.MarketItem, 0, len(portfolio.PortfolioItems))
	for _, item := range portfolio.PortfolioItems {
		items = append(items, entity.MarketItem{
			Protocol:         "Tropykus",
			Symbol:           item.Symbol,
			BalanceFormatted: item.Balance,
			PriceUSD:         item.Price,
			USDValue:         item.USDValue,
		})
	}
	return items, nil
}
