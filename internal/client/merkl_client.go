package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yield_tracker/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// MerklClient defines the interface for the Merkl v4 API, serving both
// claimable rewards and campaign opportunity lookups.
type MerklClient interface {
	GetUserRewards(ctx context.Context, address string) ([]entity.MerklChainRewards, error)
	GetOpportunityByCampaign(ctx context.Context, campaignID string) (*entity.MerklOpportunity, error)
}

// merklClientImpl is the implementation of MerklClient.
type merklClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	chainID string
	timeout time.Duration
	logger  *zap.Logger
}

// NewMerklClient creates a new instance of merklClientImpl.
func NewMerklClient(baseURL, chainID string, timeout time.Duration, logger *zap.Logger) MerklClient {
	return &merklClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		chainID: chainID,
		timeout: timeout,
		logger:  logger.Named("MerklClient"),
	}
}

// GetUserRewards implements the MerklClient interface. Merkl wants the
// address lower-cased and returns one entry per chain.
func (c *merklClientImpl) GetUserRewards(ctx context.Context, address string) ([]entity.MerklChainRewards, error) {
	requestURL := fmt.Sprintf("%s/users/%s/rewards?chainId=%s&test=false&claimableOnly=true&breakdownPage=0",
		c.baseURL, strings.ToLower(address), c.chainID)

	c.logger.Debug("Requesting user rewards from Merkl", zap.String("url", requestURL))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var chains []entity.MerklChainRewards
	if err := json.Unmarshal(body, &chains); err == nil {
		return chains, nil
	}

	// Some deployments answer with a single unwrapped chain object.
	var single entity.MerklChainRewards
	if err := json.Unmarshal(body, &single); err != nil {
		c.logger.Error("Failed to unmarshal Merkl rewards response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Merkl rewards from %s: %w", requestURL, err)
	}
	return []entity.MerklChainRewards{single}, nil
}

// GetOpportunityByCampaign implements the MerklClient interface. The
// opportunities endpoint answers with either a list or a single object; the
// first opportunity wins. A nil result means the campaign resolved to
// nothing.
func (c *merklClientImpl) GetOpportunityByCampaign(ctx context.Context, campaignID string) (*entity.MerklOpportunity, error) {
	requestURL := fmt.Sprintf("%s/opportunities/?campaignId=%s", c.baseURL, campaignID)

	c.logger.Debug("Requesting opportunity from Merkl",
		zap.String("url", requestURL),
		zap.String("campaignId", campaignID))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var opportunities []entity.MerklOpportunity
	if err := json.Unmarshal(body, &opportunities); err == nil {
		if len(opportunities) == 0 {
			return nil, nil
		}
		return &opportunities[0], nil
	}

	var single entity.MerklOpportunity
	if err := json.Unmarshal(body, &single); err != nil {
		c.logger.Error("Failed to unmarshal Merkl opportunity response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Merkl opportunity from %s: %w", requestURL, err)
	}
	if single.ID == "" {
		return nil, nil
	}
	return &single, nil
}

func (c *merklClientImpl) get(ctx context.Context, requestURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := execute(ctx, c.client, req, resp, c.timeout); err != nil {
		c.logger.Error("Failed to execute request to Merkl", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Merkl API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("merkl request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
