package client

import (
	"context"
	"fmt"
	"time"

	"yield_tracker/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// IcarusClient defines the interface for the Icarus Tools position analytics
// API, which values concentrated liquidity NFTs.
type IcarusClient interface {
	GetPositionValuation(ctx context.Context, tokenID int64) (*entity.IcarusPosition, error)
}

// icarusClientImpl is the implementation of IcarusClient.
type icarusClientImpl struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewIcarusClient creates a new instance of icarusClientImpl. The url points
// directly at the analyticsPosition endpoint.
func NewIcarusClient(url string, timeout time.Duration, logger *zap.Logger) IcarusClient {
	return &icarusClientImpl{
		client:  &fasthttp.Client{},
		url:     url,
		timeout: timeout,
		logger:  logger.Named("IcarusClient"),
	}
}

// GetPositionValuation implements the IcarusClient interface.
func (c *icarusClientImpl) GetPositionValuation(ctx context.Context, tokenID int64) (*entity.IcarusPosition, error) {
	payload, err := json.Marshal(entity.IcarusAnalyticsRequest{
		Params: []entity.IcarusTokenParam{{TokenID: tokenID}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Icarus request for token %d: %w", tokenID, err)
	}

	c.logger.Debug("Requesting position valuation from Icarus",
		zap.String("url", c.url),
		zap.Int64("tokenId", tokenID))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(payload)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := execute(ctx, c.client, req, resp, c.timeout); err != nil {
		c.logger.Error("Failed to execute request to Icarus", zap.String("url", c.url), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", c.url, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Icarus API request failed",
			zap.String("url", c.url),
			zap.Int("statusCode", resp.StatusCode()),
			zap.Int64("tokenId", tokenID),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("icarus request to %s failed with status %d", c.url, resp.StatusCode())
	}

	var analyticsResp entity.IcarusAnalyticsResponse
	if err := json.Unmarshal(resp.Body(), &analyticsResp); err != nil {
		c.logger.Error("Failed to unmarshal Icarus response",
			zap.String("url", c.url),
			zap.Int64("tokenId", tokenID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Icarus position for token %d: %w", tokenID, err)
	}

	return &analyticsResp.Result.Position, nil
}
