package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yield_tracker/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// execute runs a prepared fasthttp request honoring the context deadline when
// one is set, falling back to the client's default timeout otherwise.
func execute(ctx context.Context, c *fasthttp.Client, req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error {
	if deadline, ok := ctx.Deadline(); ok {
		return c.DoDeadline(req, resp, deadline)
	}
	return c.DoTimeout(req, resp, timeout)
}

// BlockscoutClient defines the interface for the Rootstock Blockscout v2 API.
type BlockscoutClient interface {
	GetTokenBalances(ctx context.Context, address string) ([]entity.BlockscoutTokenBalance, error)
	GetNFTItems(ctx context.Context, address string) ([]entity.BlockscoutNFTItem, error)
	GetTokenInfo(ctx context.Context, tokenAddress string) (*entity.BlockscoutTokenInfo, error)
}

// blockscoutClientImpl is the implementation of BlockscoutClient.
type blockscoutClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewBlockscoutClient creates a new instance of blockscoutClientImpl.
func NewBlockscoutClient(baseURL string, timeout time.Duration, logger *zap.Logger) BlockscoutClient {
	return &blockscoutClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("BlockscoutClient"),
	}
}

// GetTokenBalances implements the BlockscoutClient interface. The endpoint
// returns a bare array of balance entries.
func (c *blockscoutClientImpl) GetTokenBalances(ctx context.Context, address string) ([]entity.BlockscoutTokenBalance, error) {
	requestURL := fmt.Sprintf("%s/addresses/%s/token-balances", c.baseURL, strings.ToLower(address))

	c.logger.Debug("Requesting token balances from Blockscout", zap.String("url", requestURL))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var balances []entity.BlockscoutTokenBalance
	if err := json.Unmarshal(body, &balances); err != nil {
		c.logger.Error("Failed to unmarshal Blockscout token balances",
			zap.String("url", requestURL),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal token balances from %s: %w", requestURL, err)
	}

	c.logger.Debug("Fetched token balances",
		zap.String("address", address),
		zap.Int("count", len(balances)))
	return balances, nil
}

// GetNFTItems implements the BlockscoutClient interface.
func (c *blockscoutClientImpl) GetNFTItems(ctx context.Context, address string) ([]entity.BlockscoutNFTItem, error) {
	requestURL := fmt.Sprintf("%s/addresses/%s/nft?type=ERC-721%%2CERC-404%%2CERC-1155", c.baseURL, strings.ToLower(address))

	c.logger.Debug("Requesting NFT items from Blockscout", zap.String("url", requestURL))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var nftResp entity.BlockscoutNFTResponse
	if err := json.Unmarshal(body, &nftResp); err != nil {
		c.logger.Error("Failed to unmarshal Blockscout NFT response",
			zap.String("url", requestURL),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal NFT items from %s: %w", requestURL, err)
	}

	c.logger.Debug("Fetched NFT items",
		zap.String("address", address),
		zap.Int("count", len(nftResp.Items)))
	return nftResp.Items, nil
}

// GetTokenInfo implements the BlockscoutClient interface.
func (c *blockscoutClientImpl) GetTokenInfo(ctx context.Context, tokenAddress string) (*entity.BlockscoutTokenInfo, error) {
	requestURL := fmt.Sprintf("%s/tokens/%s", c.baseURL, strings.ToLower(tokenAddress))

	c.logger.Debug("Requesting token info from Blockscout", zap.String("url", requestURL))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var info entity.BlockscoutTokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		c.logger.Error("Failed to unmarshal Blockscout token info",
			zap.String("url", requestURL),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal token info from %s: %w", requestURL, err)
	}

	return &info, nil
}

func (c *blockscoutClientImpl) get(ctx context.Context, requestURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := execute(ctx, c.client, req, resp, c.timeout); err != nil {
		c.logger.Error("Failed to execute request to Blockscout", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Blockscout API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("blockscout request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
