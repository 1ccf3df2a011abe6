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

// ExplorerClient defines the interface for the Rootstock explorer v3 API,
// the only source of the native rBTC balance.
type ExplorerClient interface {
	GetNativeBalance(ctx context.Context, address string) (string, error)
}

// explorerClientImpl is the implementation of ExplorerClient.
type explorerClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewExplorerClient creates a new instance of explorerClientImpl.
func NewExplorerClient(baseURL string, timeout time.Duration, logger *zap.Logger) ExplorerClient {
	return &explorerClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("ExplorerClient"),
	}
}

// GetNativeBalance implements the ExplorerClient interface. The v3 API
// requires a lowercase address and returns the balance as an already
// formatted decimal string. An empty string means the address has no
// recorded balance.
func (c *explorerClientImpl) GetNativeBalance(ctx context.Context, address string) (string, error) {
	requestURL := fmt.Sprintf("%s/balances/address/%s?take=1", c.baseURL, strings.ToLower(address))

	c.logger.Debug("Requesting native balance from explorer", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := execute(ctx, c.client, req, resp, c.timeout); err != nil {
		c.logger.Error("Failed to execute request to explorer", zap.String("url", requestURL), zap.Error(err))
		return "", fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Explorer API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return "", fmt.Errorf("explorer request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var balances entity.ExplorerBalancesResponse
	if err := json.Unmarshal(resp.Body(), &balances); err != nil {
		c.logger.Error("Failed to unmarshal explorer balances",
			zap.String("url", requestURL),
			zap.Error(err))
		return "", fmt.Errorf("failed to unmarshal explorer balances from %s: %w", requestURL, err)
	}

	if len(balances.Data) == 0 {
		c.logger.Debug("No native balance recorded for address", zap.String("address", address))
		return "", nil
	}

	return balances.Data[0].Balance, nil
}
