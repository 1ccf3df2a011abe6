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

// TropykusClient defines the interface for the Tropykus market portfolio API.
type TropykusClient interface {
	GetPortfolio(ctx context.Context, address string) (*entity.TropykusPortfolioResponse, error)
}

// tropykusClientImpl is the implementation of TropykusClient.
type tropykusClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewTropykusClient creates a new instance of tropykusClientImpl.
func NewTropykusClient(baseURL string, timeout time.Duration, logger *zap.Logger) TropykusClient {
	return &tropykusClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("TropykusClient"),
	}
}

// GetPortfolio implements the TropykusClient interface.
func (c *tropykusClientImpl) GetPortfolio(ctx context.Context, address string) (*entity.TropykusPortfolioResponse, error) {
	requestURL := fmt.Sprintf("%s/portfolio/%s", c.baseURL, strings.ToLower(address))

	c.logger.Debug("Requesting portfolio from Tropykus", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := execute(ctx, c.client, req, resp, c.timeout); err != nil {
		c.logger.Error("Failed to execute request to Tropykus", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Tropykus API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("tropykus request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var portfolio entity.TropykusPortfolioResponse
	if err := json.Unmarshal(resp.Body(), &portfolio); err != nil {
		c.logger.Error("Failed to unmarshal Tropykus portfolio",
			zap.String("url", requestURL),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Tropykus portfolio from %s: %w", requestURL, err)
	}

	return &portfolio, nil
}
