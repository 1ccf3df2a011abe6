package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// MidasClient defines the interface for the Midas data API.
type MidasClient interface {
	// GetAPYs returns the APY per token symbol as a fraction (0.05 = 5%).
	GetAPYs(ctx context.Context) (map[string]float64, error)
}

// midasClientImpl is the implementation of MidasClient.
type midasClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewMidasClient creates a new instance of midasClientImpl.
func NewMidasClient(baseURL string, timeout time.Duration, logger *zap.Logger) MidasClient {
	return &midasClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("MidasClient"),
	}
}

// GetAPYs implements the MidasClient interface.
func (c *midasClientImpl) GetAPYs(ctx context.Context) (map[string]float64, error) {
	requestURL := fmt.Sprintf("%s/apys", c.baseURL)

	c.logger.Debug("Requesting APYs from Midas", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := execute(ctx, c.client, req, resp, c.timeout); err != nil {
		c.logger.Error("Failed to execute request to Midas", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Midas API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("midas request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	apys := make(map[string]float64)
	if err := json.Unmarshal(resp.Body(), &apys); err != nil {
		c.logger.Error("Failed to unmarshal Midas APY response",
			zap.String("url", requestURL),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Midas APYs from %s: %w", requestURL, err)
	}

	c.logger.Debug("Fetched Midas APYs", zap.Int("count", len(apys)))
	return apys, nil
}
