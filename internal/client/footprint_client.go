package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"yield_tracker/internal/entity"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// FootprintClient defines the interface for the Footprint Analytics card API,
// the source of organic lending rates.
type FootprintClient interface {
	QueryReserveRates(ctx context.Context) ([]entity.FootprintReserveRow, error)
}

// footprintClientImpl is the implementation of FootprintClient.
type footprintClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	cardID  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewFootprintClient creates a new instance of footprintClientImpl.
func NewFootprintClient(baseURL, apiKey, cardID string, timeout time.Duration, logger *zap.Logger) FootprintClient {
	return &footprintClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		cardID:  cardID,
		timeout: timeout,
		logger:  logger.Named("FootprintClient"),
	}
}

// QueryReserveRates implements the FootprintClient interface. Rows arrive as
// positional tuples [latest_update, reserve, liquidityrate,
// variableborrowrate]; malformed rows are skipped.
func (c *footprintClientImpl) QueryReserveRates(ctx context.Context) ([]entity.FootprintReserveRow, error) {
	requestURL := fmt.Sprintf("%s/%s/query", c.baseURL, c.cardID)

	c.logger.Debug("Querying Footprint card", zap.String("url", requestURL), zap.String("cardId", c.cardID))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := execute(ctx, c.client, req, resp, c.timeout); err != nil {
		c.logger.Error("Failed to execute request to Footprint", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK && resp.StatusCode() != fasthttp.StatusCreated {
		c.logger.Error("Footprint API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("footprint request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var queryResp entity.FootprintQueryResponse
	if err := json.Unmarshal(resp.Body(), &queryResp); err != nil {
		c.logger.Error("Failed to unmarshal Footprint card response",
			zap.String("url", requestURL),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal Footprint card from %s: %w", requestURL, err)
	}

	rows := make([]entity.FootprintReserveRow, 0, len(queryResp.Data.Rows))
	for _, raw := range queryResp.Data.Rows {
		if len(raw) < 4 {
			continue
		}
		rows = append(rows, entity.FootprintReserveRow{
			LatestUpdate:       cellString(raw[0]),
			Reserve:            cellString(raw[1]),
			LiquidityRate:      cellFloat(raw[2]),
			VariableBorrowRate: cellFloat(raw[3]),
		})
	}

	c.logger.Debug("Fetched Footprint reserve rates", zap.Int("rows", len(rows)))
	return rows, nil
}

func cellString(v any) string {
	s, _ := v.(string)
	return s
}

func cellFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
