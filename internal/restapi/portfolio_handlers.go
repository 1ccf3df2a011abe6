package restapi

import (
	"bytes"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"yield_tracker/internal/domain/entity"
	"yield_tracker/internal/engine"
	"yield_tracker/internal/export"
	"yield_tracker/internal/metrics"
	"yield_tracker/internal/pkg/utils"
	"yield_tracker/internal/service"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type portfolioHandlers struct {
	portfolio service.PortfolioService
	logger    *zap.Logger
}

func newPortfolioHandlers(portfolio service.PortfolioService, logger *zap.Logger) *portfolioHandlers {
	return &portfolioHandlers{
		portfolio: portfolio,
		logger:    logger.Named("PortfolioHandlers"),
	}
}

func (h *portfolioHandlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// getPortfolio serves the full valued snapshot for one address.
func (h *portfolioHandlers) getPortfolio(c *gin.Context) {
	address, ok := h.requireAddress(c, "portfolio")
	if !ok {
		return
	}

	snapshot, err := h.portfolio.GetPortfolio(c.Request.Context(), address)
	if err != nil {
		h.logger.Error("Failed to build portfolio snapshot",
			zap.String("address", address),
			zap.Error(err))
		h.count("portfolio", http.StatusBadGateway)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to assemble portfolio"})
		return
	}

	h.count("portfolio", http.StatusOK)
	c.JSON(http.StatusOK, snapshot)
}

// exportPortfolio streams the snapshot as an XLSX workbook.
func (h *portfolioHandlers) exportPortfolio(c *gin.Context) {
	address, ok := h.requireAddress(c, "export")
	if !ok {
		return
	}

	snapshot, err := h.portfolio.GetPortfolio(c.Request.Context(), address)
	if err != nil {
		h.logger.Error("Failed to build snapshot for export",
			zap.String("address", address),
			zap.Error(err))
		h.count("export", http.StatusBadGateway)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to assemble portfolio"})
		return
	}

	workbook, err := export.BuildWorkbook(snapshot)
	if err != nil {
		h.logger.Error("Failed to render workbook",
			zap.String("address", address),
			zap.Error(err))
		h.count("export", http.StatusInternalServerError)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
		return
	}
	defer workbook.Close()

	var buf bytes.Buffer
	if _, err := workbook.WriteTo(&buf); err != nil {
		h.logger.Error("Failed to serialize workbook",
			zap.String("address", address),
			zap.Error(err))
		h.count("export", http.StatusInternalServerError)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
		return
	}

	filename := export.Filename(address, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	h.count("export", http.StatusOK)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// getTokenBalances serves the normalized wallet feed with display price
// source labels, without service classification.
func (h *portfolioHandlers) getTokenBalances(c *gin.Context) {
	address, ok := h.requireAddress(c, "token-balances")
	if !ok {
		return
	}

	positions, err := h.portfolio.GetWalletTokens(c.Request.Context(), address)
	if err != nil {
		h.logger.Error("Failed to fetch wallet tokens",
			zap.String("address", address),
			zap.Error(err))
		h.count("token-balances", http.StatusBadGateway)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch token balances"})
		return
	}

	type balanceView struct {
		Token          entity.TokenDescriptor `json:"token"`
		Value          string                 `json:"value"`
		ValueFormatted string                 `json:"value_formatted"`
		PriceSource    string                 `json:"price_source"`
	}
	views := make([]balanceView, 0, len(positions))
	for _, pos := range positions {
		views = append(views, balanceView{
			Token:          pos.Token,
			Value:          pos.RawBalance,
			ValueFormatted: formatBalance(pos),
			PriceSource:    engine.PriceSourceLabel(pos.Token),
		})
	}

	h.count("token-balances", http.StatusOK)
	c.JSON(http.StatusOK, gin.H{
		"address":        address,
		"token_balances": views,
		"total_tokens":   len(views),
	})
}

func (h *portfolioHandlers) requireAddress(c *gin.Context, endpoint string) (string, bool) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		h.count(endpoint, http.StatusBadRequest)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return "", false
	}
	return address, true
}

func (h *portfolioHandlers) count(endpoint string, status int) {
	metrics.HTTPRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// formatBalance renders the raw base-unit balance as a decimal string.
// Pre-formatted native balances pass through untouched.
func formatBalance(pos entity.TokenPosition) string {
	if pos.AlreadyScaled() {
		return pos.RawBalance
	}
	raw, ok := new(big.Int).SetString(strings.TrimSpace(pos.RawBalance), 10)
	if !ok {
		return pos.RawBalance
	}
	decimals := pos.Token.Decimals.Or(entity.DefaultDecimals)
	formatted, err := utils.FormatBigInt(raw, uint8(decimals))
	if err != nil {
		return pos.RawBalance
	}
	return formatted
}
