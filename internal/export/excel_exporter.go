// Package export renders portfolio snapshots into downloadable XLSX
// workbooks with Wallet, Portfolio and Summary sheets.
package export

import (
	"fmt"
	"time"

	"yield_tracker/internal/domain/entity"
	"yield_tracker/internal/engine"
	"yield_tracker/internal/pkg/utils"

	"github.com/xuri/excelize/v2"
)

const (
	sheetWallet    = "Wallet"
	sheetPortfolio = "Portfolio"
	sheetSummary   = "Summary"

	maxColumnWidth = 50
)

// BuildWorkbook renders one snapshot into an XLSX workbook. The caller owns
// the returned file and should Close it.
func BuildWorkbook(snapshot *entity.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CCCCCC"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeWalletSheet(f, snapshot, headerStyle); err != nil {
		return nil, err
	}
	if err := writePortfolioSheet(f, snapshot, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, snapshot); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(sheetWallet); err == nil {
		f.SetActiveSheet(index)
	}

	return f, nil
}

// Filename returns the download name for one snapshot export.
func Filename(address string, now time.Time) string {
	short := address
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("portfolio_%s_%s.xlsx", short, now.Format("20060102_150405"))
}

func writeWalletSheet(f *excelize.File, snapshot *entity.Snapshot, headerStyle int) error {
	if _, err := f.NewSheet(sheetWallet); err != nil {
		return fmt.Errorf("failed to create wallet sheet: %w", err)
	}

	headers := []string{"Token", "Name", "Holdings", "Price", "USD Value"}
	if err := writeHeaderRow(f, sheetWallet, headers, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, pos := range snapshot.WalletOnly {
		balance := engine.Scale(pos.RawBalance, pos.Token.Decimals.Or(entity.DefaultDecimals), pos.AlreadyScaled())
		price := pos.Token.ExchangeRate.Or(0)
		usdValue := balance * price

		cells := []any{
			pos.Token.Symbol,
			pos.Token.Name,
			balance,
			priceCell(price),
			priceCell(usdValue),
		}
		if err := writeRow(f, sheetWallet, row, cells); err != nil {
			return err
		}
		row++
	}

	return autoFitColumns(f, sheetWallet, len(headers))
}

func writePortfolioSheet(f *excelize.File, snapshot *entity.Snapshot, headerStyle int) error {
	if _, err := f.NewSheet(sheetPortfolio); err != nil {
		return fmt.Errorf("failed to create portfolio sheet: %w", err)
	}

	headers := []string{"Type", "Protocol", "Name", "Holdings", "Price", "APR", "USD Value"}
	if err := writeHeaderRow(f, sheetPortfolio, headers, headerStyle); err != nil {
		return err
	}

	row := 2
	for _, pos := range snapshot.Productive {
		balance := engine.Scale(pos.RawBalance, pos.Decimals.Or(entity.DefaultDecimals), false)
		cells := []any{
			"Yield Token",
			pos.Protocol,
			pos.Name,
			balance,
			priceCell(pos.PriceUSD),
			fmt.Sprintf("%.2f%%", pos.APRPercent),
			priceCell(balance * pos.PriceUSD),
		}
		if err := writeRow(f, sheetPortfolio, row, cells); err != nil {
			return err
		}
		row++
	}

	for _, nft := range snapshot.NFTs {
		cells := []any{
			"NFT",
			nft.Protocol,
			nft.Name,
			"1",
			"N/A",
			"N/A",
			priceCell(nft.TotalValueUSD),
		}
		if err := writeRow(f, sheetPortfolio, row, cells); err != nil {
			return err
		}
		row++
	}

	for _, reward := range snapshot.Rewards {
		cells := []any{
			"Reward",
			"Merkl",
			fmt.Sprintf("Merkl Rewards (%s)", reward.Symbol),
			reward.AmountFormatted,
			priceCell(reward.PriceUSD),
			"N/A",
			priceCell(reward.USDValue),
		}
		if err := writeRow(f, sheetPortfolio, row, cells); err != nil {
			return err
		}
		row++
	}

	for _, item := range snapshot.MarketItems {
		cells := []any{
			"Market",
			item.Protocol,
			item.Symbol,
			item.BalanceFormatted,
			priceCell(item.PriceUSD),
			"N/A",
			priceCell(item.USDValue),
		}
		if err := writeRow(f, sheetPortfolio, row, cells); err != nil {
			return err
		}
		row++
	}

	return autoFitColumns(f, sheetPortfolio, len(headers))
}

func writeSummarySheet(f *excelize.File, snapshot *entity.Snapshot) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create bold style: %w", err)
	}

	if err := f.SetCellValue(sheetSummary, "A1", fmt.Sprintf("Portfolio Summary - %s", snapshot.Address)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "A1", titleStyle); err != nil {
		return err
	}

	totals := snapshot.Totals
	entries := []struct {
		label string
		value any
	}{
		{"Total Tokens", totals.TotalTokenCount},
		{"Productive Value", fmt.Sprintf("$%s", utils.FormatUSDCompact(totals.ProductiveValueUSD))},
		{"Idle Value", fmt.Sprintf("$%s", utils.FormatUSDCompact(totals.IdleValueUSD))},
		{"Total Portfolio Value", fmt.Sprintf("$%s", utils.FormatUSDCompact(totals.TotalValueUSD))},
		{"NFT Count", len(snapshot.NFTs)},
		{"Reward Count", len(snapshot.Rewards)},
		{"Export Date", snapshot.GeneratedAt.Format("2006-01-02 15:04:05")},
	}

	row := 3
	for _, e := range entries {
		labelCell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(sheetSummary, labelCell, e.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetSummary, labelCell, labelCell, boldStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), e.value); err != nil {
			return err
		}
		row++
	}

	return autoFitColumns(f, sheetSummary, 2)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for i, value := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// autoFitColumns widens each column to its longest cell value, capped so one
// long token name cannot blow up the layout.
func autoFitColumns(f *excelize.File, sheet string, columns int) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}

	for col := 0; col < columns; col++ {
		maxLen := 0
		for _, row := range rows {
			if col < len(row) && len(row[col]) > maxLen {
				maxLen = len(row[col])
			}
		}
		width := float64(maxLen + 2)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func priceCell(value float64) any {
	if value > 0 {
		return fmt.Sprintf("$%.2f", value)
	}
	return "N/A"
}
