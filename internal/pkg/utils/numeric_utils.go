package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatBigInt converts a raw integer amount to a human-readable decimal
// string using the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) (string, error) {
	if amount == nil {
		return "0.0", nil
	}

	if decimals == 0 {
		return amount.String(), nil
	}

	amountFloat := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(amountFloat, divisor)

	formattedStr := value.Text('f', int(decimals))
	if strings.Contains(formattedStr, ".") {
		formattedStr = strings.TrimRight(formattedStr, "0")
		formattedStr = strings.TrimRight(formattedStr, ".")
	}
	if strings.HasPrefix(formattedStr, ".") {
		formattedStr = "0" + formattedStr
	}
	if formattedStr == "" {
		if amount.Sign() == 0 {
			return "0", nil
		}
		return value.Text('f', 2), fmt.Errorf("formatting resulted in empty string for non-zero value")
	}

	return formattedStr, nil
}

// FormatUSDCompact renders a USD value in the short display form used across
// the API and the Excel export: "1.22K", "444.88K", "1.23M" or "12.30".
func FormatUSDCompact(value float64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("%.2fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%.2fK", value/1_000)
	default:
		return fmt.Sprintf("%.2f", value)
	}
}

// FormatTokenAmount renders a token amount with its symbol, compacting large
// quantities and widening precision for sub-unit dust.
// Example: "1.0500 WRBTC", "1.22K MERKL", "0.00000042 mBTC".
func FormatTokenAmount(amount float64, symbol string) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("%.2fM %s", amount/1_000_000, symbol)
	case amount >= 1_000:
		return fmt.Sprintf("%.2fK %s", amount/1_000, symbol)
	case amount >= 1:
		return fmt.Sprintf("%.4f %s", amount, symbol)
	default:
		return fmt.Sprintf("%.8f %s", amount, symbol)
	}
}
