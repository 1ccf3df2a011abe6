// Package engine implements the position aggregation and valuation core:
// decimal normalization, ownership classification, USD valuation and the
// price-source provenance lookup. Every function here is a pure
// transformation of its inputs; all I/O lives in the service layer.
package engine

import (
	"math"
	"strconv"
	"strings"

	"yield_tracker/internal/domain/entity"
)

// Scale converts a raw integer balance string and a decimal exponent into a
// display magnitude. When alreadyScaled is set the raw value is returned
// as-is (explorer native balances come pre-formatted). Malformed input
// normalizes to 0; Scale never panics.
func Scale(raw string, decimals int, alreadyScaled bool) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if alreadyScaled {
		return v
	}
	if decimals < 0 {
		decimals = entity.DefaultDecimals
	}
	return v / math.Pow(10, float64(decimals))
}

// scalePosition applies Scale to a wallet position using its descriptor's
// decimals (defaulting to 18 when absent).
func scalePosition(p entity.TokenPosition) float64 {
	return Scale(p.RawBalance, p.Token.Decimals.Or(entity.DefaultDecimals), p.AlreadyScaled())
}

// safeFloat degrades NaN and infinities to 0 so a single bad upstream value
// cannot poison the running sums.
func safeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
