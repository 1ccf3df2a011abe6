package engine

import (
	"strings"

	"yield_tracker/internal/domain/entity"
)

// Price source labels shown next to a token's USD price. Display provenance
// only; none of these affect valuation arithmetic.
const (
	LabelNativeExplorer = "Rootstock Explorer"
	LabelWrappedNative  = "Blockscout (WRBTC)"
	LabelMidas          = "Merkl price feed (Midas)"
	LabelLayerBank      = "Merkl opportunities (LayerBank)"
	LabelAvalon         = "Merkl opportunities (Avalon)"
	LabelTropykus       = "Tropykus markets"
	LabelDefault        = "Blockscout exchange rate"
)

// labelRule pairs a predicate with the label it resolves to. Rules are
// evaluated in order; the first hit wins.
type labelRule struct {
	match func(symbol, name string) bool
	label string
}

func containsAny(s string, fragments ...string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

var labelRules = []labelRule{
	{
		match: func(symbol, name string) bool {
			return containsAny(symbol, "wrbtc") || strings.Contains(name, "wrapped")
		},
		label: LabelWrappedNative,
	},
	{
		match: func(symbol, name string) bool {
			return symbol == "rbtc" || strings.Contains(name, "rootstock smart bitcoin")
		},
		label: LabelNativeExplorer,
	},
	{
		match: func(symbol, name string) bool {
			return containsAny(symbol, "midas") || strings.Contains(name, "midas")
		},
		label: LabelMidas,
	},
	{
		match: func(symbol, name string) bool {
			return containsAny(name, "layerbank") || strings.HasPrefix(symbol, "l")
		},
		label: LabelLayerBank,
	},
	{
		match: func(symbol, name string) bool {
			return containsAny(name, "avalon") || strings.HasPrefix(symbol, "a")
		},
		label: LabelAvalon,
	},
	{
		match: func(symbol, name string) bool {
			return containsAny(name, "tropykus") || strings.HasPrefix(symbol, "k")
		},
		label: LabelTropykus,
	},
}

// PriceSourceLabel resolves the human-readable provenance label for a
// token's price. It is total: absent symbol and name fall through to the
// default label, and a native token type short-circuits to the explorer.
func PriceSourceLabel(d entity.TokenDescriptor) string {
	if d.Type == entity.TokenTypeNative {
		return LabelNativeExplorer
	}
	symbol := strings.ToLower(strings.TrimSpace(d.Symbol))
	name := strings.ToLower(strings.TrimSpace(d.Name))
	for _, rule := range labelRules {
		if rule.match(symbol, name) {
			return rule.label
		}
	}
	return LabelDefault
}
