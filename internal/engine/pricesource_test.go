package engine

import (
	"testing"

	"yield_tracker/internal/domain/entity"
)

func TestPriceSourceLabel(t *testing.T) {
	tests := []struct {
		name       string
		descriptor entity.TokenDescriptor
		want       string
	}{
		{
			"native type short-circuits",
			entity.TokenDescriptor{Symbol: "rBTC", Type: entity.TokenTypeNative},
			LabelNativeExplorer,
		},
		{
			"wrapped by symbol",
			entity.TokenDescriptor{Symbol: "WRBTC", Name: "Wrapped BTC"},
			LabelWrappedNative,
		},
		{
			"wrapped by name",
			entity.TokenDescriptor{Symbol: "WBTC", Name: "Wrapped Bitcoin"},
			LabelWrappedNative,
		},
		{
			"rbtc symbol without native type",
			entity.TokenDescriptor{Symbol: "RBTC", Name: "Rootstock Smart Bitcoin"},
			LabelNativeExplorer,
		},
		{
			"midas by name",
			entity.TokenDescriptor{Symbol: "mBTC", Name: "Midas BTC Vault"},
			LabelMidas,
		},
		{
			"layerbank l-prefix",
			entity.TokenDescriptor{Symbol: "lUSDT", Name: "LayerBank USDT"},
			LabelLayerBank,
		},
		{
			"avalon a-prefix",
			entity.TokenDescriptor{Symbol: "aUSDT", Name: "Avalon interest bearing USDT"},
			LabelAvalon,
		},
		{
			"tropykus k-prefix",
			entity.TokenDescriptor{Symbol: "kDOC", Name: "Tropykus DOC"},
			LabelTropykus,
		},
		{
			"plain token falls through",
			entity.TokenDescriptor{Symbol: "XUSD", Name: "Sovryn Dollar"},
			LabelDefault,
		},
		{
			"empty descriptor",
			entity.TokenDescriptor{},
			LabelDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PriceSourceLabel(tt.descriptor); got != tt.want {
				t.Errorf("PriceSourceLabel(%+v) = %q, want %q", tt.descriptor, got, tt.want)
			}
		})
	}
}

func TestPriceSourceLabelOrderMatters(t *testing.T) {
	// A wrapped token whose symbol also starts with "a" must resolve to the
	// wrapped label, not Avalon, because the wrapped rule runs first.
	d := entity.TokenDescriptor{Symbol: "aWRBTC", Name: "Avalon Wrapped BTC"}
	if got := PriceSourceLabel(d); got != LabelWrappedNative {
		t.Errorf("PriceSourceLabel = %q, want %q (rule order)", got, LabelWrappedNative)
	}
}
