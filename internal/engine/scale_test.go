package engine

import (
	"math"
	"testing"

	"yield_tracker/internal/domain/entity"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScale(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		decimals      int
		alreadyScaled bool
		want          float64
	}{
		{"one token at 18 decimals", "1000000000000000000", 18, false, 1.0},
		{"fractional at 18 decimals", "2500000000000000000", 18, false, 2.5},
		{"six decimals", "1000000", 6, false, 1.0},
		{"already scaled native", "500", 0, true, 500.0},
		{"already scaled decimal string", "2.5", 0, true, 2.5},
		{"zero decimals without flag", "42", 0, false, 42.0},
		{"empty string", "", 18, false, 0},
		{"garbage input", "not-a-number", 18, false, 0},
		{"garbage already scaled", "abc", 0, true, 0},
		{"whitespace padded", "  1000000000000000000 ", 18, false, 1.0},
		{"negative decimals fall back to default", "1000000000000000000", -1, false, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(tt.raw, tt.decimals, tt.alreadyScaled)
			if !almostEqual(got, tt.want) {
				t.Errorf("Scale(%q, %d, %v) = %v, want %v", tt.raw, tt.decimals, tt.alreadyScaled, got, tt.want)
			}
		})
	}
}

func TestScalePositionNativeZeroDecimals(t *testing.T) {
	pos := entity.TokenPosition{
		Token: entity.TokenDescriptor{
			Symbol:   "rBTC",
			Type:     entity.TokenTypeNative,
			Decimals: entity.IntOf(0),
		},
		RawBalance: "1.75",
	}
	if got := scalePosition(pos); !almostEqual(got, 1.75) {
		t.Errorf("scalePosition(native, 0 decimals) = %v, want 1.75", got)
	}
}

func TestScalePositionDefaultsToEighteen(t *testing.T) {
	pos := entity.TokenPosition{
		Token: entity.TokenDescriptor{
			Symbol: "XUSD",
			Type:   entity.TokenTypeFungible,
		},
		RawBalance: "1000000000000000000",
	}
	if got := scalePosition(pos); !almostEqual(got, 1.0) {
		t.Errorf("scalePosition(missing decimals) = %v, want 1.0", got)
	}
}
