package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		name    string
		off, n  int
		wantEnd int
		wantErr string
	}{
		{"whole space", 0, 10, 10, ""},
		{"empty at end", 10, 0, 10, ""},
		{"tail", 7, 3, 10, ""},
		{"past end", 8, 3, 0, "bounds"},
		{"negative offset", -1, 1, 0, "negative offset"},
		{"negative count", 1, -1, 0, "negative count"},
		{"overflow", 5, math.MaxInt, 0, "overflow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := CheckRange(10, tt.off, tt.n)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestHas(t *testing.T) {
	if Has(5, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(5, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
}
