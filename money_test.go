package coinledger

import "testing"

func TestMoney_String(t *testing.T) {
	tests := []struct {
		value    float64
		currency string
		want     string
	}{
		{1234.5, "usd", "$1,234.50"},
		{47891, "USD", "$47,891.00"},
		{0, "eur", "€0,00"},
	}
	for _, tc := range tests {
		if got := M(tc.value, tc.currency).String(); got != tc.want {
			t.Errorf("M(%v, %q).String() = %q, want %q", tc.value, tc.currency, got, tc.want)
		}
	}
}

func TestMoney_AsFloat(t *testing.T) {
	if got := M(47891.5, "usd").AsFloat(); got != 47891.5 {
		t.Errorf("AsFloat() = %v, want 47891.5", got)
	}
}
