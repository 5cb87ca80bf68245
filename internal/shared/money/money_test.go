package money

import "testing"

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{950, "Rp 950"},
		{1000, "Rp 1.000"},
		{35000000, "Rp 35.000.000"},
		{123456789, "Rp 123.456.789"},
		{-2500000, "-Rp 2.500.000"},
	}
	for _, tt := range tests {
		if got := FormatRupiah(tt.amount); got != tt.want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
