package repository

import (
	"errors"
	"testing"
)

func TestNewConversionBooking(t *testing.T) {
	phone := "+6281234567890"
	email := "siti@example.com"
	src := ConversionSource{FullName: "Siti Aminah", Phone: &phone, Email: &email}

	tests := []struct {
		name    string
		dep     ConversionDeparture
		wantErr error
	}{
		{name: "open with seats", dep: ConversionDeparture{Status: "open", Quota: 45, BookedPax: 40, PriceQuad: 35_000_000}},
		{name: "last seat", dep: ConversionDeparture{Status: "open", Quota: 45, BookedPax: 44, PriceQuad: 35_000_000}},
		{name: "quota reached", dep: ConversionDeparture{Status: "open", Quota: 45, BookedPax: 45, PriceQuad: 35_000_000}, wantErr: ErrDepartureFull},
		{name: "overbooked", dep: ConversionDeparture{Status: "open", Quota: 10, BookedPax: 12, PriceQuad: 35_000_000}, wantErr: ErrDepartureFull},
		{name: "closed", dep: ConversionDeparture{Status: "closed", Quota: 45, PriceQuad: 35_000_000}, wantErr: ErrDepartureClosed},
		{name: "departed", dep: ConversionDeparture{Status: "departed", Quota: 45, PriceQuad: 35_000_000}, wantErr: ErrDepartureClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewConversionBooking(src, tt.dep)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.CustomerName != "Siti Aminah" || got.CustomerPhone != &phone || got.CustomerEmail != &email {
				t.Errorf("customer not copied from the lead: %+v", got)
			}
			if got.RoomType != "quad" || got.Status != "pending" {
				t.Errorf("room %q status %q", got.RoomType, got.Status)
			}
			if got.AdultCount != 1 || got.ChildCount != 0 || got.InfantCount != 0 || got.TotalPax != 1 {
				t.Errorf("pax adult=%d child=%d infant=%d total=%d", got.AdultCount, got.ChildCount, got.InfantCount, got.TotalPax)
			}
			if got.BasePrice != tt.dep.PriceQuad || got.TotalPrice != tt.dep.PriceQuad {
				t.Errorf("prices base=%d total=%d, want %d", got.BasePrice, got.TotalPrice, tt.dep.PriceQuad)
			}
		})
	}
}
