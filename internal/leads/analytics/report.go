// Package analytics derives the lead funnel dashboard from raw lead rows.
package analytics

import (
	"time"

	"umroh_travel_backend/internal/leads/domain"
)

// LeadRow is the projection of a lead the aggregator needs.
type LeadRow struct {
	Status    domain.Status
	Source    string
	CreatedAt time.Time
}

// Report is the full dashboard for one period.
type Report struct {
	PeriodMonths       int                 `json:"periodMonths"`
	From               time.Time           `json:"from"`
	To                 time.Time           `json:"to"`
	Summary            Summary             `json:"summary"`
	ConversionRate     float64             `json:"conversionRate"`
	LossRate           float64             `json:"lossRate"`
	MonthlyTrend       []MonthBucket       `json:"monthlyTrend"`
	Funnel             []FunnelStage       `json:"funnel"`
	StatusDistribution []StatusSlice       `json:"statusDistribution"`
	SourceDistribution []SourceSlice       `json:"sourceDistribution"`
	SourceConversion   []SourcePerformance `json:"sourceConversion"`
	Comparison         PeriodComparison    `json:"comparison"`
}

// Summary counts leads by lifecycle group.
type Summary struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"inProgress"`
	Won        int `json:"won"`
	Lost       int `json:"lost"`
}

// MonthBucket is one calendar month of the trend chart.
type MonthBucket struct {
	Month          string `json:"month"` // YYYY-MM
	Label          string `json:"label"`
	Total          int    `json:"total"`
	Won            int    `json:"won"`
	Lost           int    `json:"lost"`
	ConversionRate int    `json:"conversionRate"`
}

// FunnelStage is the cumulative count of leads at or beyond a stage.
type FunnelStage struct {
	Status      domain.Status `json:"status"`
	Label       string        `json:"label"`
	Count       int           `json:"count"`
	DropOff     float64       `json:"dropOff"`
	ShowDropOff bool          `json:"showDropOff"`
}

// StatusSlice is an exact-status count for the distribution chart.
type StatusSlice struct {
	Status domain.Status `json:"status"`
	Label  string        `json:"label"`
	Count  int           `json:"count"`
}

// SourceSlice is one acquisition channel in the distribution chart.
type SourceSlice struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// SourcePerformance is the conversion of one acquisition channel.
type SourcePerformance struct {
	Source         string `json:"source"`
	Label          string `json:"label"`
	Total          int    `json:"total"`
	Won            int    `json:"won"`
	ConversionRate int    `json:"conversionRate"`
	Rating         Rating `json:"rating"`
}

// PeriodComparison compares the period with the one before it.
type PeriodComparison struct {
	Previous             Summary `json:"previous"`
	PreviousConversion   float64 `json:"previousConversionRate"`
	ConversionRateChange float64 `json:"conversionRateChange"`
	LeadCountChange      float64 `json:"leadCountChange"`
}

// Rating is the qualitative band of a source's conversion.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingAverage   Rating = "Average"
	RatingPoor      Rating = "Poor"
)

// RateSource bands a whole-percent conversion rate.
func RateSource(conversion int) Rating {
	switch {
	case conversion >= 30:
		return RatingExcellent
	case conversion >= 20:
		return RatingGood
	case conversion >= 10:
		return RatingAverage
	default:
		return RatingPoor
	}
}
