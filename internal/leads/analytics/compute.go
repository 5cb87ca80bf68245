package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"umroh_travel_backend/internal/leads/domain"
	"umroh_travel_backend/internal/shared/calendar"
)

// ValidPeriods are the selectable dashboard windows in months.
var ValidPeriods = []int{1, 3, 6, 12}

// UnknownSource is the key for leads without a source.
const UnknownSource = "unknown"

var sourceLabels = map[string]string{
	"website":     "Website",
	"whatsapp":    "WhatsApp",
	"instagram":   "Instagram",
	"facebook":    "Facebook",
	"referral":    "Referral",
	"walk_in":     "Walk-in",
	"phone":       "Telepon",
	UnknownSource: "Tidak Diketahui",
}

var monthLabels = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// IsValidPeriod reports whether months is a selectable window.
func IsValidPeriod(months int) bool {
	for _, p := range ValidPeriods {
		if p == months {
			return true
		}
	}
	return false
}

// Window returns the selected period [now-months, now] and the previous
// period [now-2*months, now-months) of identical length.
func Window(now time.Time, months int) (from, to, prevFrom, prevTo time.Time) {
	from = calendar.AddMonths(now, -months)
	prevFrom = calendar.AddMonths(now, -2*months)
	return from, now, prevFrom, from
}

// Input is everything Compute needs. Current and Previous must already be
// restricted to their windows; FilterWindow does that for in-memory rows.
type Input struct {
	Current  []LeadRow
	Previous []LeadRow
	Now      time.Time
	Months   int
	Location *time.Location
}

// FilterWindow keeps rows created in [from, to] (inclusive) or [from, to)
// when halfOpen is set.
func FilterWindow(rows []LeadRow, from, to time.Time, halfOpen bool) []LeadRow {
	out := make([]LeadRow, 0, len(rows))
	for _, r := range rows {
		if r.CreatedAt.Before(from) {
			continue
		}
		if r.CreatedAt.After(to) || (halfOpen && r.CreatedAt.Equal(to)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Compute derives the dashboard. It performs no I/O.
func Compute(in Input) Report {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	now := in.Now.In(loc)
	from, to, _, _ := Window(now, in.Months)

	summary := summarize(in.Current)
	conversion := rate(summary.Won, summary.Total)
	prevSummary := summarize(in.Previous)
	prevConversion := rate(prevSummary.Won, prevSummary.Total)

	return Report{
		PeriodMonths:       in.Months,
		From:               from,
		To:                 to,
		Summary:            summary,
		ConversionRate:     round1(conversion),
		LossRate:           round1(rate(summary.Lost, summary.Total)),
		MonthlyTrend:       monthlyTrend(in.Current, from, now, loc),
		Funnel:             funnel(in.Current),
		StatusDistribution: statusDistribution(in.Current),
		SourceDistribution: sourceDistribution(in.Current),
		SourceConversion:   sourceConversion(in.Current),
		Comparison: PeriodComparison{
			Previous:             prevSummary,
			PreviousConversion:   round1(prevConversion),
			ConversionRateChange: round1(change(conversion, prevConversion)),
			LeadCountChange:      round1(change(float64(summary.Total), float64(prevSummary.Total))),
		},
	}
}

func summarize(rows []LeadRow) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch {
		case r.Status == domain.StatusNew:
			s.New++
		case r.Status.InProgress():
			s.InProgress++
		case r.Status == domain.StatusWon:
			s.Won++
		case r.Status == domain.StatusLost:
			s.Lost++
		}
	}
	return s
}

func monthlyTrend(rows []LeadRow, from, now time.Time, loc *time.Location) []MonthBucket {
	months := calendar.EachMonth(from.In(loc), now)
	buckets := make([]MonthBucket, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		key := m.Format("2006-01")
		index[key] = i
		buckets[i] = MonthBucket{
			Month: key,
			Label: fmt.Sprintf("%s %d", monthLabels[m.Month()-1], m.Year()),
		}
	}

	for _, r := range rows {
		i, ok := index[r.CreatedAt.In(loc).Format("2006-01")]
		if !ok {
			continue
		}
		buckets[i].Total++
		switch r.Status {
		case domain.StatusWon:
			buckets[i].Won++
		case domain.StatusLost:
			buckets[i].Lost++
		}
	}

	for i := range buckets {
		buckets[i].ConversionRate = roundInt(rate(buckets[i].Won, buckets[i].Total))
	}
	return buckets
}

// funnel counts, per stage, the leads whose status index is at or beyond it.
// Lost has index -1 and therefore appears in no stage.
func funnel(rows []LeadRow) []FunnelStage {
	stages := make([]FunnelStage, len(domain.FunnelStages))
	for i, status := range domain.FunnelStages {
		stages[i] = FunnelStage{Status: status, Label: status.Label()}
		for _, r := range rows {
			if domain.Index(r.Status) >= i {
				stages[i].Count++
			}
		}
	}

	for i := 1; i < len(stages); i++ {
		prev := stages[i-1].Count
		if prev == 0 {
			continue
		}
		drop := float64(prev-stages[i].Count) / float64(prev) * 100
		stages[i].DropOff = round1(drop)
		stages[i].ShowDropOff = math.Round(drop) != 0
	}
	return stages
}

func statusDistribution(rows []LeadRow) []StatusSlice {
	counts := make(map[domain.Status]int, len(domain.AllStatuses))
	for _, r := range rows {
		counts[r.Status]++
	}
	out := make([]StatusSlice, 0, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		if n := counts[status]; n > 0 {
			out = append(out, StatusSlice{Status: status, Label: status.Label(), Count: n})
		}
	}
	return out
}

type sourceTally struct {
	key   string
	total int
	won   int
}

// tallySources groups rows by normalized source in first-seen order.
func tallySources(rows []LeadRow) []*sourceTally {
	var ordered []*sourceTally
	byKey := make(map[string]*sourceTally)
	for _, r := range rows {
		key := NormalizeSource(r.Source)
		t, ok := byKey[key]
		if !ok {
			t = &sourceTally{key: key}
			byKey[key] = t
			ordered = append(ordered, t)
		}
		t.total++
		if r.Status == domain.StatusWon {
			t.won++
		}
	}
	return ordered
}

func sourceDistribution(rows []LeadRow) []SourceSlice {
	tallies := tallySources(rows)
	out := make([]SourceSlice, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, SourceSlice{Source: t.key, Label: SourceLabel(t.key), Count: t.total})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func sourceConversion(rows []LeadRow) []SourcePerformance {
	tallies := tallySources(rows)
	out := make([]SourcePerformance, 0, len(tallies))
	for _, t := range tallies {
		conv := roundInt(rate(t.won, t.total))
		out = append(out, SourcePerformance{
			Source:         t.key,
			Label:          SourceLabel(t.key),
			Total:          t.total,
			Won:            t.won,
			ConversionRate: conv,
			Rating:         RateSource(conv),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ConversionRate > out[j].ConversionRate })
	return out
}

// NormalizeSource lower-cases a source and maps blanks and the unknown
// display label to UnknownSource. "walk-in" and "walk in" collapse to "walk_in".
func NormalizeSource(raw string) string {
	s := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "", "tidak_diketahui":
		return UnknownSource
	}
	return s
}

// SourceLabel is the display label for a normalized source.
func SourceLabel(key string) string {
	if l, ok := sourceLabels[key]; ok {
		return l
	}
	return key
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func change(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
