package analytics

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"umroh_travel_backend/internal/leads/domain"
)

var testNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func row(status domain.Status, source string, created time.Time) LeadRow {
	return LeadRow{Status: status, Source: source, CreatedAt: created}
}

// scenarioRows is ten leads over September and October: website 6 (2 won,
// 1 lost) and whatsapp 4 (1 won, 1 lost).
func scenarioRows() []LeadRow {
	sep := time.Date(2026, time.September, 10, 9, 0, 0, 0, time.UTC)
	oct := time.Date(2026, time.October, 3, 9, 0, 0, 0, time.UTC)
	return []LeadRow{
		row(domain.StatusWon, "website", sep),
		row(domain.StatusWon, "website", oct),
		row(domain.StatusLost, "website", sep),
		row(domain.StatusContacted, "website", oct),
		row(domain.StatusNew, "website", oct),
		row(domain.StatusNegotiation, "website", oct),
		row(domain.StatusWon, "whatsapp", sep),
		row(domain.StatusLost, "whatsapp", oct),
		row(domain.StatusFollowUp, "whatsapp", sep),
		row(domain.StatusClosing, "whatsapp", oct),
	}
}

func previousRows() []LeadRow {
	jun := time.Date(2026, time.June, 2, 9, 0, 0, 0, time.UTC)
	return []LeadRow{
		row(domain.StatusWon, "referral", jun),
		row(domain.StatusLost, "website", jun),
		row(domain.StatusNew, "website", jun),
		row(domain.StatusContacted, "", jun),
		row(domain.StatusClosing, "instagram", jun),
	}
}

func TestEndToEndScenario(t *testing.T) {
	all := append(scenarioRows(), previousRows()...)
	from, to, prevFrom, prevTo := Window(testNow, 3)

	r := Compute(Input{
		Current:  FilterWindow(all, from, to, false),
		Previous: FilterWindow(all, prevFrom, prevTo, true),
		Now:      testNow,
		Months:   3,
	})

	want := Summary{Total: 10, New: 1, InProgress: 4, Won: 3, Lost: 2}
	if r.Summary != want {
		t.Fatalf("summary: expected %+v, got %+v", want, r.Summary)
	}
	if r.ConversionRate != 30.0 || r.LossRate != 20.0 {
		t.Fatalf("rates: expected 30.0/20.0, got %.1f/%.1f", r.ConversionRate, r.LossRate)
	}

	if len(r.SourceConversion) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(r.SourceConversion))
	}
	website, whatsapp := r.SourceConversion[0], r.SourceConversion[1]
	if website.Source != "website" || website.ConversionRate != 33 || website.Rating != RatingExcellent {
		t.Errorf("website: unexpected %+v", website)
	}
	if whatsapp.Source != "whatsapp" || whatsapp.ConversionRate != 25 || whatsapp.Rating != RatingGood {
		t.Errorf("whatsapp: unexpected %+v", whatsapp)
	}

	if r.SourceDistribution[0].Source != "website" || r.SourceDistribution[0].Count != 6 {
		t.Errorf("expected website first with 6, got %+v", r.SourceDistribution[0])
	}

	if r.Comparison.Previous.Total != 5 || r.Comparison.PreviousConversion != 20.0 {
		t.Errorf("previous: unexpected %+v", r.Comparison)
	}
	if r.Comparison.ConversionRateChange != 50.0 || r.Comparison.LeadCountChange != 100.0 {
		t.Errorf("comparison: expected +50/+100, got %+v", r.Comparison)
	}
}

func TestFunnelIsCumulativeAndExcludesLost(t *testing.T) {
	r := Compute(Input{Current: scenarioRows(), Now: testNow, Months: 3})

	wantCounts := []int{8, 7, 6, 5, 4, 3}
	if len(r.Funnel) != len(wantCounts) {
		t.Fatalf("expected %d stages, got %d", len(wantCounts), len(r.Funnel))
	}
	for i, stage := range r.Funnel {
		if stage.Count != wantCounts[i] {
			t.Errorf("stage %s: expected %d, got %d", stage.Status, wantCounts[i], stage.Count)
		}
	}
	if r.Funnel[0].ShowDropOff || r.Funnel[0].DropOff != 0 {
		t.Errorf("first stage must not carry a drop-off, got %+v", r.Funnel[0])
	}
	if r.Funnel[1].DropOff != 12.5 || !r.Funnel[1].ShowDropOff {
		t.Errorf("contacted: expected 12.5%% drop-off badge, got %+v", r.Funnel[1])
	}
}

func TestStatusDistributionExactCounts(t *testing.T) {
	r := Compute(Input{Current: scenarioRows(), Now: testNow, Months: 3})

	got := map[domain.Status]int{}
	for _, s := range r.StatusDistribution {
		if s.Count == 0 {
			t.Errorf("zero-count slice %s must be omitted", s.Status)
		}
		got[s.Status] = s.Count
	}
	if got[domain.StatusWon] != 3 || got[domain.StatusLost] != 2 || got[domain.StatusNew] != 1 {
		t.Fatalf("unexpected distribution %v", got)
	}
	if len(r.StatusDistribution) != 7 {
		t.Fatalf("expected all 7 statuses present, got %d", len(r.StatusDistribution))
	}
}

func TestMonthlyTrend(t *testing.T) {
	r := Compute(Input{Current: scenarioRows(), Now: testNow, Months: 3})

	if len(r.MonthlyTrend) != 4 {
		t.Fatalf("expected Jul..Oct (4 buckets), got %d", len(r.MonthlyTrend))
	}
	sep, oct := r.MonthlyTrend[2], r.MonthlyTrend[3]
	if sep.Month != "2026-09" || sep.Total != 4 || sep.Won != 2 || sep.Lost != 1 || sep.ConversionRate != 50 {
		t.Errorf("september: unexpected %+v", sep)
	}
	if oct.Label != "Okt 2026" || oct.Total != 6 || oct.Won != 1 || oct.ConversionRate != 17 {
		t.Errorf("october: unexpected %+v", oct)
	}
	if r.MonthlyTrend[0].Total != 0 || r.MonthlyTrend[0].ConversionRate != 0 {
		t.Errorf("empty month must be zero, got %+v", r.MonthlyTrend[0])
	}
}

func TestEmptyPeriodHasZeroRates(t *testing.T) {
	r := Compute(Input{Now: testNow, Months: 1})

	if r.ConversionRate != 0 || r.LossRate != 0 {
		t.Fatalf("expected zero rates, got %v/%v", r.ConversionRate, r.LossRate)
	}
	for _, stage := range r.Funnel {
		if stage.Count != 0 || stage.ShowDropOff {
			t.Errorf("stage %s: expected empty, got %+v", stage.Status, stage)
		}
	}
	if len(r.SourceDistribution) != 0 || len(r.StatusDistribution) != 0 {
		t.Fatal("expected empty distributions")
	}
	if r.Comparison.ConversionRateChange != 0 || r.Comparison.LeadCountChange != 0 {
		t.Fatalf("expected zero comparison, got %+v", r.Comparison)
	}
}

func TestRandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sources := []string{"website", "whatsapp", "instagram", "", "  ", "Walk-in", "referral"}

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(60)
		rows := make([]LeadRow, n)
		for i := range rows {
			rows[i] = row(
				domain.AllStatuses[rng.Intn(len(domain.AllStatuses))],
				sources[rng.Intn(len(sources))],
				testNow.Add(-time.Duration(rng.Intn(80*24))*time.Hour),
			)
		}
		r := Compute(Input{Current: rows, Now: testNow, Months: 3})

		if r.ConversionRate < 0 || r.ConversionRate > 100 {
			t.Fatalf("conversion rate out of bounds: %v", r.ConversionRate)
		}
		if r.Summary.Total == 0 && r.ConversionRate != 0 {
			t.Fatalf("zero total must give zero rate")
		}

		for i := 1; i < len(r.Funnel); i++ {
			if r.Funnel[i].Count > r.Funnel[i-1].Count {
				t.Fatalf("funnel not monotonic at %d: %d > %d", i, r.Funnel[i].Count, r.Funnel[i-1].Count)
			}
			if r.Funnel[i].DropOff < 0 {
				t.Fatalf("negative drop-off at %d", i)
			}
			if r.Funnel[i].ShowDropOff && r.Funnel[i].DropOff <= 0 {
				t.Fatalf("badge shown without positive drop-off at %d", i)
			}
		}

		sum := 0
		for _, s := range r.SourceDistribution {
			if s.Count == 0 {
				t.Fatal("zero-count source entry")
			}
			sum += s.Count
		}
		if sum != r.Summary.Total {
			t.Fatalf("source counts sum to %d, total is %d", sum, r.Summary.Total)
		}

		for i := 1; i < len(r.SourceConversion); i++ {
			if r.SourceConversion[i].ConversionRate > r.SourceConversion[i-1].ConversionRate {
				t.Fatal("source conversion not sorted descending")
			}
		}
	}
}

func TestNormalizeSource(t *testing.T) {
	cases := map[string]string{
		"":                UnknownSource,
		"   ":             UnknownSource,
		"WhatsApp":        "whatsapp",
		"walk-in":         "walk_in",
		"Walk In":         "walk_in",
		"tiktok":          "tiktok",
		"unknown":         UnknownSource,
		"Tidak Diketahui": UnknownSource,
		"tidak_diketahui": UnknownSource,
	}
	for in, want := range cases {
		if got := NormalizeSource(in); got != want {
			t.Errorf("NormalizeSource(%q) = %q, want %q", in, got, want)
		}
	}
	if SourceLabel(UnknownSource) != "Tidak Diketahui" {
		t.Fatalf("unexpected unknown label %q", SourceLabel(UnknownSource))
	}
}

func TestRateSourceBoundaries(t *testing.T) {
	cases := map[int]Rating{
		100: RatingExcellent, 30: RatingExcellent, 29: RatingGood, 20: RatingGood,
		19: RatingAverage, 10: RatingAverage, 9: RatingPoor, 0: RatingPoor,
	}
	for in, want := range cases {
		if got := RateSource(in); got != want {
			t.Errorf("RateSource(%d) = %s, want %s", in, got, want)
		}
	}
}

func TestWriteSourceCSV(t *testing.T) {
	r := Compute(Input{Current: scenarioRows(), Now: testNow, Months: 3})
	var buf bytes.Buffer
	if err := WriteSourceCSV(&buf, r); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}
	if lines[1] != "website,Website,6,2,33,Excellent" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}
