package analytics

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteSourceCSV writes the source performance table.
func WriteSourceCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "label", "total", "won", "conversion_rate", "rating"}); err != nil {
		return err
	}
	for _, s := range r.SourceConversion {
		if err := cw.Write([]string{
			s.Source,
			s.Label,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Won),
			strconv.Itoa(s.ConversionRate),
			string(s.Rating),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrendCSV writes the monthly trend series.
func WriteTrendCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "total", "won", "lost", "conversion_rate"}); err != nil {
		return err
	}
	for _, m := range r.MonthlyTrend {
		if err := cw.Write([]string{
			m.Month,
			strconv.Itoa(m.Total),
			strconv.Itoa(m.Won),
			strconv.Itoa(m.Lost),
			strconv.Itoa(m.ConversionRate),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
