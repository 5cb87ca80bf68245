package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"umroh_travel_backend/internal/shared/money"
)

// InvoiceData holds everything printed on a booking invoice.
type InvoiceData struct {
	Letterhead Letterhead
	Number     string
	IssuedAt   time.Time

	BookingCode   string
	Status        string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	PackageName   string
	DepartureDate time.Time
	ReturnDate    time.Time
	RoomType      string
	AdultCount    int
	ChildCount    int
	InfantCount   int
	TotalPax      int

	BasePrice  int64 // per person
	TotalPrice int64
}

// GenerateInvoicePDF renders the invoice ("Faktur") for one booking.
func GenerateInvoicePDF(data InvoiceData) ([]byte, error) {
	rows := buildLetterhead(data.Letterhead, "FAKTUR", data.Number)

	rows = append(rows, buildInvoiceParties(data)...)
	rows = append(rows, row.New(6))
	rows = append(rows, buildInvoiceItems(data)...)
	rows = append(rows, row.New(4))
	rows = append(rows, buildInvoiceTotals(data)...)
	rows = append(rows, row.New(8))
	rows = append(rows, buildInvoiceTerms()...)

	return render(data.Letterhead, false, rows...)
}

func buildInvoiceParties(data InvoiceData) []core.Row {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent}
	statusColor := colorPrimary
	if data.Status == "cancelled" {
		statusColor = colorRed
	}

	return []core.Row{
		row.New(5).Add(
			col.New(7).Add(text.New("DITAGIHKAN KEPADA", label)),
			col.New(5).Add(text.New("DETAIL FAKTUR", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent, Align: align.Right})),
		),
		row.New(5).Add(
			col.New(7).Add(text.New(data.CustomerName, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary})),
			col.New(5).Add(text.New("Tanggal: "+formatDate(data.IssuedAt), props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
		),
		row.New(5).Add(
			col.New(7).Add(text.New(joinParts([]string{data.CustomerPhone, data.CustomerEmail}, "  |  "), props.Text{Size: 8, Color: colorSecondary})),
			col.New(5).Add(text.New("Kode Booking: "+data.BookingCode, props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
		),
		row.New(5).Add(
			col.New(7),
			col.New(5).Add(text.New("Status: "+statusLabel(data.Status), props.Text{Size: 8, Style: fontstyle.Bold, Color: statusColor, Align: align.Right})),
		),
	}
}

func buildInvoiceItems(data InvoiceData) []core.Row {
	headerStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}
	cell := props.Text{Size: 8, Color: colorPrimary, Top: 1}
	cellRight := props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1}

	description := fmt.Sprintf("%s, %s s/d %s", data.PackageName, formatDate(data.DepartureDate), formatDate(data.ReturnDate))
	pax := fmt.Sprintf("%d", data.TotalPax)

	rows := []core.Row{
		sectionTitle("RINCIAN"),
		row.New(7).Add(
			col.New(6).Add(text.New("Keterangan", headerStyle)),
			col.New(1).Add(text.New("Pax", headerStyle)),
			col.New(2).Add(text.New("Harga", headerStyleRight)),
			col.New(3).Add(text.New("Jumlah", headerStyleRight)),
		).WithStyle(&props.Cell{
			BackgroundColor: colorTableHead,
			BorderType:      border.Bottom,
			BorderColor:     colorBorder,
		}),
		row.New(7).Add(
			col.New(6).Add(text.New(description, cell)),
			col.New(1).Add(text.New(pax, cell)),
			col.New(2).Add(text.New(money.FormatRupiah(data.BasePrice), cellRight)),
			col.New(3).Add(text.New(money.FormatRupiah(data.TotalPrice), cellRight)),
		).WithStyle(&props.Cell{BackgroundColor: colorTableAlt}),
		row.New(7).Add(
			col.New(6).Add(text.New("Tipe kamar: "+roomTypeLabel(data.RoomType), props.Text{Size: 8, Color: colorSecondary, Top: 1})),
			col.New(6).Add(text.New(
				fmt.Sprintf("Dewasa %d, Anak %d, Bayi %d", data.AdultCount, data.ChildCount, data.InfantCount),
				props.Text{Size: 8, Color: colorSecondary, Top: 1},
			)),
		),
	}
	return rows
}

func buildInvoiceTotals(data InvoiceData) []core.Row {
	total := props.Text{Size: 12, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 2}

	return []core.Row{
		separator(),
		row.New(3),
		row.New(10).Add(
			col.New(9).Add(text.New("TOTAL", total)),
			col.New(3).Add(text.New(money.FormatRupiah(data.TotalPrice), total)),
		).WithStyle(&props.Cell{
			BackgroundColor: colorTableHead,
			BorderType:      border.Top + border.Bottom,
			BorderColor:     colorBorder,
		}),
	}
}

func buildInvoiceTerms() []core.Row {
	term := props.Text{Size: 7, Color: colorSecondary}
	return []core.Row{
		separator(),
		row.New(3),
		row.New(5).Add(col.New(12).Add(text.New("KETENTUAN", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent}))),
		row.New(4).Add(col.New(12).Add(text.New(
			"1.  Pelunasan paling lambat 30 hari sebelum tanggal keberangkatan.", term))),
		row.New(4).Add(col.New(12).Add(text.New(
			"2.  Pembayaran melalui transfer ke rekening resmi perusahaan; sertakan kode booking pada berita transfer.", term))),
		row.New(4).Add(col.New(12).Add(text.New(
			"3.  Harga dalam Rupiah dan dapat berubah mengikuti kurs serta ketentuan maskapai.", term))),
	}
}
