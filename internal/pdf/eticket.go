package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSizePx = 256

// ETicketData holds the traveller's boarding summary.
type ETicketData struct {
	Letterhead Letterhead

	BookingCode   string
	TravellerName string
	PassportNo    string
	PackageName   string
	DepartureDate time.Time
	ReturnDate    time.Time
	DurationDays  int
	RoomType      string
	TotalPax      int
}

// GenerateETicketPDF renders the e-ticket with a QR code of the booking code.
func GenerateETicketPDF(data ETicketData) ([]byte, error) {
	qr, err := qrcode.Encode(data.BookingCode, qrcode.Medium, qrSizePx)
	if err != nil {
		return nil, fmt.Errorf("encode booking QR: %w", err)
	}

	rows := buildLetterhead(data.Letterhead, "E-TICKET", data.BookingCode)
	rows = append(rows, buildTicketSummary(data, qr)...)
	rows = append(rows, row.New(6))
	rows = append(rows, sectionTitle("PERJALANAN"))
	rows = append(rows, fieldRows([]field{
		{"Paket", data.PackageName},
		{"Berangkat", formatDate(data.DepartureDate)},
		{"Kembali", formatDate(data.ReturnDate)},
		{"Durasi", fmt.Sprintf("%d hari", data.DurationDays)},
		{"Kamar", roomTypeLabel(data.RoomType)},
		{"Jumlah jamaah", fmt.Sprintf("%d", data.TotalPax)},
	})...)
	rows = append(rows, row.New(8))
	rows = append(rows, row.New(15).Add(
		col.New(12).Add(text.New(
			"Tunjukkan e-ticket ini beserta paspor asli kepada petugas saat manasik dan di bandara keberangkatan.",
			props.Text{Size: 8, Color: colorSecondary},
		)),
	))

	return render(data.Letterhead, false, rows...)
}

func buildTicketSummary(data ETicketData, qr []byte) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(8).Add(
				text.New("NAMA JAMAAH", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent}),
				text.New(data.TravellerName, props.Text{Size: 14, Style: fontstyle.Bold, Color: colorPrimary, Top: 5}),
				text.New("NO. PASPOR", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent, Top: 16}),
				text.New(orDash(data.PassportNo), props.Text{Size: 11, Color: colorPrimary, Top: 21}),
				text.New("KODE BOOKING", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent, Top: 30}),
				text.New(data.BookingCode, props.Text{Size: 11, Style: fontstyle.Bold, Color: colorGold, Top: 35}),
			),
			col.New(4).Add(
				image.NewFromBytes(qr, extension.Png, props.Rect{Center: true, Percent: 95}),
			),
		),
		row.New(5).Add(
			col.New(8),
			col.New(4).Add(text.New("Pindai untuk verifikasi", props.Text{Size: 6.5, Color: colorSecondary, Align: align.Center})),
		),
	}
}
