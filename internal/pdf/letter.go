package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// DefaultLetterPurpose is used when staff do not state why the letter is needed.
const DefaultLetterPurpose = "keperluan administrasi"

// LetterData holds the fields of a "Surat Keterangan", typically handed to
// an employer for leave or to an embassy.
type LetterData struct {
	Letterhead Letterhead
	Number     string
	IssuedAt   time.Time
	City       string

	TravellerName string
	NIK           string
	PassportNo    string
	BookingCode   string
	PackageName   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Purpose       string
}

// GenerateLetterPDF renders the statement letter confirming the traveller is
// registered for a departure.
func GenerateLetterPDF(data LetterData) ([]byte, error) {
	purpose := strings.TrimSpace(data.Purpose)
	if purpose == "" {
		purpose = DefaultLetterPurpose
	}

	rows := buildLetterhead(data.Letterhead, "SURAT KETERANGAN", "No. "+data.Number)

	rows = append(rows,
		paragraph("Yang bertanda tangan di bawah ini, pimpinan "+data.Letterhead.AgencyName+
			", dengan ini menerangkan bahwa:", 12),
		row.New(2),
	)
	rows = append(rows, fieldRows([]field{
		{"Nama", data.TravellerName},
		{"NIK", orDash(data.NIK)},
		{"No. Paspor", orDash(data.PassportNo)},
		{"Kode Booking", data.BookingCode},
	})...)
	rows = append(rows,
		row.New(4),
		paragraph(fmt.Sprintf(
			"adalah benar jamaah terdaftar pada program %s yang dijadwalkan berangkat pada tanggal %s dan kembali ke tanah air pada tanggal %s.",
			data.PackageName, formatDate(data.DepartureDate), formatDate(data.ReturnDate),
		), 16),
		paragraph("Surat keterangan ini dibuat untuk "+purpose+
			" dan dapat dipergunakan sebagaimana mestinya.", 12),
		row.New(10),
	)
	rows = append(rows, signatureBlock(data.Letterhead, placeAndDate(data.City, data.IssuedAt))...)
	rows = append(rows, row.New(10).Add(
		col.New(12).Add(text.New("Dokumen ini diterbitkan secara elektronik.", props.Text{
			Size: 7, Style: fontstyle.Italic, Color: colorSecondary, Align: align.Left, Top: 4,
		})),
	))

	return render(data.Letterhead, false, rows...)
}
