package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// CertificateData is printed on the completion certificate.
type CertificateData struct {
	Letterhead Letterhead
	Number     string
	IssuedAt   time.Time
	City       string

	TravellerName string
	PackageName   string
	DepartureDate time.Time
	ReturnDate    time.Time
}

// GenerateCertificatePDF renders a landscape certificate confirming the
// traveller completed the journey.
func GenerateCertificatePDF(data CertificateData) ([]byte, error) {
	center := func(size float64, style fontstyle.Type, color *props.Color) props.Text {
		return props.Text{Size: size, Style: style, Color: color, Align: align.Center}
	}

	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(text.New(data.Letterhead.AgencyName, center(12, fontstyle.Bold, colorAccent)))),
		row.New(6).Add(col.New(12).Add(text.New(data.Letterhead.Address, center(8, fontstyle.Normal, colorSecondary)))),
		row.New(10),
		row.New(16).Add(col.New(12).Add(text.New("SERTIFIKAT", center(28, fontstyle.Bold, colorGold)))),
		row.New(8).Add(col.New(12).Add(text.New("No. "+data.Number, center(9, fontstyle.Normal, colorSecondary)))),
		row.New(10),
		row.New(8).Add(col.New(12).Add(text.New("Diberikan kepada", center(11, fontstyle.Normal, colorPrimary)))),
		row.New(14).Add(col.New(12).Add(text.New(data.TravellerName, center(22, fontstyle.Bold, colorPrimary)))),
		separator(),
		row.New(8),
		row.New(8).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Atas telah menunaikan ibadah %s", data.PackageName),
			center(11, fontstyle.Normal, colorPrimary),
		))),
		row.New(8).Add(col.New(12).Add(text.New(
			fmt.Sprintf("pada tanggal %s s/d %s", formatDate(data.DepartureDate), formatDate(data.ReturnDate)),
			center(11, fontstyle.Normal, colorPrimary),
		))),
		row.New(8).Add(col.New(12).Add(text.New(
			"Semoga menjadi ibadah yang mabrur dan diterima oleh Allah SWT.",
			center(10, fontstyle.Italic, colorSecondary),
		))),
		row.New(10),
	}
	rows = append(rows, signatureBlock(data.Letterhead, placeAndDate(data.City, data.IssuedAt))...)

	return render(data.Letterhead, true, rows...)
}

func placeAndDate(city string, at time.Time) string {
	return joinParts([]string{city, formatDate(at)}, ", ")
}
