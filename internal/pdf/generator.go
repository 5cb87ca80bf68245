// Package pdf renders the agency's booking documents using maroto/v2.
// Every document shares the same letterhead and footer; the templates only
// format the data they are given.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 4, Green: 120, Blue: 87}    // emerald-700
	colorGold      = &props.Color{Red: 180, Green: 137, Blue: 39}
	colorTableHead = &props.Color{Red: 236, Green: 253, Blue: 245} // emerald-50
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251} // gray-50
	colorRed       = &props.Color{Red: 220, Green: 38, Blue: 38}   // red-600
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200
)

// Letterhead identifies the issuing agency on every page.
type Letterhead struct {
	AgencyName    string
	Address       string
	Phone         string
	Email         string
	LicenseNumber string // PPIU licence
}

// render builds an A4 document with the shared footer and the given body rows.
func render(lh Letterhead, landscape bool, body ...core.Row) ([]byte, error) {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15)
	if landscape {
		builder = builder.WithOrientation(orientation.Horizontal)
	}

	m := maroto.New(builder.Build())

	if err := m.RegisterFooter(buildFooter(lh)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}
	m.AddRows(body...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Header ──────────────────────────────────────────────────────────────

func buildLetterhead(lh Letterhead, title, reference string) []core.Row {
	contact := joinParts([]string{lh.Phone, lh.Email}, "  |  ")
	licence := ""
	if lh.LicenseNumber != "" {
		licence = "Izin PPIU No. " + lh.LicenseNumber
	}

	rows := []core.Row{
		row.New(20).Add(
			col.New(7).Add(
				text.New(lh.AgencyName, props.Text{Size: 14, Style: fontstyle.Bold, Color: colorAccent, Top: 2}),
				text.New(lh.Address, props.Text{Size: 8, Color: colorSecondary, Top: 10}),
				text.New(contact, props.Text{Size: 8, Color: colorSecondary, Top: 14}),
			),
			col.New(5).Add(
				text.New(title, props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary}),
				text.New(reference, props.Text{Size: 10, Align: align.Right, Color: colorSecondary, Top: 10}),
			),
		),
	}
	if licence != "" {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(licence, props.Text{Size: 7, Color: colorSecondary})),
		))
	}

	rows = append(rows,
		separator(),
		row.New(6),
	)
	return rows
}

// ── Footer (registered, repeats on every page) ─────────────────────────

func buildFooter(lh Letterhead) core.Row {
	parts := []string{lh.AgencyName}
	if lh.LicenseNumber != "" {
		parts = append(parts, "PPIU: "+lh.LicenseNumber)
	}
	if lh.Phone != "" {
		parts = append(parts, "Telp: "+lh.Phone)
	}
	parts = append(parts, lh.Email)

	return row.New(10).Add(
		col.New(12).Add(
			text.New(joinParts(parts, "  |  "), props.Text{
				Size:  6.5,
				Color: colorSecondary,
				Align: align.Center,
				Top:   4,
			}),
		),
	).WithStyle(&props.Cell{
		BorderType:  border.Top,
		BorderColor: colorBorder,
	})
}

// ── Building blocks ─────────────────────────────────────────────────────

func separator() core.Row {
	return row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	})
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(
		col.New(12).Add(text.New(title, props.Text{Size: 8, Style: fontstyle.Bold, Color: colorAccent})),
	)
}

// field is a label/value pair laid out in two columns.
type field struct {
	label string
	value string
}

func fieldRows(fields []field) []core.Row {
	rows := make([]core.Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(f.label, props.Text{Size: 9, Color: colorSecondary})),
			col.New(8).Add(text.New(f.value, props.Text{Size: 9, Color: colorPrimary})),
		))
	}
	return rows
}

func paragraph(body string, height float64) core.Row {
	return row.New(height).Add(
		col.New(12).Add(text.New(body, props.Text{Size: 10, Color: colorPrimary, Align: align.Left})),
	)
}

// signatureBlock is the right-aligned "place, date / agency / signer" block.
func signatureBlock(lh Letterhead, placeDate string) []core.Row {
	right := props.Text{Size: 9, Color: colorPrimary, Align: align.Center}
	return []core.Row{
		row.New(6).Add(col.New(7), col.New(5).Add(text.New(placeDate, right))),
		row.New(6).Add(col.New(7), col.New(5).Add(text.New(lh.AgencyName, props.Text{
			Size: 9, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Center,
		}))),
		row.New(22),
		row.New(6).Add(col.New(7), col.New(5).Add(text.New("( ______________________ )", right))),
		row.New(5).Add(col.New(7), col.New(5).Add(text.New("Pimpinan", props.Text{
			Size: 8, Color: colorSecondary, Align: align.Center,
		}))),
	}
}

func joinParts(parts []string, sep string) string {
	result := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if result != "" {
			result += sep
		}
		result += p
	}
	return result
}
