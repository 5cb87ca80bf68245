package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/internal/shared/money"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type bookingConfirmationEmailData struct {
	baseEmailData
	CustomerName   string
	BookingCode    string
	PackageName    string
	DepartureDate  string
	TotalFormatted string
	AgencyName     string
	AgencyPhone    string
}

type followUpReminderEmailData struct {
	baseEmailData
	LeadName     string
	Phone        string
	Status       string
	FollowUpDate string
}

func renderBookingConfirmation(data BookingConfirmation) (string, string, error) {
	content, err := renderEmailTemplate("booking_confirmation.html", bookingConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:      "Konfirmasi Pendaftaran",
			Heading:    "Pendaftaran Anda telah kami terima",
			Subheading: "Kode booking " + data.BookingCode,
		},
		CustomerName:   data.CustomerName,
		BookingCode:    data.BookingCode,
		PackageName:    data.PackageName,
		DepartureDate:  calendar.FormatLong(data.DepartureDate),
		TotalFormatted: money.FormatRupiah(data.TotalPrice),
		AgencyName:     data.AgencyName,
		AgencyPhone:    data.AgencyPhone,
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf(subjectBookingConfirmationFmt, data.PackageName, data.BookingCode), content, nil
}

func renderFollowUpReminder(data FollowUpReminder) (string, string, error) {
	content, err := renderEmailTemplate("followup_reminder.html", followUpReminderEmailData{
		baseEmailData: baseEmailData{
			Title:    "Pengingat Follow-up",
			Heading:  "Calon jamaah perlu dihubungi hari ini",
			CTALabel: "Hubungi via WhatsApp",
			CTAURL:   data.WhatsAppLink,
		},
		LeadName:     data.LeadName,
		Phone:        data.Phone,
		Status:       data.Status,
		FollowUpDate: calendar.FormatLong(data.FollowUpDate),
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf(subjectFollowUpReminderFmt, data.LeadName), content, nil
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
