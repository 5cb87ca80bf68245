package pdf

import (
	"strings"
	"time"

	"umroh_travel_backend/internal/shared/calendar"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return calendar.FormatLong(t)
}

func roomTypeLabel(roomType string) string {
	switch roomType {
	case "quad":
		return "Quad (4 orang per kamar)"
	case "triple":
		return "Triple (3 orang per kamar)"
	case "double":
		return "Double (2 orang per kamar)"
	default:
		return roomType
	}
}

func statusLabel(status string) string {
	switch status {
	case "pending":
		return "Menunggu Pembayaran"
	case "confirmed":
		return "Terkonfirmasi"
	case "cancelled":
		return "Dibatalkan"
	default:
		return status
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
