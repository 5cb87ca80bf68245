package email

const (
	subjectBookingConfirmationFmt = "Konfirmasi pendaftaran %s - %s"
	subjectFollowUpReminderFmt    = "Pengingat follow-up: %s"
)
