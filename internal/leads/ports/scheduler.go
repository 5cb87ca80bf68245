package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FollowUpScheduler queues the reminder for a lead's follow-up date.
// Implementations must tolerate being called twice for the same lead and date.
type FollowUpScheduler interface {
	ScheduleFollowUp(ctx context.Context, leadID uuid.UUID, date time.Time) error
}
