package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownStatus      = errors.New("unknown lead status")
	ErrTerminal           = errors.New("lead is already won")
	ErrLeadLost           = errors.New("lead is lost; reactivate it first")
	ErrConversionRequired = errors.New("won can only be reached by converting the lead to a booking")
	ErrNoChange           = errors.New("lead is already in this status")
	ErrRegression         = errors.New("lead cannot move back to an earlier stage")
	ErrNotLost            = errors.New("only lost leads can be reactivated")
	ErrMissingBooking     = errors.New("conversion requires a booking")
	ErrInconsistentState  = errors.New("lead status and booking reference disagree")
)

// State is the lead lifecycle as a closed set of variants: Open, Won and Lost.
// Won carries its booking, so a won lead without one cannot be constructed.
type State interface {
	Status() Status
	sealed()
}

// Open is a lead somewhere in new..closing.
type Open struct {
	stage Status
}

func (o Open) Status() Status { return o.stage }
func (Open) sealed()          {}

// Won is a converted lead.
type Won struct {
	bookingID   uuid.UUID
	convertedAt time.Time
}

func (Won) Status() Status { return StatusWon }
func (Won) sealed()        {}

func (w Won) BookingID() uuid.UUID   { return w.bookingID }
func (w Won) ConvertedAt() time.Time { return w.convertedAt }

// Lost is a lead that dropped out of the pipeline.
type Lost struct{}

func (Lost) Status() Status { return StatusLost }
func (Lost) sealed()        {}

// NewLead is the state of a freshly captured lead.
func NewLead() State {
	return Open{stage: StatusNew}
}

// StateFromRecord rebuilds the state of a stored lead.
func StateFromRecord(status Status, bookingID *uuid.UUID, convertedAt *time.Time) (State, error) {
	switch {
	case status == StatusWon:
		if bookingID == nil || *bookingID == uuid.Nil {
			return nil, ErrInconsistentState
		}
		w := Won{bookingID: *bookingID}
		if convertedAt != nil {
			w.convertedAt = *convertedAt
		}
		return w, nil
	case bookingID != nil:
		return nil, ErrInconsistentState
	case status == StatusLost:
		return Lost{}, nil
	case Index(status) >= 0:
		return Open{stage: status}, nil
	default:
		return nil, ErrUnknownStatus
	}
}

// Transition applies a pipeline move requested by staff.
//
// Any open stage may jump forward to any later open stage or drop to lost.
// Lost only returns to new. Won is reachable only through Convert.
func Transition(from State, to Status) (State, error) {
	if !to.Valid() {
		return nil, ErrUnknownStatus
	}

	switch cur := from.(type) {
	case Won:
		return nil, ErrTerminal
	case Lost:
		switch to {
		case StatusNew:
			return Open{stage: StatusNew}, nil
		case StatusLost:
			return nil, ErrNoChange
		default:
			return nil, ErrLeadLost
		}
	case Open:
		switch {
		case to == StatusWon:
			return nil, ErrConversionRequired
		case to == StatusLost:
			return Lost{}, nil
		case to == cur.stage:
			return nil, ErrNoChange
		case Index(to) < Index(cur.stage):
			return nil, ErrRegression
		default:
			return Open{stage: to}, nil
		}
	default:
		return nil, ErrUnknownStatus
	}
}

// Reactivate returns a lost lead to new.
func Reactivate(from State) (State, error) {
	if _, ok := from.(Lost); !ok {
		return nil, ErrNotLost
	}
	return Open{stage: StatusNew}, nil
}

// Convert marks an open lead as won by the given booking.
func Convert(from State, bookingID uuid.UUID, at time.Time) (Won, error) {
	switch from.(type) {
	case Won:
		return Won{}, ErrTerminal
	case Lost:
		return Won{}, ErrLeadLost
	case Open:
	default:
		return Won{}, ErrUnknownStatus
	}
	if bookingID == uuid.Nil {
		return Won{}, ErrMissingBooking
	}
	return Won{bookingID: bookingID, convertedAt: at}, nil
}

// AdvanceOnNote moves a new lead to contacted when staff log a follow-up note.
func AdvanceOnNote(from State) (State, bool) {
	if o, ok := from.(Open); ok && o.stage == StatusNew {
		return Open{stage: StatusContacted}, true
	}
	return from, false
}
