package domain

import (
	"errors"

	"umroh_travel_backend/platform/apperr"
)

// AsAppError maps lifecycle errors onto API error kinds. Errors that are not
// lifecycle errors are returned unchanged.
func AsAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTerminal):
		return apperr.Conflict("lead is already converted")
	case errors.Is(err, ErrLeadLost),
		errors.Is(err, ErrConversionRequired),
		errors.Is(err, ErrNoChange),
		errors.Is(err, ErrRegression),
		errors.Is(err, ErrNotLost),
		errors.Is(err, ErrUnknownStatus),
		errors.Is(err, ErrMissingBooking):
		return apperr.Wrap(apperr.KindValidation, err.Error(), err)
	case errors.Is(err, ErrInconsistentState):
		return apperr.Wrap(apperr.KindInternal, "lead record is inconsistent", err)
	default:
		return err
	}
}
