package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrProfileNotCreated means the user account was created but its profile
	// row was not. The account is usable, only the profile is missing.
	ErrProfileNotCreated = errors.New("profile could not be created")

	ErrInvalidRange      = errors.New("end time must be after start time")
	ErrPastStartTime     = errors.New("start time must be in the future")
	ErrExcessiveDuration = errors.New("booking exceeds the maximum allowed duration")
	ErrTooFarInAdvance   = errors.New("booking starts beyond the advance booking window")

	ErrSeatUnavailable = errors.New("seat is not available for the requested time")

	// ErrBookingConflict is returned when the database rejects a booking insert
	// because another active booking landed on the same seat and an overlapping
	// window first. The associated payment becomes refund eligible.
	ErrBookingConflict = errors.New("seat was booked for an overlapping time by another user")

	ErrPaymentFailed   = errors.New("payment failed")
	ErrPaymentCanceled = errors.New("payment was canceled")

	// ErrPersistAfterPayment means a payment was captured but the booking row
	// could not be written. It must never be reported as a generic failure:
	// money has moved and no reservation exists.
	ErrPersistAfterPayment = errors.New("payment captured but booking could not be saved")

	ErrCancellationWindowExpired = errors.New("booking can no longer be cancelled")
)
