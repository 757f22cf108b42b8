package gal

import "errors"

var (
	// ErrUnknownDevice is returned for a device selector with no profile.
	ErrUnknownDevice = errors.New("unknown device")
	// ErrFuseCountMismatch is returned when a fuse array does not have the
	// length declared by its profile.
	ErrFuseCountMismatch = errors.New("fuse count mismatch")
	// ErrUnsupportedMode is returned when the fuse array selects an
	// operating mode the decoder does not implement.
	ErrUnsupportedMode = errors.New("unsupported device mode")
	// ErrInvalidProfile is returned by Profile.Validate.
	ErrInvalidProfile = errors.New("invalid device profile")
)
