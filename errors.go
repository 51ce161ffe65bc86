package restauro

import "github.com/pkg/errors"

var (
	// ErrNilBitmap is returned when a nil bitmap is passed to the pipeline.
	ErrNilBitmap = errors.New("restauro: nil bitmap")

	// ErrInvalidBitmap is returned when a bitmap's pixel buffer does not hold
	// exactly Width×Height×4 bytes or its dimensions are negative.
	ErrInvalidBitmap = errors.New("restauro: invalid bitmap")

	// ErrUnknownPreset is returned by LookupPreset for names it does not know.
	ErrUnknownPreset = errors.New("restauro: unknown preset")

	// ErrUnknownParam is returned by ParseParam for names it does not know.
	ErrUnknownParam = errors.New("restauro: unknown parameter")

	// ErrOutOfRange is returned by Adjustments.Validate.
	ErrOutOfRange = errors.New("restauro: parameter out of range")
)
