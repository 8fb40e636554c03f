package engine

import "errors"

var (
	// ErrNoConversion reports that no strategy produced a genuine conversion
	// for the pair and the value's dynamic type did not satisfy the
	// destination either.
	ErrNoConversion = errors.New("no conversion between types")

	// ErrNilValue reports a conversion attempted on an untyped nil.
	ErrNilValue = errors.New("cannot convert nil value")

	// ErrDeclined reports that a converter or operator returned not-ok for
	// the given value.
	ErrDeclined = errors.New("conversion declined the value")
)
