package engine

// Reason classifies the outcome of a non-strict conversion attempt.
type Reason int

//go:generate go tool stringer -type=Reason -trimprefix=Reason -output=reason_string.go

const (
	ReasonOK Reason = iota
	ReasonNilValue
	ReasonNoConversion
	ReasonFault
)

// Result is the tagged outcome of TryCast: either a converted value with
// ReasonOK, or the destination's zero value tagged with why the conversion
// did not happen. Err is set for ReasonNoConversion and ReasonFault.
type Result struct {
	Value  any
	Reason Reason
	Err    error
}

// OK reports whether the conversion produced a genuine value.
func (r Result) OK() bool {
	return r.Reason == ReasonOK
}
