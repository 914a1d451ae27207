package consts

import "math"

const (
	TWOPI = 2 * math.Pi // Angular frequency factor (rad/cycle)
)

// Section tags of a network description file
const (
	CircuitStart = "<CIRCUIT>"
	CircuitEnd   = "</CIRCUIT>"
	TermsStart   = "<TERMS>"
	TermsEnd     = "</TERMS>"
	OutputStart  = "<OUTPUT>"
	OutputEnd    = "</OUTPUT>"
)

const (
	CommentMark = "#"
	LinearUnit  = "L" // Unit marker of dimensionless gains
	PhaseUnit   = "Rads"
	FreqUnit    = "Hz"
)

// CSV column widths
const (
	FreqWidth  = 10
	ValueWidth = 11
)

const RequiredTerms = 6
