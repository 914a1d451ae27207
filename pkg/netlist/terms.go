package netlist

import (
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/toy-cascade/internal/consts"
)

type SourceKind int

const (
	VoltageSource SourceKind = iota
	CurrentSource
)

func (k SourceKind) String() string {
	switch k {
	case VoltageSource:
		return "Voltage"
	case CurrentSource:
		return "Current"
	}
	return fmt.Sprintf("SourceKind(%d)", int(k))
}

type Source struct {
	Kind  SourceKind
	Value float64
}

// Terms are the port terminations and the frequency sweep.
type Terms struct {
	Source          Source
	SourceImpedance float64 // RS, or 1/GS
	LoadImpedance   float64 // RL
	FreqStart       float64
	FreqEnd         float64
	FreqCount       int
	LogSweep        bool
}

type termName int

const (
	termVT termName = iota + 1
	termIN
	termRS
	termGS
	termRL
	termFstart
	termFend
	termLFstart
	termLFend
	termNfreqs
)

var termNames = map[string]termName{
	"VT":      termVT,
	"IN":      termIN,
	"RS":      termRS,
	"GS":      termGS,
	"RL":      termRL,
	"Fstart":  termFstart,
	"Fend":    termFend,
	"LFstart": termLFstart,
	"LFend":   termLFend,
	"Nfreqs":  termNfreqs,
}

type termField uint8

const (
	fieldSource termField = 1 << iota
	fieldSourceImpedance
	fieldLoadImpedance
	fieldFreqStart
	fieldFreqEnd
	fieldFreqCount

	allTermFields = fieldSource | fieldSourceImpedance | fieldLoadImpedance | fieldFreqStart | fieldFreqEnd | fieldFreqCount
)

var termFieldNames = []struct {
	field termField
	name  string
}{
	{fieldSource, "source (VT or IN)"},
	{fieldSourceImpedance, "source impedance (RS or GS)"},
	{fieldLoadImpedance, "load impedance (RL)"},
	{fieldFreqStart, "Fstart"},
	{fieldFreqEnd, "Fend"},
	{fieldFreqCount, "Nfreqs"},
}

// termsBuilder collects TERMS assignments. Every successful assignment is
// counted, so a repeated or conflicting entry is caught by finish.
type termsBuilder struct {
	terms    Terms
	set      termField
	count    int
	startLog bool
	endLog   bool
}

func (b *termsBuilder) assign(token, line string) error {
	fail := func(err error, detail string) error {
		return &ParseError{Block: TermsBlock, Line: line, Token: token, Err: err, Detail: detail}
	}

	name, raw, hasAssign := strings.Cut(token, "=")
	if !hasAssign {
		return fail(ErrInvalidData, "expected <name>=<value>")
	}
	term, ok := termNames[name]
	if !ok {
		return fail(ErrInvalidTerm, "")
	}

	logFlag := false
	if term == termFstart || term == termFend {
		if trimmed, found := strings.CutSuffix(raw, "L"); found {
			raw, logFlag = trimmed, true
		}
	}

	value, err := ParseValue(raw)
	if err != nil {
		return fail(ErrInvalidData, "")
	}

	switch term {
	case termVT:
		b.terms.Source = Source{Kind: VoltageSource, Value: value}
		b.set |= fieldSource
	case termIN:
		b.terms.Source = Source{Kind: CurrentSource, Value: value}
		b.set |= fieldSource
	case termRS:
		b.terms.SourceImpedance = value
		b.set |= fieldSourceImpedance
	case termGS:
		if value == 0 {
			return fail(ErrInvalidData, "source conductance must not be zero")
		}
		b.terms.SourceImpedance = 1 / value
		b.set |= fieldSourceImpedance
	case termRL:
		b.terms.LoadImpedance = value
		b.set |= fieldLoadImpedance
	case termFstart, termLFstart:
		b.terms.FreqStart = value
		b.startLog = logFlag || term == termLFstart
		b.set |= fieldFreqStart
	case termFend, termLFend:
		b.terms.FreqEnd = value
		b.endLog = logFlag || term == termLFend
		b.set |= fieldFreqEnd
	case termNfreqs:
		if value < 1 || value != math.Trunc(value) || value > math.MaxInt32 {
			return fail(ErrInvalidData, "Nfreqs must be a positive integer")
		}
		b.terms.FreqCount = int(value)
		b.set |= fieldFreqCount
	}
	b.count++
	return nil
}

func (b *termsBuilder) finish() (Terms, error) {
	if b.set != allTermFields {
		var missing []string
		for _, f := range termFieldNames {
			if b.set&f.field == 0 {
				missing = append(missing, f.name)
			}
		}
		return Terms{}, &ParseError{Block: TermsBlock, Err: ErrMissingTerm, Detail: strings.Join(missing, ", ")}
	}
	if b.count > consts.RequiredTerms {
		return Terms{}, &ParseError{Block: TermsBlock, Err: ErrExcessTerm,
			Detail: fmt.Sprintf("expected %d terms, found %d", consts.RequiredTerms, b.count)}
	}

	t := b.terms
	if b.startLog != b.endLog {
		return Terms{}, &ParseError{Block: TermsBlock, Err: ErrInvalidTerm, Detail: "Fstart and Fend must both be logarithmic or both linear"}
	}
	t.LogSweep = b.startLog
	if t.FreqStart < 0 || t.FreqEnd < 0 {
		return Terms{}, &ParseError{Block: TermsBlock, Err: ErrInvalidTerm, Detail: "frequencies must not be negative"}
	}
	if t.FreqEnd < t.FreqStart {
		return Terms{}, &ParseError{Block: TermsBlock, Err: ErrInvalidTerm, Detail: "Fend must not be below Fstart"}
	}
	if t.LogSweep && t.FreqStart == 0 {
		return Terms{}, &ParseError{Block: TermsBlock, Err: ErrInvalidTerm, Detail: "logarithmic sweep must start above 0 Hz"}
	}
	return t, nil
}

// ParseTerms parses the TERMS block text. Several terms may share a line.
func ParseTerms(text string) (Terms, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return Terms{}, &ParseError{Block: TermsBlock, Err: ErrEmptyBlock}
	}

	var b termsBuilder
	for _, line := range lines {
		for _, token := range strings.Split(line, " ") {
			if err := b.assign(token, line); err != nil {
				return Terms{}, err
			}
		}
	}
	return b.finish()
}
