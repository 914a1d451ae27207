package netlist

import (
	"errors"
	"fmt"
	"strings"
)

// Structural
var (
	ErrMissingBlock = errors.New("block is missing")
	ErrEmptyBlock   = errors.New("empty block detected")
)

// Lexical and syntactic
var (
	ErrInvalidComponent      = errors.New("invalid component")
	ErrInvalidData           = errors.New("invalid data entered")
	ErrUnknownVariable       = errors.New("unknown variable found")
	ErrInvalidTerm           = errors.New("invalid term")
	ErrInvalidOutputVariable = errors.New("invalid output variable")
	ErrInvalidUnit           = errors.New("invalid unit")
)

// Topological
var (
	ErrIllegalConnection     = errors.New("invalid circuit connection: series nodes must be adjacent")
	ErrConflictingConnection = errors.New("conflicting circuit connection: series components cannot share the same nodes")
	ErrMissingNode           = errors.New("missing node connection: all nodes must be connected by a component")
)

// Completeness
var (
	ErrMissingTerm = errors.New("TERMS block has a missing term")
	ErrExcessTerm  = errors.New("TERMS block has too many terms")
)

// ParseError locates a failure inside one block of the description.
type ParseError struct {
	Block  Block
	Line   string // normalized line, empty for block level failures
	Token  string // offending token, if any
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Token != "" {
		fmt.Fprintf(&sb, ": %q", e.Token)
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Line != "" && e.Line != e.Token {
		fmt.Fprintf(&sb, " in line %q", e.Line)
	}
	fmt.Fprintf(&sb, " (check %s block)", e.Block)
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Warning is a recoverable finding, e.g. an unknown unit prefix that defaulted to 10^0.
type Warning struct {
	Block Block
	Line  string
	Token string
	Msg   string
}

func (w Warning) String() string {
	if w.Line != "" {
		return fmt.Sprintf("%s block: %s: %q in line %q", w.Block, w.Msg, w.Token, w.Line)
	}
	return fmt.Sprintf("%s block: %s: %q", w.Block, w.Msg, w.Token)
}
