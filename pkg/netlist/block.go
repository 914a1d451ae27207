package netlist

import (
	"fmt"
	"strings"

	"github.com/edp1096/toy-cascade/internal/consts"
)

type Block int

const (
	CircuitBlock Block = iota
	TermsBlock
	OutputBlock
)

func (b Block) String() string {
	switch b {
	case CircuitBlock:
		return "CIRCUIT"
	case TermsBlock:
		return "TERMS"
	case OutputBlock:
		return "OUTPUT"
	}
	return fmt.Sprintf("Block(%d)", int(b))
}

// Tags returns the start and end delimiters of the block.
func (b Block) Tags() (string, string) {
	switch b {
	case CircuitBlock:
		return consts.CircuitStart, consts.CircuitEnd
	case TermsBlock:
		return consts.TermsStart, consts.TermsEnd
	case OutputBlock:
		return consts.OutputStart, consts.OutputEnd
	}
	return "", ""
}

// ExtractBlock returns the text strictly between the first start tag and the last end tag.
func ExtractBlock(text string, block Block) (string, error) {
	start, end := block.Tags()
	if start == "" {
		return "", fmt.Errorf("unknown block %v", block)
	}

	first := strings.Index(text, start)
	if first < 0 {
		return "", &ParseError{Block: block, Err: ErrMissingBlock, Detail: start + " not found"}
	}
	last := strings.LastIndex(text, end)
	if last < 0 {
		return "", &ParseError{Block: block, Err: ErrMissingBlock, Detail: end + " not found"}
	}

	begin := first + len(start)
	if last < begin {
		return "", &ParseError{Block: block, Err: ErrEmptyBlock, Detail: end + " precedes " + start}
	}

	content := text[begin:last]
	if strings.TrimSpace(content) == "" {
		return "", &ParseError{Block: block, Err: ErrEmptyBlock}
	}
	return content, nil
}
