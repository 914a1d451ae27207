package netlist

import (
	"regexp"
	"strings"

	"github.com/edp1096/toy-cascade/internal/consts"
)

var (
	separatorRun = regexp.MustCompile(`[\s,]+`)
	assignRun    = regexp.MustCompile(`[\s,]*=[\s,=]*`)
)

// StripComments drops whole-line comments and cuts every other line at '#'.
func StripComments(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, consts.CommentMark) {
			continue
		}
		if idx := strings.Index(line, consts.CommentMark); idx >= 0 {
			line = line[:idx]
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// CleanLine collapses separators and the spacing around '='.
//
//	"n1 =======    2   ,   n2 = 1, R   = === 17  " -> "n1=2 n2=1 R=17"
func CleanLine(line string) string {
	line = separatorRun.ReplaceAllString(strings.TrimSpace(line), " ")
	line = assignRun.ReplaceAllString(line, "=")
	return strings.TrimSpace(line)
}

// Normalize returns comment free text with one cleaned, non-empty entry per line.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(StripComments(text), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = CleanLine(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func splitLines(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}
