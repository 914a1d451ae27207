package report

import (
	"io"
	"strings"

	"github.com/edp1096/toy-cascade/internal/consts"
	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/netlist"
	"github.com/edp1096/toy-cascade/pkg/util"
)

// Writer emits the result table: a header row, a units row, then one row
// per frequency. Every field is right justified and data rows end with a
// trailing comma.
type Writer struct {
	w       io.Writer
	columns []Column
	rows    int
}

func NewWriter(w io.Writer, outputs []netlist.OutputDescriptor) *Writer {
	return &Writer{w: w, columns: Columns(outputs)}
}

func (w *Writer) WriteHeader() error {
	headers := make([]string, len(w.columns))
	units := make([]string, len(w.columns))
	for i, c := range w.columns {
		width := consts.ValueWidth
		if i == 0 {
			width = consts.FreqWidth
		}
		headers[i] = util.Justify(c.Header, width)
		units[i] = util.Justify(c.Unit, width)
	}

	_, err := io.WriteString(w.w, strings.Join(headers, ",")+"\n"+strings.Join(units, ",")+"\n")
	return err
}

func (w *Writer) WriteRow(r analysis.SweepResult) error {
	var sb strings.Builder
	for i, v := range row(r) {
		if i == 0 {
			sb.WriteString(util.FormatNumber(v, consts.FreqWidth))
		} else {
			sb.WriteString(util.FormatNumber(v, consts.ValueWidth))
		}
		sb.WriteByte(',')
	}
	sb.WriteByte('\n')

	if _, err := io.WriteString(w.w, sb.String()); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows is the number of data rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}
