// Package report writes sweep results as a fixed-width CSV table and as
// PNG graphs of selected columns.
package report

import (
	"fmt"

	"github.com/edp1096/toy-cascade/internal/consts"
	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/netlist"
)

// Column is one written column. Column 0 is the frequency, every requested
// output adds two.
type Column struct {
	Header string
	Unit   string
}

func Columns(outputs []netlist.OutputDescriptor) []Column {
	cols := make([]Column, 0, 1+2*len(outputs))
	cols = append(cols, Column{Header: "Freq", Unit: consts.FreqUnit})
	for _, d := range outputs {
		if d.Decibel {
			cols = append(cols,
				Column{Header: "|" + d.Name + "|", Unit: d.Unit},
				Column{Header: "/_" + d.Name, Unit: consts.PhaseUnit})
		} else {
			cols = append(cols,
				Column{Header: "Re(" + d.Name + ")", Unit: d.Unit},
				Column{Header: "Im(" + d.Name + ")", Unit: d.Unit})
		}
	}
	return cols
}

// Table keeps the rows of a sweep in memory for plotting.
type Table struct {
	Columns []Column
	Rows    [][]float64
}

func NewTable(outputs []netlist.OutputDescriptor) *Table {
	return &Table{Columns: Columns(outputs)}
}

func (t *Table) Append(r analysis.SweepResult) {
	t.Rows = append(t.Rows, row(r))
}

// Series returns the frequency and the values of column col.
func (t *Table) Series(col int) ([]float64, []float64, error) {
	if col < 1 || col >= len(t.Columns) {
		return nil, nil, fmt.Errorf("column %d out of range 1..%d", col, len(t.Columns)-1)
	}
	x := make([]float64, len(t.Rows))
	y := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		x[i], y[i] = r[0], r[col]
	}
	return x, y, nil
}

func row(r analysis.SweepResult) []float64 {
	values := make([]float64, 0, 1+2*len(r.Readings))
	values = append(values, r.Frequency)
	for _, rd := range r.Readings {
		values = append(values, rd.First, rd.Second)
	}
	return values
}
