package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/device"
	"github.com/edp1096/toy-cascade/pkg/netlist"
	"github.com/edp1096/toy-cascade/pkg/util"
)

var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorMuted   = lipgloss.Color("#565f89")
	colorWarning = lipgloss.Color("#e0af68")

	titleStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

func inspectCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect INPUT",
		Short: "Show the resolved ladder, terminations and outputs without sweeping",
		Args:  rangeArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := root.setup(cmd); err != nil {
				return err
			}
			data, err := netlist.ParseFile(args[0])
			if err != nil {
				return failure("%v", err)
			}
			frequencies, err := analysis.Frequencies(data.Terms)
			if err != nil {
				return failure("%v", err)
			}
			renderInspect(cmd.OutOrStdout(), args[0], data, frequencies)
			return nil
		},
	}
}

func renderInspect(w io.Writer, name string, data *netlist.NetlistData, frequencies []float64) {
	sections := []string{
		titleStyle.Render(name),
		boxStyle.Render(renderLadder(data.Topology)),
		boxStyle.Render(renderTerms(data.Terms, frequencies)),
		boxStyle.Render(renderOutputs(data.Outputs)),
	}
	if len(data.Warnings) > 0 {
		lines := make([]string, len(data.Warnings))
		for i, warn := range data.Warnings {
			lines[i] = warningStyle.Render("! " + warn.String())
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderLadder(topology netlist.Topology) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("Ladder  %d nodes", topology.NumNodes()))}
	node := 1
	for _, b := range topology {
		value := util.FormatValueFactor(b.Value, b.Kind.Unit())
		switch b.Connection {
		case device.Series:
			lines = append(lines, fmt.Sprintf("%s %d-%d  %s %s", labelStyle.Render("series"), node, node+1, b.Kind, value))
			node++
		case device.Parallel:
			lines = append(lines, fmt.Sprintf("%s %d-0  %s %s", labelStyle.Render("parallel"), node, b.Kind, value))
		}
	}
	return strings.Join(lines, "\n")
}

func renderTerms(terms netlist.Terms, frequencies []float64) string {
	source := fmt.Sprintf("VT = %s", util.FormatValueFactor(terms.Source.Value, "V"))
	if terms.Source.Kind == netlist.CurrentSource {
		source = fmt.Sprintf("IN = %s", util.FormatValueFactor(terms.Source.Value, "A"))
	}
	axis := "linear"
	if terms.LogSweep {
		axis = "logarithmic"
	}
	lines := []string{
		titleStyle.Render("Terms"),
		labelStyle.Render("source") + " " + source,
		labelStyle.Render("RS") + " " + util.FormatValueFactor(terms.SourceImpedance, "Ohms"),
		labelStyle.Render("RL") + " " + util.FormatValueFactor(terms.LoadImpedance, "Ohms"),
		labelStyle.Render("sweep") + fmt.Sprintf(" %s .. %s, %d points, %s",
			strings.TrimSpace(util.FormatFrequency(frequencies[0])),
			strings.TrimSpace(util.FormatFrequency(frequencies[len(frequencies)-1])),
			len(frequencies), axis),
	}
	return strings.Join(lines, "\n")
}

func renderOutputs(outputs []netlist.OutputDescriptor) string {
	lines := []string{titleStyle.Render("Outputs")}
	for i, d := range outputs {
		form := "re/im"
		if d.Decibel {
			form = "dB/rad"
		}
		lines = append(lines, fmt.Sprintf("%s %-5s %-6s %-6s 10^%d", labelStyle.Render(fmt.Sprintf("cols %d,%d", 2*i+1, 2*i+2)), d.Name, d.Unit, form, d.Exponent))
	}
	return strings.Join(lines, "\n")
}
