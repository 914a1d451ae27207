package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/toy-cascade/internal/config"
	"github.com/edp1096/toy-cascade/internal/ctxlog"
	"github.com/edp1096/toy-cascade/pkg/analysis"
	"github.com/edp1096/toy-cascade/pkg/netlist"
	"github.com/edp1096/toy-cascade/pkg/report"
)

type runFlags struct {
	plot    []int
	workers int
	verify  bool
}

func runCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run INPUT [OUTPUT.csv]",
		Short: "Sweep a ladder network and write the result table",
		Long: `Parse INPUT, evaluate every frequency of the sweep and write the requested
quantities as a CSV table to OUTPUT, or to stdout when OUTPUT is omitted.

With --plot, one PNG per listed column is written next to OUTPUT as
<OUTPUT base>_<column>.png. Column 0 is the frequency.`,
		Args: rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := root.setup(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("plot") {
				cfg.Plot.Columns = flags.plot
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = flags.workers
			}
			if cmd.Flags().Changed("verify") {
				cfg.Verify = flags.verify
			}
			if err := cfg.Validate(); err != nil {
				return usageError("%v", err)
			}

			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			if len(cfg.Plot.Columns) > 0 && output == "" {
				return usageError("plotting needs an OUTPUT file name")
			}

			return run(ctx, cfg, args[0], output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntSliceVar(&flags.plot, "plot", nil, "Result columns to plot, e.g. --plot 1,3")
	cmd.Flags().IntVar(&flags.workers, "workers", 1, "Concurrent frequency evaluations")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Cross-check each sample with a nodal solution")
	return cmd
}

var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func run(ctx context.Context, cfg config.Config, input, output string, stdout io.Writer) error {
	logger := ctxlog.FromContext(ctx)

	data, err := netlist.ParseFile(input)
	if err != nil {
		return failure("%v", err)
	}
	for _, w := range data.Warnings {
		logger.Warn("Netlist warning", "block", w.Block.String(), "line", w.Line, "token", w.Token, "msg", w.Msg)
	}
	logger.Info("Netlist parsed", "file", input, "branches", len(data.Topology), "nodes", data.Topology.NumNodes(), "outputs", len(data.Outputs))

	sweep, err := analysis.RunSweep(data.Topology, data.Terms, data.Outputs, analysis.WithSource(input))
	if err != nil {
		return failure("%v", err)
	}

	var out io.Writer = stdout
	var file io.WriteCloser
	if output != "" {
		file, err = createOutput(output)
		if err != nil {
			return failure("creating output file: %v", err)
		}
		defer func() {
			if file != nil {
				file.Close()
			}
		}()
		out = file
	}
	bw := bufio.NewWriter(out)

	w := report.NewWriter(bw, data.Outputs)
	if err := w.WriteHeader(); err != nil {
		return failure("writing %s: %v", output, err)
	}

	var table *report.Table
	if len(cfg.Plot.Columns) > 0 {
		table = report.NewTable(data.Outputs)
	}
	v := newVerifier(sweep.Cascade(), cfg.Verify, logger)

	emit := func(r analysis.SweepResult) error {
		if err := v.check(r); err != nil {
			return err
		}
		if table != nil {
			table.Append(r)
		}
		return w.WriteRow(r)
	}

	if cfg.Workers > 1 {
		err = collect(ctx, sweep, cfg.Workers, emit)
	} else {
		err = stream(sweep, emit)
	}
	if ferr := bw.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	if file != nil {
		cerr := file.Close()
		file = nil
		if err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %v", output, cerr)
		}
	}
	if err != nil {
		return failure("%v", err)
	}
	logger.Info("Sweep written", "rows", w.Rows(), "output", output)

	if table != nil {
		paths, err := report.WritePlots(table, output, cfg.Plot.Columns, plotOptions(cfg, data.Terms))
		if err != nil {
			return failure("%v", err)
		}
		logger.Info("Plots written", "files", paths)
	}
	return nil
}

// stream evaluates lazily in frequency order. Rows before a failing sample
// are still written.
func stream(sweep *analysis.Sweep, emit func(analysis.SweepResult) error) error {
	for r, err := range sweep.Results() {
		if err != nil {
			return err
		}
		if err := emit(r); err != nil {
			return err
		}
	}
	return nil
}

func collect(ctx context.Context, sweep *analysis.Sweep, workers int, emit func(analysis.SweepResult) error) error {
	results, err := sweep.Collect(ctx, workers)
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := emit(r); err != nil {
			return err
		}
	}
	return nil
}

func plotOptions(cfg config.Config, terms netlist.Terms) report.PlotOptions {
	opts := report.PlotOptions{
		Width:  vg.Length(cfg.Plot.Width) * vg.Inch,
		Height: vg.Length(cfg.Plot.Height) * vg.Inch,
		LogX:   terms.LogSweep,
	}
	if cfg.Plot.LogX != nil {
		opts.LogX = *cfg.Plot.LogX
	}
	return opts
}

type verifier struct {
	cascade *analysis.Cascade
	enabled bool
	warned  bool
	logger  *slog.Logger
}

func newVerifier(c *analysis.Cascade, enabled bool, logger *slog.Logger) *verifier {
	return &verifier{cascade: c, enabled: enabled, logger: logger}
}

// check skips samples without a nodal form, warning once.
func (v *verifier) check(r analysis.SweepResult) error {
	if !v.enabled {
		return nil
	}
	err := v.cascade.Verify(r, analysis.DefaultTolerance)
	if errors.Is(err, analysis.ErrVerifyUnsupported) {
		if !v.warned {
			v.logger.Warn("Nodal cross-check skipped", "frequency", r.Frequency, "reason", err)
			v.warned = true
		}
		return nil
	}
	if err != nil {
		return err
	}
	v.logger.Debug("Nodal cross-check passed", "frequency", r.Frequency)
	return nil
}
