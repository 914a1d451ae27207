package analysis

import (
	"context"
	"fmt"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/edp1096/toy-cascade/internal/ctxlog"
	"github.com/edp1096/toy-cascade/pkg/netlist"
)

// Sweep is a lazily evaluated frequency sweep. Its results can be iterated
// once, in increasing frequency order.
type Sweep struct {
	cascade     *Cascade
	frequencies []float64
	consumed    bool
}

func RunSweep(topology netlist.Topology, terms netlist.Terms, outputs []netlist.OutputDescriptor, opts ...Option) (*Sweep, error) {
	cascade, err := NewCascade(topology, terms, outputs, opts...)
	if err != nil {
		return nil, err
	}
	return NewSweep(cascade)
}

func NewSweep(cascade *Cascade) (*Sweep, error) {
	frequencies, err := Frequencies(cascade.terms)
	if err != nil {
		return nil, err
	}
	return &Sweep{cascade: cascade, frequencies: frequencies}, nil
}

func (s *Sweep) Cascade() *Cascade {
	return s.cascade
}

func (s *Sweep) Len() int {
	return len(s.frequencies)
}

func (s *Sweep) Frequencies() []float64 {
	return append([]float64(nil), s.frequencies...)
}

// Results yields one result per frequency. Evaluation stops at the first
// failing sample, which is yielded as the error. A second call yields
// ErrSweepConsumed.
func (s *Sweep) Results() iter.Seq2[SweepResult, error] {
	return func(yield func(SweepResult, error) bool) {
		if s.consumed {
			yield(SweepResult{}, ErrSweepConsumed)
			return
		}
		s.consumed = true

		for _, freq := range s.frequencies {
			r, err := s.cascade.Evaluate(freq)
			if err != nil {
				yield(SweepResult{}, err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Collect evaluates every sample with up to workers goroutines and returns
// the results in frequency order. When samples fail, the error of the lowest
// frequency is returned, the same one Results would report.
func (s *Sweep) Collect(ctx context.Context, workers int) ([]SweepResult, error) {
	if s.consumed {
		return nil, ErrSweepConsumed
	}
	s.consumed = true

	logger := ctxlog.FromContext(ctx)
	if workers < 1 {
		workers = 1
	}

	results := make([]SweepResult, len(s.frequencies))
	errs := make([]error, len(s.frequencies))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, freq := range s.frequencies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = s.cascade.Evaluate(freq)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep cancelled: %w", err)
	}

	for i, err := range errs {
		if err != nil {
			logger.Debug("Sweep sample failed", "index", i, "frequency", s.frequencies[i], "error", err)
			return nil, err
		}
	}
	logger.Debug("Sweep complete", "samples", len(results), "workers", workers)
	return results, nil
}

// RunSweepParallel builds the sweep and collects it concurrently.
func RunSweepParallel(ctx context.Context, topology netlist.Topology, terms netlist.Terms, outputs []netlist.OutputDescriptor, workers int, opts ...Option) ([]SweepResult, error) {
	sweep, err := RunSweep(topology, terms, outputs, opts...)
	if err != nil {
		return nil, err
	}
	return sweep.Collect(ctx, workers)
}
