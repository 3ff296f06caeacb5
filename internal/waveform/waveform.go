// Package waveform renders the simulated voltage traces to a PNG image:
// capacitor voltage and inverter output voltage against time.
package waveform

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/isopleth/relaxation/internal/output"
	"github.com/isopleth/relaxation/internal/sim"
)

// maxPoints caps the number of points per rendered series. Traces run to
// ~100k steps; past a few thousand points the rendered line is visually
// identical and encoding time dominates.
const maxPoints = 4000

// Render writes a PNG plot of the capacitor and inverter output voltages to
// path. The trace must contain at least one record.
func Render(trace *output.MemoryTrace, cfg sim.Config, path string) error {
	if trace.Len() == 0 {
		return fmt.Errorf("render %s: empty trace", path)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Relaxation oscillator, R = %g, C = %g", cfg.Resistance, cfg.Capacitance)
	p.X.Label.Text = "seconds"
	p.Y.Label.Text = "volts"

	err := plotutil.AddLines(p,
		"capacitor", thin(trace.Times, trace.CapVoltages),
		"output", thin(trace.Times, trace.OutVoltages),
	)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// thin downsamples a series to at most maxPoints+1 points, always keeping the
// first and last samples so the plotted span matches the trace.
func thin(times, values []float64) plotter.XYs {
	stride := 1
	if len(times) > maxPoints {
		stride = (len(times) + maxPoints - 1) / maxPoints
	}
	var xys plotter.XYs
	for i := 0; i < len(times); i += stride {
		xys = append(xys, plotter.XY{X: times[i], Y: values[i]})
	}
	if last := len(times) - 1; last%stride != 0 {
		xys = append(xys, plotter.XY{X: times[last], Y: values[last]})
	}
	return xys
}
