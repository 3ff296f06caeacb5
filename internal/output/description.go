package output

import (
	"fmt"
	"io"

	"github.com/isopleth/relaxation/internal/sim"
)

// WriteDescription writes the run summary as one "KEY = value" pair per line:
// the trace file reference, the six circuit parameters, and the derived
// oscillation frequency in Hz. HLT is the high-to-low transition voltage and
// LHT the low-to-high transition voltage.
func WriteDescription(w io.Writer, traceFile string, cfg sim.Config, frequency float64) error {
	lines := []struct {
		key   string
		value any
	}{
		{"FILE", traceFile},
		{"RESISTANCE", cfg.Resistance},
		{"CAPACITANCE", cfg.Capacitance},
		{"LH", cfg.LogicHigh},
		{"LL", cfg.LogicLow},
		{"HLT", cfg.HighToLowThreshold},
		{"LHT", cfg.LowToHighThreshold},
		{"FREQUENCY", frequency},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s = %v\n", l.key, l.value); err != nil {
			return fmt.Errorf("write description: %w", err)
		}
	}
	return nil
}
