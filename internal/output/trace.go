// Package output implements the file sinks for simulation results: the
// per-step CSV trace and the key/value description summary.
package output

import (
	"bufio"
	"fmt"
	"os"
)

// CSVTrace writes one "time,capacitorVoltage,outputVoltage" record per step.
// There is no header row; downstream plotting and spreadsheet imports expect
// bare columns.
type CSVTrace struct {
	f *os.File
	w *bufio.Writer
}

// CreateCSVTrace creates (or truncates) the trace file at path.
func CreateCSVTrace(path string) (*CSVTrace, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open %s for writing: %w", path, err)
	}
	return &CSVTrace{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteStep appends one trace record.
func (c *CSVTrace) WriteStep(t, vCap, vOut float64) error {
	_, err := fmt.Fprintf(c.w, "%g,%g,%g\n", t, vCap, vOut)
	return err
}

// Close flushes buffered records and closes the file. The trace is only
// complete once Close has returned nil.
func (c *CSVTrace) Close() error {
	if err := c.w.Flush(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}

// MemoryTrace buffers trace records in memory. It backs the waveform plot and
// serves as the recording fake in tests.
type MemoryTrace struct {
	Times       []float64
	CapVoltages []float64
	OutVoltages []float64

	// WriteError, if set, will be returned by WriteStep.
	WriteError error
}

// NewMemoryTrace creates an empty MemoryTrace.
func NewMemoryTrace() *MemoryTrace {
	return &MemoryTrace{}
}

// WriteStep records one trace record.
func (m *MemoryTrace) WriteStep(t, vCap, vOut float64) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	m.Times = append(m.Times, t)
	m.CapVoltages = append(m.CapVoltages, vCap)
	m.OutVoltages = append(m.OutVoltages, vOut)
	return nil
}

// Len returns the number of recorded steps.
func (m *MemoryTrace) Len() int {
	return len(m.Times)
}
