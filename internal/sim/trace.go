package sim

// TraceWriter receives one record per simulation step.
type TraceWriter interface {
	// WriteStep records the simulated time and the capacitor and inverter
	// output voltages after the step's update.
	WriteStep(t, vCap, vOut float64) error
}

// MultiTrace fans each record out to several writers, stopping at the first
// error.
func MultiTrace(writers ...TraceWriter) TraceWriter {
	return multiTrace(writers)
}

type multiTrace []TraceWriter

func (m multiTrace) WriteStep(t, vCap, vOut float64) error {
	for _, w := range m {
		if err := w.WriteStep(t, vCap, vOut); err != nil {
			return err
		}
	}
	return nil
}
