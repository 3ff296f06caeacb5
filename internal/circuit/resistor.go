package circuit

// Resistor is an ideal linear resistor. It is stateless: the current is a
// pure function of the voltages on its two terminals.
type Resistor struct {
	resistance float64 // ohms, fixed at construction
}

// NewResistor creates a resistor with the given resistance in ohms.
// The resistance must be non-zero (it is used as a divisor).
func NewResistor(resistance float64) *Resistor {
	return &Resistor{resistance: resistance}
}

// Current returns the current through the resistor given the voltage on each
// terminal. Positive current flows from vNear toward vFar.
func (r *Resistor) Current(vNear, vFar float64) float64 {
	return (vNear - vFar) / r.resistance
}
