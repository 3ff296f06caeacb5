// Package circuit contains the ideal component models for the relaxation
// oscillator: a charge-accumulating capacitor, a linear resistor, and a
// Schmitt-trigger inverter. This package has NO external dependencies and
// does no I/O; all state is owned by the component instances.
package circuit

// Capacitor is an ideal capacitor without resistance or leakage. It tracks
// the stored charge and derives the voltage from it.
type Capacitor struct {
	capacitance float64 // farads, fixed at construction
	charge      float64 // coulombs
}

// NewCapacitor creates a capacitor with the given capacitance in farads.
// The initial stored charge is zero. The capacitance must be positive;
// validating that is the caller's concern (see sim.Config.Validate).
func NewCapacitor(capacitance float64) *Capacitor {
	return &Capacitor{capacitance: capacitance}
}

// AddCharge adds charge, in coulombs, to the capacitor. Negative values
// remove charge; the stored charge may go negative transiently.
func (c *Capacitor) AddCharge(charge float64) {
	c.charge += charge
}

// Voltage returns the voltage across the capacitor.
func (c *Capacitor) Voltage() float64 {
	return c.charge / c.capacitance
}
