package sim

import "fmt"

// Config holds the six circuit parameters of a run. It is read-only to the
// core: the simulation never mutates it.
type Config struct {
	Resistance  float64 // ohms
	Capacitance float64 // farads
	LogicLow    float64 // volts, low output rail
	LogicHigh   float64 // volts, high output rail

	// HighToLowThreshold is the input voltage that, crossed downward, takes
	// the inverter's input state from high to low (raising the output).
	HighToLowThreshold float64

	// LowToHighThreshold is the input voltage that, crossed upward, takes
	// the inverter's input state from low to high (dropping the output).
	LowToHighThreshold float64
}

// Validate rejects configurations the simulation cannot run with. It does not
// attempt to judge physical plausibility beyond that.
func (c Config) Validate() error {
	if c.Capacitance <= 0 {
		return fmt.Errorf("capacitance must be positive, got %g", c.Capacitance)
	}
	if c.Resistance == 0 {
		return fmt.Errorf("resistance must be non-zero")
	}
	if c.HighToLowThreshold >= c.LowToHighThreshold {
		return fmt.Errorf("no hysteresis gap: high-to-low transition voltage %g must be below low-to-high transition voltage %g",
			c.HighToLowThreshold, c.LowToHighThreshold)
	}
	return nil
}

// TimeConstant returns the RC time constant in seconds, the characteristic
// timescale of charge and discharge.
func (c Config) TimeConstant() float64 {
	return c.Resistance * c.Capacitance
}
