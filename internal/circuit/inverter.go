package circuit

import "fmt"

// Inverter models an inverting logic gate with a Schmitt trigger: the input
// voltage needed for a transition depends on the direction of input change,
// so inputs wandering inside the dead zone between the two thresholds never
// toggle the output. It is an ideal device with zero propagation delay,
// infinite input impedance and zero output impedance.
type Inverter struct {
	outputLow  float64 // volts, output in the low state
	outputHigh float64 // volts, output in the high state
	highToLow  float64 // input voltage taking the input state from high to low
	lowToHigh  float64 // input voltage taking the input state from low to high
	high       bool    // current output state
}

// NewInverter creates an inverter with the given rail voltages and transition
// thresholds, then applies the initial input voltage through the normal
// transition rule starting from the implicit low output state.
//
// The thresholds must leave a hysteresis gap, highToLow < lowToHigh. A zero
// or inverted gap would make the output either toggle every step or never
// toggle, so such configurations are rejected outright.
func NewInverter(outputLow, outputHigh, highToLow, lowToHigh, inputVoltage float64) (*Inverter, error) {
	if highToLow >= lowToHigh {
		return nil, fmt.Errorf("no hysteresis gap: high-to-low transition voltage %g must be below low-to-high transition voltage %g", highToLow, lowToHigh)
	}
	inv := &Inverter{
		outputLow:  outputLow,
		outputHigh: outputHigh,
		highToLow:  highToLow,
		lowToHigh:  lowToHigh,
	}
	inv.SetInputVoltage(inputVoltage)
	return inv, nil
}

// SetInputVoltage applies a new input voltage, possibly flipping the output.
// The output only changes when the input crosses the threshold for the
// direction opposite to the current resting state. There is no return value;
// callers detect transitions by comparing OutputVoltage before and after.
func (inv *Inverter) SetInputVoltage(v float64) {
	if !inv.high {
		if v <= inv.highToLow {
			// Input state is now low, so the output goes high.
			inv.high = true
		}
	} else if v >= inv.lowToHigh {
		// Input state is now high, so the output goes low.
		inv.high = false
	}
}

// OutputVoltage returns the output voltage: always exactly one of the two
// configured rails.
func (inv *Inverter) OutputVoltage() float64 {
	if inv.high {
		return inv.outputHigh
	}
	return inv.outputLow
}
