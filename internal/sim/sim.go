// Package sim runs the fixed-step relaxation oscillator simulation: a
// resistor feeding the inverter output back into a capacitor on the
// inverter's input, integrated with explicit (forward) Euler steps.
package sim

import (
	"fmt"
	"math"

	"github.com/isopleth/relaxation/internal/circuit"
	"github.com/isopleth/relaxation/internal/monitor"
)

// stepsPerTimeConstant fixes the step size at timeConstant/1e4. Forward
// Euler's local error scales with the square of the step size; this keeps it
// small relative to the RC timescale without adaptive control.
const stepsPerTimeConstant = 1e4

// timeConstants is the simulated duration in RC time constants, enough for
// several full oscillation cycles at any component values.
const timeConstants = 10

// Result holds the derived quantities of a completed run.
type Result struct {
	TimeConstant float64 // R*C, seconds
	StepSize     float64 // seconds per step
	Steps        int     // number of steps executed
	Transitions  int     // inverter output transitions observed
	Period       float64 // oscillation period, seconds
	Frequency    float64 // oscillation frequency, Hz
}

// Run simulates the oscillator described by cfg, writing one record per step
// to trace. onEvent, if non-nil, is called for every inverter output
// transition, in step order. The run is single-threaded and deterministic.
//
// Run fails on an invalid configuration, on a trace write error, or when the
// run ends before both phase intervals were observed (the circuit did not
// oscillate enough to measure a period).
func Run(cfg Config, trace TraceWriter, onEvent func(monitor.Event)) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("config: %w", err)
	}

	// The capacitor starts discharged, so the inverter's initial input is 0.
	inverter, err := circuit.NewInverter(cfg.LogicLow, cfg.LogicHigh,
		cfg.HighToLowThreshold, cfg.LowToHighThreshold, 0)
	if err != nil {
		return Result{}, fmt.Errorf("config: %w", err)
	}
	capacitor := circuit.NewCapacitor(cfg.Capacitance)
	resistor := circuit.NewResistor(cfg.Resistance)
	mon := monitor.New()

	timeConstant := cfg.TimeConstant()
	dt := timeConstant / stepsPerTimeConstant
	steps := int(math.Round(timeConstants * timeConstant / dt))

	var lastOutput float64
	haveLast := false
	for step := 0; step < steps; step++ {
		t := float64(step) * dt

		// Voltages from before this step's update.
		vCap := capacitor.Voltage()
		vOut := inverter.OutputVoltage()

		// Linear approximation of the charge flowing through the
		// resistor into the capacitor during this step.
		current := resistor.Current(vOut, vCap)
		capacitor.AddCharge(current * dt)

		inverter.SetInputVoltage(capacitor.Voltage())
		newOut := inverter.OutputVoltage()

		if err := trace.WriteStep(t, capacitor.Voltage(), newOut); err != nil {
			return Result{}, fmt.Errorf("write trace: %w", err)
		}

		// Edge detection: the first step only establishes the baseline.
		if !haveLast {
			lastOutput = newOut
			haveLast = true
		} else if newOut != lastOutput {
			lastOutput = newOut
			ev := mon.Record(newOut == cfg.LogicHigh, t)
			if onEvent != nil {
				onEvent(ev)
			}
		}
	}

	period, err := mon.Period()
	if err != nil {
		return Result{}, fmt.Errorf("derive period: %w", err)
	}

	return Result{
		TimeConstant: timeConstant,
		StepSize:     dt,
		Steps:        steps,
		Transitions:  mon.Transitions(),
		Period:       period,
		Frequency:    1 / period,
	}, nil
}
