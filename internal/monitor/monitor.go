// Package monitor derives the oscillation period from a stream of inverter
// output transitions. Like the circuit package it is pure logic: edge
// detection is the caller's responsibility (Record must only be called when
// the observed output actually changed), and logging/publishing of the
// returned events happens at the edges of the program.
package monitor

import "errors"

// ErrInsufficientOscillation is returned by Period when fewer than three
// transitions were recorded during the run, so at least one of the two phase
// intervals is unknown.
var ErrInsufficientOscillation = errors.New("monitor: insufficient oscillation observed")

// Event describes a single recorded transition.
type Event struct {
	// High is the new output state.
	High bool

	// Time is the simulated time of the transition, in seconds.
	Time float64

	// Interval is the time since the previous transition, in seconds.
	// Only meaningful when HasInterval is true.
	Interval float64

	// HasInterval is false for the first transition of a run, which has no
	// predecessor to measure against.
	HasInterval bool
}

// Monitor measures the steady-state oscillation period as the sum of the
// first observed high-phase and low-phase durations. Each of the two interval
// slots is latched exactly once, on first occurrence, and never overwritten.
// This assumes the oscillator settles within its first cycles; if it is not
// yet periodic by the first two full intervals the derived period will be
// off, which is an accepted approximation.
//
// All state is owned by the instance; create one Monitor per simulation run.
type Monitor struct {
	prevTime float64
	hasPrev  bool

	highInterval float64 // duration of the first observed high output phase
	hasHigh      bool
	lowInterval  float64 // duration of the first observed low output phase
	hasLow       bool

	transitions int
}

// New creates an empty Monitor.
func New() *Monitor {
	return &Monitor{}
}

// Record notes that the inverter output transitioned to the given state at
// the given simulated time, and returns the corresponding event. The interval
// that ended at a transition to high was spent in the low output state, and
// vice versa.
func (m *Monitor) Record(high bool, t float64) Event {
	ev := Event{High: high, Time: t}
	if m.hasPrev {
		ev.Interval = t - m.prevTime
		ev.HasInterval = true
		if high {
			if !m.hasLow {
				m.lowInterval = ev.Interval
				m.hasLow = true
			}
		} else if !m.hasHigh {
			m.highInterval = ev.Interval
			m.hasHigh = true
		}
	}
	m.prevTime = t
	m.hasPrev = true
	m.transitions++
	return ev
}

// Transitions returns the number of transitions recorded so far.
func (m *Monitor) Transitions() int {
	return m.transitions
}

// Period returns the oscillation period in seconds. It returns
// ErrInsufficientOscillation if either phase interval was never observed.
func (m *Monitor) Period() (float64, error) {
	if !m.hasHigh || !m.hasLow {
		return 0, ErrInsufficientOscillation
	}
	return m.highInterval + m.lowInterval, nil
}
