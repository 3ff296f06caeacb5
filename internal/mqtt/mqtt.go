// Package mqtt publishes simulation events to an MQTT broker, with an
// abstraction for testing. Publishing is optional and best-effort: a failed
// publish must never abort the simulation.
package mqtt

import (
	"encoding/json"

	"github.com/isopleth/relaxation/internal/monitor"
	"github.com/isopleth/relaxation/internal/sim"
)

// Topic is the MQTT topic for inverter output transitions.
const Topic = "lab/relaxation/transitions"

// TopicSummary is the MQTT topic for the end-of-run summary.
const TopicSummary = "lab/relaxation/summary"

// Publisher publishes simulation events.
type Publisher interface {
	// PublishTransition sends one inverter output transition to the broker.
	// Returns error if publishing fails (callers log and carry on).
	PublishTransition(ev monitor.Event) error

	// PublishSummary sends the end-of-run parameters and derived frequency.
	PublishSummary(cfg sim.Config, res sim.Result) error

	// Close disconnects from the broker.
	Close() error
}

// TransitionPayload is the JSON shape of a transition message.
type TransitionPayload struct {
	Transition TransitionInner `json:"transition"`
}

// TransitionInner carries the transition details.
type TransitionInner struct {
	Time     float64  `json:"time"`               // simulated time, seconds
	State    string   `json:"state"`              // "HIGH" or "LOW"
	Interval *float64 `json:"interval,omitempty"` // seconds since previous transition
}

// FormatTransition creates the JSON payload for a transition event.
func FormatTransition(ev monitor.Event) ([]byte, error) {
	inner := TransitionInner{
		Time:  ev.Time,
		State: stateString(ev.High),
	}
	if ev.HasInterval {
		interval := ev.Interval
		inner.Interval = &interval
	}
	return json.Marshal(TransitionPayload{Transition: inner})
}

func stateString(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}

// SummaryPayload is the JSON shape of the end-of-run summary message.
type SummaryPayload struct {
	Summary SummaryInner `json:"summary"`
}

// SummaryInner echoes the circuit parameters and carries the derived results.
type SummaryInner struct {
	Resistance  float64 `json:"resistance"`
	Capacitance float64 `json:"capacitance"`
	LogicLow    float64 `json:"logic_low"`
	LogicHigh   float64 `json:"logic_high"`
	HighToLow   float64 `json:"high_to_low_transition"`
	LowToHigh   float64 `json:"low_to_high_transition"`
	Period      float64 `json:"period"`
	Frequency   float64 `json:"frequency"`
}

// FormatSummary creates the JSON payload for the end-of-run summary.
func FormatSummary(cfg sim.Config, res sim.Result) ([]byte, error) {
	payload := SummaryPayload{
		Summary: SummaryInner{
			Resistance:  cfg.Resistance,
			Capacitance: cfg.Capacitance,
			LogicLow:    cfg.LogicLow,
			LogicHigh:   cfg.LogicHigh,
			HighToLow:   cfg.HighToLowThreshold,
			LowToHigh:   cfg.LowToHighThreshold,
			Period:      res.Period,
			Frequency:   res.Frequency,
		},
	}
	return json.Marshal(payload)
}
