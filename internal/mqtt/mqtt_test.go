package mqtt

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/isopleth/relaxation/internal/monitor"
	"github.com/isopleth/relaxation/internal/sim"
)

func TestFormatTransition(t *testing.T) {
	ev := monitor.Event{High: true, Time: 0.25, Interval: 0.125, HasInterval: true}

	payload, err := FormatTransition(ev)
	if err != nil {
		t.Fatalf("FormatTransition: %v", err)
	}

	want := `{"transition":{"time":0.25,"state":"HIGH","interval":0.125}}`
	if string(payload) != want {
		t.Errorf("payload:\ngot  %s\nwant %s", payload, want)
	}
}

func TestFormatTransitionWithoutInterval(t *testing.T) {
	// The first transition of a run has no interval; the field is omitted
	// rather than sent as zero.
	ev := monitor.Event{High: false, Time: 0.5}

	payload, err := FormatTransition(ev)
	if err != nil {
		t.Fatalf("FormatTransition: %v", err)
	}

	want := `{"transition":{"time":0.5,"state":"LOW"}}`
	if string(payload) != want {
		t.Errorf("payload:\ngot  %s\nwant %s", payload, want)
	}
}

func TestFormatSummary(t *testing.T) {
	cfg := sim.Config{
		Resistance:         1e4,
		Capacitance:        2e-7,
		LogicLow:           0,
		LogicHigh:          5.0,
		HighToLowThreshold: 0.6,
		LowToHighThreshold: 2.5,
	}
	res := sim.Result{Period: 0.02, Frequency: 50}

	payload, err := FormatSummary(cfg, res)
	if err != nil {
		t.Fatalf("FormatSummary: %v", err)
	}

	want := `{"summary":{"resistance":10000,"capacitance":2e-7,"logic_low":0,"logic_high":5,` +
		`"high_to_low_transition":0.6,"low_to_high_transition":2.5,"period":0.02,"frequency":50}}`
	if string(payload) != want {
		t.Errorf("payload:\ngot  %s\nwant %s", payload, want)
	}
}

func TestFakePublisherRecordsTransitions(t *testing.T) {
	fake := NewFakePublisher()

	events := []monitor.Event{
		{High: true, Time: 0.1},
		{High: false, Time: 0.3, Interval: 0.2, HasInterval: true},
	}
	for _, ev := range events {
		if err := fake.PublishTransition(ev); err != nil {
			t.Fatalf("PublishTransition: %v", err)
		}
	}

	if len(fake.Transitions) != 2 {
		t.Fatalf("expected 2 recorded transitions, got %d", len(fake.Transitions))
	}
	if fake.Transitions[1] != events[1] {
		t.Errorf("second transition recorded as %+v", fake.Transitions[1])
	}
	if len(fake.TransitionPayloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(fake.TransitionPayloads))
	}

	var decoded TransitionPayload
	if err := json.Unmarshal(fake.TransitionPayloads[0], &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded.Transition.State != "HIGH" || decoded.Transition.Time != 0.1 {
		t.Errorf("decoded payload %+v", decoded.Transition)
	}
	if decoded.Transition.Interval != nil {
		t.Error("first transition payload should omit interval")
	}
}

func TestFakePublisherRecordsSummary(t *testing.T) {
	fake := NewFakePublisher()
	cfg := sim.Config{Resistance: 1e3, Capacitance: 1e-7, LogicHigh: 5, HighToLowThreshold: 0.6, LowToHighThreshold: 2.5}
	res := sim.Result{Period: 0.0002, Frequency: 5000}

	if err := fake.PublishSummary(cfg, res); err != nil {
		t.Fatalf("PublishSummary: %v", err)
	}

	if len(fake.Summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(fake.Summaries))
	}
	if fake.Summaries[0].Config != cfg || fake.Summaries[0].Result != res {
		t.Errorf("recorded summary %+v", fake.Summaries[0])
	}

	var decoded SummaryPayload
	if err := json.Unmarshal(fake.SummaryPayloads[0], &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded.Summary.Frequency != 5000 {
		t.Errorf("decoded frequency %g, want 5000", decoded.Summary.Frequency)
	}
}

func TestFakePublisherErrors(t *testing.T) {
	fake := NewFakePublisher()
	fake.PublishError = errors.New("transition failed")
	fake.PublishSummaryError = errors.New("summary failed")

	if err := fake.PublishTransition(monitor.Event{}); err == nil {
		t.Error("expected PublishTransition error")
	}
	if err := fake.PublishSummary(sim.Config{}, sim.Result{}); err == nil {
		t.Error("expected PublishSummary error")
	}
	if len(fake.Transitions) != 0 || len(fake.Summaries) != 0 {
		t.Error("events recorded despite configured errors")
	}
}

func TestFakePublisherCloseAndReset(t *testing.T) {
	fake := NewFakePublisher()
	if err := fake.PublishTransition(monitor.Event{High: true, Time: 1}); err != nil {
		t.Fatalf("PublishTransition: %v", err)
	}
	if err := fake.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !fake.Closed {
		t.Error("Closed not set")
	}

	fake.Reset()
	if len(fake.Transitions) != 0 || len(fake.TransitionPayloads) != 0 || fake.Closed {
		t.Error("Reset did not clear recorded state")
	}
}
