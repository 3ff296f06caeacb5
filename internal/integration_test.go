// End-to-end check of the simulation pipeline: circuit, monitor, trace sinks
// and event publishing wired together the way the command does it.
package internal

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/isopleth/relaxation/internal/monitor"
	"github.com/isopleth/relaxation/internal/mqtt"
	"github.com/isopleth/relaxation/internal/output"
	"github.com/isopleth/relaxation/internal/sim"
)

func TestOscillatorEndToEnd(t *testing.T) {
	cfg := sim.Config{
		Resistance:         1e4,
		Capacitance:        1e-6,
		LogicLow:           0,
		LogicHigh:          5.0,
		HighToLowThreshold: 0.6,
		LowToHighThreshold: 2.5,
	}

	trace := output.NewMemoryTrace()
	publisher := mqtt.NewFakePublisher()

	res, err := sim.Run(cfg, trace, func(ev monitor.Event) {
		if err := publisher.PublishTransition(ev); err != nil {
			t.Errorf("publish transition: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := publisher.PublishSummary(cfg, res); err != nil {
		t.Fatalf("publish summary: %v", err)
	}

	if trace.Len() != res.Steps {
		t.Errorf("trace has %d records for %d steps", trace.Len(), res.Steps)
	}

	// The trace timeline is strictly increasing from zero.
	if trace.Times[0] != 0 {
		t.Errorf("first record at t=%g, want 0", trace.Times[0])
	}
	for i := 1; i < trace.Len(); i++ {
		if trace.Times[i] <= trace.Times[i-1] {
			t.Fatalf("time went backwards at record %d: %g after %g",
				i, trace.Times[i], trace.Times[i-1])
		}
	}

	// The inverter output only ever sits on one of the two rails.
	for i, v := range trace.OutVoltages {
		if v != cfg.LogicLow && v != cfg.LogicHigh {
			t.Fatalf("record %d: output %g is not a rail voltage", i, v)
		}
	}

	// The capacitor voltage stays inside the rails once charging begins.
	for i, v := range trace.CapVoltages {
		if v < cfg.LogicLow-1e-9 || v > cfg.LogicHigh+1e-9 {
			t.Fatalf("record %d: capacitor voltage %g outside the rails", i, v)
		}
	}

	// Exponential charge/discharge between the thresholds gives the
	// steady-state period in closed form.
	rc := cfg.TimeConstant()
	analytic := rc * (math.Log((cfg.LogicHigh-cfg.HighToLowThreshold)/(cfg.LogicHigh-cfg.LowToHighThreshold)) +
		math.Log(cfg.LowToHighThreshold/cfg.HighToLowThreshold))
	wantFreq := 1 / analytic
	if rel := math.Abs(res.Frequency-wantFreq) / wantFreq; rel > 0.05 {
		t.Errorf("frequency %g Hz differs from analytic %g Hz by %.2f%%",
			res.Frequency, wantFreq, rel*100)
	}

	// Every transition the simulation observed was published.
	if len(publisher.Transitions) != res.Transitions {
		t.Errorf("published %d transitions, result reports %d",
			len(publisher.Transitions), res.Transitions)
	}
	for i, payload := range publisher.TransitionPayloads {
		var decoded mqtt.TransitionPayload
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("transition payload %d: %v", i, err)
		}
		if decoded.Transition.State != "HIGH" && decoded.Transition.State != "LOW" {
			t.Errorf("transition payload %d: state %q", i, decoded.Transition.State)
		}
	}

	if len(publisher.SummaryPayloads) != 1 {
		t.Fatalf("expected 1 summary payload, got %d", len(publisher.SummaryPayloads))
	}
	var summary mqtt.SummaryPayload
	if err := json.Unmarshal(publisher.SummaryPayloads[0], &summary); err != nil {
		t.Fatalf("summary payload: %v", err)
	}
	if summary.Summary.Frequency != res.Frequency {
		t.Errorf("summary frequency %g, result %g", summary.Summary.Frequency, res.Frequency)
	}
	if summary.Summary.Resistance != cfg.Resistance {
		t.Errorf("summary resistance %g, config %g", summary.Summary.Resistance, cfg.Resistance)
	}
}
