package mqtt

import (
	"github.com/isopleth/relaxation/internal/monitor"
	"github.com/isopleth/relaxation/internal/sim"
)

// SummaryRecord pairs the config and result of a published summary.
type SummaryRecord struct {
	Config sim.Config
	Result sim.Result
}

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// Transitions contains all transition events that were published.
	Transitions []monitor.Event

	// TransitionPayloads contains the JSON payloads for transitions.
	TransitionPayloads [][]byte

	// Summaries contains all summaries that were published.
	Summaries []SummaryRecord

	// SummaryPayloads contains the JSON payloads for summaries.
	SummaryPayloads [][]byte

	// PublishError, if set, will be returned by PublishTransition.
	PublishError error

	// PublishSummaryError, if set, will be returned by PublishSummary.
	PublishSummaryError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishTransition records the transition event.
func (f *FakePublisher) PublishTransition(ev monitor.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Transitions = append(f.Transitions, ev)

	payload, err := FormatTransition(ev)
	if err != nil {
		return err
	}
	f.TransitionPayloads = append(f.TransitionPayloads, payload)

	return nil
}

// PublishSummary records the summary.
func (f *FakePublisher) PublishSummary(cfg sim.Config, res sim.Result) error {
	if f.PublishSummaryError != nil {
		return f.PublishSummaryError
	}

	f.Summaries = append(f.Summaries, SummaryRecord{Config: cfg, Result: res})

	payload, err := FormatSummary(cfg, res)
	if err != nil {
		return err
	}
	f.SummaryPayloads = append(f.SummaryPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.Transitions = nil
	f.TransitionPayloads = nil
	f.Summaries = nil
	f.SummaryPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSummaryError = nil
}
