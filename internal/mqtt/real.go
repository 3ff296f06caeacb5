package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/isopleth/relaxation/internal/monitor"
	"github.com/isopleth/relaxation/internal/sim"
)

// RealPublisher publishes to an actual MQTT broker.
type RealPublisher struct {
	client paho.Client
}

// NewRealPublisher creates a publisher connected to the given broker.
func NewRealPublisher(broker string) (*RealPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("relaxation-sim")

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &RealPublisher{client: client}, nil
}

// PublishTransition sends a transition event to the broker.
func (p *RealPublisher) PublishTransition(ev monitor.Event) error {
	payload, err := FormatTransition(ev)
	if err != nil {
		return fmt.Errorf("format transition: %w", err)
	}

	// QoS 0 (at-most-once): transitions are high-volume and individually
	// expendable.
	token := p.client.Publish(Topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// PublishSummary sends the end-of-run summary to the broker.
func (p *RealPublisher) PublishSummary(cfg sim.Config, res sim.Result) error {
	payload, err := FormatSummary(cfg, res)
	if err != nil {
		return fmt.Errorf("format summary: %w", err)
	}

	// QoS 1 (at-least-once) and retained: the summary is the one message
	// late subscribers should still see.
	token := p.client.Publish(TopicSummary, 1, true, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish summary timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish summary: %w", err)
	}

	return nil
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
