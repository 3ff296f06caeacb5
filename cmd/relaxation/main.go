// Command relaxation simulates a relaxation oscillator built from a resistor,
// a capacitor and a Schmitt-trigger inverter. It writes a per-timestep CSV
// voltage trace, a key/value description of the run including the derived
// oscillation frequency, and optionally a waveform PNG and live MQTT events.
//
// Usage:
//
//	relaxation [flags] [resistance [capacitance [lowV [highV [highToLowV [lowToHighV]]]]]]
//
// All six positional parameters are optional; omitted ones take the
// documented defaults (1 kΩ, 100 nF, 0 V, 5 V, 0.6 V, 2.5 V).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/isopleth/relaxation/internal/monitor"
	"github.com/isopleth/relaxation/internal/mqtt"
	"github.com/isopleth/relaxation/internal/output"
	"github.com/isopleth/relaxation/internal/sim"
	"github.com/isopleth/relaxation/internal/waveform"
)

func main() {
	csvPath := flag.String("csv", "output.csv", "Trace file (CSV, one record per timestep)")
	descrPath := flag.String("descr", "description.dat", "Description file (KEY = value summary, empty to disable)")
	plotPath := flag.String("plot", "", "Waveform PNG path (empty to disable)")
	broker := flag.String("broker", "", "MQTT broker address for live events (empty to disable)")
	flag.Parse()

	cfg, err := parseArgs(flag.Args())
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *csvPath, *descrPath, *plotPath, *broker); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// fields lists the positional parameters in the order the tool has always
// accepted them, with their defaults.
var fields = []struct {
	name string
	def  float64
	set  func(*sim.Config, float64)
}{
	{"resistance", 1e3, func(c *sim.Config, v float64) { c.Resistance = v }},
	{"capacitance", 1e-7, func(c *sim.Config, v float64) { c.Capacitance = v }},
	{"low voltage", 0, func(c *sim.Config, v float64) { c.LogicLow = v }},
	{"high voltage", 5.0, func(c *sim.Config, v float64) { c.LogicHigh = v }},
	{"high->low transition voltage", 0.6, func(c *sim.Config, v float64) { c.HighToLowThreshold = v }},
	{"low->high transition voltage", 2.5, func(c *sim.Config, v float64) { c.LowToHighThreshold = v }},
}

// parseArgs converts the positional arguments into a Config, applying the
// documented default for each omitted field and logging a notice for it.
// A non-numeric argument is a configuration error naming the field.
func parseArgs(args []string) (sim.Config, error) {
	var cfg sim.Config
	if len(args) > len(fields) {
		return cfg, fmt.Errorf("too many arguments: expected at most %d, got %d", len(fields), len(args))
	}
	for i, f := range fields {
		if i < len(args) {
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return cfg, fmt.Errorf("unable to convert %q to numeric %s", args[i], f.name)
			}
			f.set(&cfg, v)
		} else {
			log.Printf("using default %s", f.name)
			f.set(&cfg, f.def)
		}
	}
	return cfg, nil
}

func run(cfg sim.Config, csvPath, descrPath, plotPath, broker string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Printf("R = %g ohms", cfg.Resistance)
	log.Printf("C = %g farads", cfg.Capacitance)
	log.Printf("logic high = %g volts", cfg.LogicHigh)
	log.Printf("logic low = %g volts", cfg.LogicLow)
	log.Printf("high to low transition = %g volts", cfg.HighToLowThreshold)
	log.Printf("low to high transition = %g volts", cfg.LowToHighThreshold)
	log.Printf("approx time constant is %g seconds", cfg.TimeConstant())

	// The description sink is degraded-mode: if it cannot be opened the
	// simulation still runs, it just leaves no summary file behind.
	var descr *os.File
	if descrPath != "" {
		f, err := os.Create(descrPath)
		if err != nil {
			log.Printf("unable to open %s for writing: %v", descrPath, err)
		} else {
			descr = f
			defer descr.Close()
		}
	}

	// The trace sink is required: a run without its trace is not salvageable.
	csv, err := output.CreateCSVTrace(csvPath)
	if err != nil {
		return err
	}

	trace := sim.TraceWriter(csv)
	var mem *output.MemoryTrace
	if plotPath != "" {
		mem = output.NewMemoryTrace()
		trace = sim.MultiTrace(csv, mem)
	}

	var publisher mqtt.Publisher
	if broker != "" {
		p, err := mqtt.NewRealPublisher(broker)
		if err != nil {
			csv.Close()
			return fmt.Errorf("connect to %s: %w", broker, err)
		}
		publisher = p
		defer publisher.Close()
	}

	onEvent := func(ev monitor.Event) {
		if ev.HasInterval {
			log.Printf("signal %s at %g, interval since last state change = %g seconds",
				stateString(ev.High), ev.Time, ev.Interval)
		} else {
			log.Printf("signal %s at %g", stateString(ev.High), ev.Time)
		}
		if publisher != nil {
			if err := publisher.PublishTransition(ev); err != nil {
				log.Printf("publish transition: %v", err)
			}
		}
	}

	res, runErr := sim.Run(cfg, trace, onEvent)
	if cerr := csv.Close(); runErr == nil && cerr != nil {
		runErr = fmt.Errorf("close trace: %w", cerr)
	}
	if runErr != nil {
		return runErr
	}

	log.Printf("ran for %g seconds in %d steps of %g seconds",
		float64(res.Steps)*res.StepSize, res.Steps, res.StepSize)
	log.Printf("frequency is %g Hz", res.Frequency)

	if descr != nil {
		if err := output.WriteDescription(descr, csvPath, cfg, res.Frequency); err != nil {
			log.Printf("%v", err)
		}
	}

	if plotPath != "" {
		if err := waveform.Render(mem, cfg, plotPath); err != nil {
			return err
		}
		log.Printf("wrote waveform plot to %s", plotPath)
	}

	if publisher != nil {
		if err := publisher.PublishSummary(cfg, res); err != nil {
			log.Printf("publish summary: %v", err)
		}
	}

	return nil
}

func stateString(high bool) string {
	if high {
		return "high"
	}
	return "low"
}
