// Package scenario describes scripted steering runs and ships the built-in
// presets.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mverhelle/folio/internal/control"
	"github.com/mverhelle/folio/internal/metrics"
	"github.com/mverhelle/folio/internal/sim"
	"github.com/mverhelle/folio/internal/steer"
)

//go:embed presets.yaml
var presetsYAML []byte

var (
	ErrUnknown = errors.New("scenario: unknown scenario")
	ErrInvalid = errors.New("scenario: invalid scenario")
)

// Start overrides the initial pose. Heading is in degrees.
type Start struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
}

type Scenario struct {
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description,omitempty"`
	Dt             float64           `yaml:"dt"`
	Duration       float64           `yaml:"duration"`
	StopWhenIdle   bool              `yaml:"stop_when_idle,omitempty"`
	Start          *Start            `yaml:"start,omitempty"`
	Segments       []control.Segment `yaml:"segments,omitempty"`
	Waypoints      []control.Point   `yaml:"waypoints,omitempty"`
	WaypointRadius float64           `yaml:"waypoint_radius,omitempty"`
}

func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name: %w", ErrInvalid)
	}
	if !(s.Dt > 0) || !(s.Duration > 0) {
		return fmt.Errorf("%s: dt and duration must be positive: %w", s.Name, ErrInvalid)
	}
	if len(s.Segments) > 0 && len(s.Waypoints) > 0 {
		return fmt.Errorf("%s: segments and waypoints are exclusive: %w", s.Name, ErrInvalid)
	}
	for _, seg := range s.Segments {
		if err := seg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	return nil
}

// InitialState returns the start pose, the world center facing +x by default.
func (s Scenario) InitialState(p steer.Params) steer.State {
	st := steer.NewState(p)
	if s.Start != nil {
		st.Position.X = s.Start.X
		st.Position.Y = s.Start.Y
		st.Rotation = steer.WrapAngle(steer.Radians(s.Start.Heading))
	}
	return st
}

// Source builds a fresh input source for one run.
func (s Scenario) Source() sim.Source {
	switch {
	case len(s.Waypoints) > 0:
		r := s.WaypointRadius
		if r <= 0 {
			r = 40
		}
		return control.NewAutopilot(s.Waypoints, r)
	case len(s.Segments) > 0:
		return control.NewScript(s.Segments)
	}
	return control.NewNone()
}

func (s Scenario) SimConfig() sim.Config {
	return sim.Config{
		Dt:            s.Dt,
		Duration:      s.Duration,
		ValidateState: true,
		StopWhenIdle:  s.StopWhenIdle,
	}
}

// Job packages the scenario for sim.RunBatch.
func (s Scenario) Job(p steer.Params) sim.Job {
	return sim.Job{
		Name:    s.Name,
		Params:  p,
		Start:   s.InitialState(p),
		Source:  s.Source(),
		Config:  s.SimConfig(),
		Metrics: DefaultMetrics,
	}
}

// Progress summarizes how far src got through its script.
func Progress(src sim.Source) string {
	switch s := src.(type) {
	case *control.Autopilot:
		return fmt.Sprintf("%d/%d waypoints", s.Reached(), len(s.Waypoints))
	case *control.Script:
		return fmt.Sprintf("script %.1fs", s.End())
	}
	return "-"
}

func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewMaxSpeed(),
		metrics.NewDistance(),
		metrics.NewPeakLateral(),
		metrics.NewArrivalTime(),
	}
}

// Presets returns the built-in scenarios sorted by name.
func Presets() []Scenario {
	var list []Scenario
	if err := yaml.Unmarshal(presetsYAML, &list); err != nil {
		panic(fmt.Sprintf("scenario: parsing embedded presets: %v", err))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Get returns a built-in scenario by name.
func Get(name string) (Scenario, error) {
	for _, s := range Presets() {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%q: %w", name, ErrUnknown)
}

func Names() []string {
	presets := Presets()
	names := make([]string, len(presets))
	for i, s := range presets {
		names[i] = s.Name
	}
	return names
}

// Load reads a single scenario from a YAML file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Resolve treats arg as a preset name, falling back to a file path.
func Resolve(arg string) (Scenario, error) {
	if s, err := Get(arg); err == nil {
		return s, nil
	}
	if _, err := os.Stat(arg); err != nil {
		return Scenario{}, fmt.Errorf("%q: %w", arg, ErrUnknown)
	}
	return Load(arg)
}
