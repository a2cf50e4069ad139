package scenario

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/sim"
	"github.com/mverhelle/folio/internal/steer"
)

func TestPresetsValidate(t *testing.T) {
	want := []string{"brake-test", "click-right", "coast-turn", "figure-eight", "wall-run"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("preset names mismatch (-want +got):\n%s", diff)
	}
	for _, s := range Presets() {
		if err := s.Validate(); err != nil {
			t.Errorf("%s: %v", s.Name, err)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
	if _, err := Resolve("nope"); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown from Resolve, got %v", err)
	}
}

func run(t *testing.T, name string) *sim.Result {
	t.Helper()
	s, err := Get(name)
	if err != nil {
		t.Fatal(err)
	}
	p := steer.DefaultParams()
	sm := sim.New(p, s.Source())
	for _, m := range DefaultMetrics() {
		sm.AddMetric(m)
	}
	res, err := sm.Run(context.Background(), s.InitialState(p), s.SimConfig())
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func TestClickRight(t *testing.T) {
	res := run(t, "click-right")
	final := res.Final()

	if final.Target.Active || final.Velocity != (r2.Vec{}) {
		t.Errorf("expected stopped at target, got %+v", final)
	}
	if math.Abs(final.Rotation) > 1e-9 {
		t.Errorf("expected heading 0, got %f", final.Rotation)
	}
	if res.Metrics["arrival_time"] <= 0 {
		t.Errorf("expected an arrival time, got %v", res.Metrics["arrival_time"])
	}
}

func TestWallRun(t *testing.T) {
	p := steer.DefaultParams()
	res := run(t, "wall-run")
	for _, smp := range res.Samples {
		if smp.State.Position.X > p.WorldSize-p.BodySize/2 {
			t.Fatalf("left the world at t=%f: %+v", smp.T, smp.State.Position)
		}
	}
	if got := res.Final().Position.X; got != p.WorldSize-p.BodySize/2 {
		t.Errorf("expected to rest against the wall, x=%f", got)
	}
}

func TestBrakeTestSlowsDown(t *testing.T) {
	res := run(t, "brake-test")
	var atRelease, later float64
	for _, smp := range res.Samples {
		if smp.T <= 3 {
			atRelease = smp.State.Speed()
		}
		later = smp.State.Speed()
	}
	if later >= atRelease {
		t.Errorf("expected braking to slow the entity: %f -> %f", atRelease, later)
	}
	if res.Metrics["max_speed"] > steer.DefaultMaxSpeed+1e-9 {
		t.Errorf("max speed exceeded: %f", res.Metrics["max_speed"])
	}
}

func TestFigureEightCompletes(t *testing.T) {
	s, _ := Get("figure-eight")
	res := run(t, "figure-eight")

	next := 0
	for _, smp := range res.Samples {
		if next == len(s.Waypoints) {
			break
		}
		if r2.Norm(r2.Sub(smp.State.Position, s.Waypoints[next].Vec())) <= s.WaypointRadius {
			next++
		}
	}
	if next != len(s.Waypoints) {
		t.Errorf("passed %d of %d waypoints", next, len(s.Waypoints))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	body := []byte(`
name: custom
dt: 0.05
duration: 2
start: {x: 100, y: 200, heading: 90}
segments:
  - at: 0
    until: 1
    keys: [forward, left]
`)
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	st := s.InitialState(steer.DefaultParams())
	if st.Position != (r2.Vec{X: 100, Y: 200}) || math.Abs(st.Rotation-math.Pi/2) > 1e-12 {
		t.Errorf("unexpected start state %+v", st)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("name: bad\ndt: 0.1\nduration: 1\nsegments:\n  - at: 0\n    until: 1\n    keys: [jump]\n"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected unknown key to be rejected")
	}
}

func TestBatchAllPresets(t *testing.T) {
	p := steer.DefaultParams()
	presets := Presets()
	jobs := make([]sim.Job, len(presets))
	for i, s := range presets {
		jobs[i] = s.Job(p)
	}
	results, err := sim.RunBatch(context.Background(), jobs, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r.StepsTaken == 0 {
			t.Errorf("%s: no steps", presets[i].Name)
		}
		if len(r.Metrics) != 4 {
			t.Errorf("%s: expected 4 metrics, got %d", presets[i].Name, len(r.Metrics))
		}
	}
}

func TestProgress(t *testing.T) {
	brake, _ := Get("brake-test")
	if got := Progress(brake.Source()); got != "script 3.5s" {
		t.Errorf("brake-test: got %q", got)
	}
	if got := Progress(Scenario{}.Source()); got != "-" {
		t.Errorf("empty scenario: got %q", got)
	}

	fig, _ := Get("figure-eight")
	src := fig.Source()
	if got := Progress(src); got != "0/8 waypoints" {
		t.Errorf("before the run: got %q", got)
	}
	p := steer.DefaultParams()
	if _, err := sim.New(p, src).Run(context.Background(), fig.InitialState(p), fig.SimConfig()); err != nil {
		t.Fatal(err)
	}
	if got := Progress(src); got != "8/8 waypoints" {
		t.Errorf("after the run: got %q", got)
	}
}
