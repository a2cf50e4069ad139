package control

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/steer"
)

var (
	ErrUnknownKey     = errors.New("control: unknown key")
	ErrInvalidSegment = errors.New("control: invalid segment")
)

type Key string

const (
	KeyForward Key = "forward"
	KeyReverse Key = "reverse"
	KeyLeft    Key = "left"
	KeyRight   Key = "right"
)

// Point is a world position in scenario files.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Segment holds Keys during [At, Until) and, if Click is set, clicks once at
// At. A click-only segment may leave Until zero.
type Segment struct {
	At    float64 `yaml:"at" json:"at"`
	Until float64 `yaml:"until,omitempty" json:"until,omitempty"`
	Keys  []Key   `yaml:"keys,omitempty" json:"keys,omitempty"`
	Click *Point  `yaml:"click,omitempty" json:"click,omitempty"`
}

func (s Segment) Validate() error {
	if s.At < 0 || math.IsNaN(s.At) {
		return fmt.Errorf("at=%v: %w", s.At, ErrInvalidSegment)
	}
	if len(s.Keys) > 0 && s.Until <= s.At {
		return fmt.Errorf("keys need until > at (%v <= %v): %w", s.Until, s.At, ErrInvalidSegment)
	}
	if len(s.Keys) == 0 && s.Click == nil {
		return fmt.Errorf("segment at %v does nothing: %w", s.At, ErrInvalidSegment)
	}
	for _, k := range s.Keys {
		switch k {
		case KeyForward, KeyReverse, KeyLeft, KeyRight:
		default:
			return fmt.Errorf("%q: %w", k, ErrUnknownKey)
		}
	}
	return nil
}

// Script replays segments against simulation time.
type Script struct {
	segments []Segment
	fired    []bool
}

// NewScript copies segs and orders them by start time.
func NewScript(segs []Segment) *Script {
	s := &Script{segments: append([]Segment(nil), segs...)}
	sort.SliceStable(s.segments, func(i, j int) bool { return s.segments[i].At < s.segments[j].At })
	s.fired = make([]bool, len(s.segments))
	return s
}

func (s *Script) Input(st steer.State, t float64) steer.Input {
	var in steer.Input
	for i, seg := range s.segments {
		if seg.At > t {
			break
		}
		if seg.Click != nil && !s.fired[i] {
			s.fired[i] = true
			p := seg.Click.Vec()
			in.Click = &p
		}
		if t < seg.Until {
			for _, k := range seg.Keys {
				switch k {
				case KeyForward:
					in.Forward = true
				case KeyReverse:
					in.Reverse = true
				case KeyLeft:
					in.Left = true
				case KeyRight:
					in.Right = true
				}
			}
		}
	}
	return in
}

// Done reports whether every segment has run out at time t.
func (s *Script) Done(t float64) bool {
	for i, seg := range s.segments {
		if seg.Click != nil && !s.fired[i] {
			return false
		}
		if t < seg.Until {
			return false
		}
	}
	return true
}

// End returns the time the last segment finishes.
func (s *Script) End() float64 {
	end := 0.0
	for _, seg := range s.segments {
		end = math.Max(end, math.Max(seg.At, seg.Until))
	}
	return end
}

// Reset rearms every click.
func (s *Script) Reset() {
	for i := range s.fired {
		s.fired[i] = false
	}
}
