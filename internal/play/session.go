// Package play hosts the interactive steering demo. A Session is owned by
// whichever view mounts it and must be closed when that view goes away.
package play

import (
	"errors"
	"fmt"
	"io"

	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/camera"
	"github.com/mverhelle/folio/internal/config"
	"github.com/mverhelle/folio/internal/steer"
)

var ErrConfig = errors.New("play: invalid session config")

// Recorder receives every tick. Recorders that implement io.Closer are
// closed with the session.
type Recorder interface {
	Record(t float64, s steer.State, in steer.Input)
}

type Config struct {
	Params    steer.Params
	ViewportW float64
	ViewportH float64
	Zoom      float64
	Lerp      float64
	Deadzone  float64
	MaxDt     float64 // seconds; longer frames are clamped
}

// ConfigFrom derives a session config from application settings.
func ConfigFrom(c *config.Config) Config {
	return Config{
		Params:    c.SteerParams(),
		ViewportW: float64(c.Screen.Width),
		ViewportH: float64(c.Screen.Height),
		Zoom:      1,
		Lerp:      c.Camera.Lerp,
		Deadzone:  c.Camera.Deadzone,
		MaxDt:     c.Play.MaxDt.Seconds(),
	}
}

func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.ViewportW <= 0 || c.ViewportH <= 0 || c.Zoom <= 0 || c.MaxDt <= 0 {
		return fmt.Errorf("viewport %vx%v zoom %v max_dt %v: %w", c.ViewportW, c.ViewportH, c.Zoom, c.MaxDt, ErrConfig)
	}
	return nil
}

type Option func(*Session)

func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.rec = r }
}

type Session struct {
	cfg Config
	log *zap.Logger

	world  *ecs.World
	mapper *ecs.Map3[Body, Motion, Navigation]
	filter *ecs.Filter3[Body, Motion, Navigation]
	player ecs.Entity

	cam   *camera.Camera
	rec   Recorder
	click *r2.Vec

	state   steer.State
	elapsed float64
	ticks   int
	closed  bool
}

// Mount builds the demo world with one entity at the center.
func Mount(cfg Config, log *zap.Logger, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	world := ecs.NewWorld()
	s := &Session{
		cfg:    cfg,
		log:    log.Named("play"),
		world:  world,
		mapper: ecs.NewMap3[Body, Motion, Navigation](world),
		filter: ecs.NewFilter3[Body, Motion, Navigation](world),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.spawn()
	s.cam = camera.New(cfg.ViewportW, cfg.ViewportH, cfg.Params.WorldSize, cfg.Params.WorldSize)
	s.cam.Zoom = cfg.Zoom
	s.cam.CenterOn(s.state.Position.X, s.state.Position.Y)

	s.log.Debug("session mounted",
		zap.Float64("world", cfg.Params.WorldSize),
		zap.Float64("viewport_w", cfg.ViewportW),
		zap.Float64("viewport_h", cfg.ViewportH))
	return s, nil
}

func (s *Session) spawn() {
	s.state = steer.NewState(s.cfg.Params)
	body := Body{Size: s.cfg.Params.BodySize}
	var mot Motion
	var nav Navigation
	decompose(s.state, &mot, &nav)
	s.player = s.mapper.NewEntity(&body, &mot, &nav)
}

// Update advances the demo by dt seconds.
func (s *Session) Update(in steer.Input, dt float64) {
	if s.closed || !(dt > 0) {
		return
	}
	if dt > s.cfg.MaxDt {
		dt = s.cfg.MaxDt
	}
	if in.Click == nil && s.click != nil {
		in.Click = s.click
	}
	s.click = nil

	had := s.state.Target.Active
	query := s.filter.Query()
	for query.Next() {
		_, mot, nav := query.Get()
		next := steer.Step(s.cfg.Params, compose(mot, nav), in, dt)
		decompose(next, mot, nav)
		if query.Entity() == s.player {
			s.state = next
		}
	}

	s.elapsed += dt
	s.ticks++
	s.cam.Follow(s.state.Position.X, s.state.Position.Y, s.cfg.Lerp, s.cfg.Deadzone)

	if in.Click != nil {
		s.log.Debug("target set", zap.Float64("x", in.Click.X), zap.Float64("y", in.Click.Y))
	}
	if had && !s.state.Target.Active && in.Steer() == 0 && in.Thrust() == 0 {
		s.log.Debug("target reached", zap.Float64("t", s.elapsed))
	}
	if s.rec != nil {
		s.rec.Record(s.elapsed, s.state, in)
	}
}

// Click queues a click at screen coordinates for the next Update and
// returns the world point it maps to.
func (s *Session) Click(sx, sy float64) r2.Vec {
	wx, wy := s.cam.ScreenToWorld(sx, sy)
	p := r2.Vec{X: wx, Y: wy}
	if !s.closed {
		s.click = &p
	}
	return p
}

// Resize follows host viewport changes.
func (s *Session) Resize(w, h float64) {
	if s.closed {
		return
	}
	s.cam.Resize(w, h)
}

// SetZoom changes the camera scale, keeping the view inside the world.
func (s *Session) SetZoom(z float64) {
	if s.closed || !(z > 0) {
		return
	}
	s.cam.Zoom = z
	s.cam.Clamp()
}

// Reset puts the entity back at the center at rest.
func (s *Session) Reset() {
	if s.closed {
		return
	}
	s.world.RemoveEntity(s.player)
	s.spawn()
	s.click = nil
	s.cam.CenterOn(s.state.Position.X, s.state.Position.Y)
	s.log.Debug("session reset")
}

// Snapshot is a read-only copy of the session for renderers.
type Snapshot struct {
	State   steer.State
	Params  steer.Params
	Camera  camera.Camera
	Elapsed float64
	Ticks   int
	Closed  bool
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:   s.state,
		Params:  s.cfg.Params,
		Camera:  *s.cam,
		Elapsed: s.elapsed,
		Ticks:   s.ticks,
		Closed:  s.closed,
	}
}

// Close releases the world and closes the recorder. Safe to call twice.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.world.Alive(s.player) {
		s.world.RemoveEntity(s.player)
	}
	s.click = nil
	s.log.Debug("session closed", zap.Int("ticks", s.ticks), zap.Float64("elapsed", s.elapsed))

	if c, ok := s.rec.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	if r, ok := s.rec.(interface{ ID() string }); ok && r.ID() != "" {
		s.log.Info("session recorded", zap.String("run", r.ID()))
	}
	return nil
}
