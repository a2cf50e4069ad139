package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/play"
	"github.com/mverhelle/folio/internal/steer"
	"github.com/mverhelle/folio/internal/storage"
	"github.com/mverhelle/folio/internal/viz"
)

const (
	playZoom    = 0.25
	minZoom     = 0.05
	maxZoom     = 1.0
	floorGrid   = 200.0
	minCanvasW  = 10
	minCanvasH  = 4
	playHUDRows = 1
)

type tickMsg struct {
	gen int
	at  time.Time
}

// playPage owns the demo session while /play is mounted.
type playPage struct {
	session *play.Session
	hold    *play.HoldTracker
	gen     int
	fps     int
	last    time.Time
	zoom    float64
	vectors bool
	err     error
}

func (m *Model) mountPlay() tea.Cmd {
	m.playGen++
	p := &playPage{
		hold: play.NewHoldTracker(m.cfg.Play.HoldWindow, m.cfg.Play.HoldDelay),
		gen:  m.playGen,
		fps:  m.cfg.Screen.TargetFPS,
		zoom: playZoom,
	}
	if p.fps <= 0 {
		p.fps = 60
	}
	m.play = p

	cfg := play.ConfigFrom(m.cfg)
	w, h := m.canvasSize()
	cfg.ViewportW, cfg.ViewportH = float64(w*2), float64(h*4)
	cfg.Zoom = p.zoom

	var opts []play.Option
	if m.opts.Store != nil {
		opts = append(opts, play.WithRecorder(storage.NewRecorder(m.opts.Store, storage.RunMetadata{
			Scenario:  "play",
			Origin:    "play",
			Timestamp: m.now(),
			Dt:        1 / float64(p.fps),
			Params:    cfg.Params,
		})))
	}

	session, err := play.Mount(cfg, m.log, opts...)
	if err != nil {
		m.log.Error("mounting play session", zap.Error(err))
		p.err = err
		return nil
	}
	p.session = session
	return p.tick()
}

func (m *Model) unmountPlay() {
	if m.play == nil {
		return
	}
	if m.play.session != nil {
		if err := m.play.session.Close(); err != nil {
			m.log.Warn("closing play session", zap.Error(err))
		}
	}
	m.play = nil
}

func (p *playPage) tick() tea.Cmd {
	gen := p.gen
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m *Model) updatePlayTick(msg tickMsg) tea.Cmd {
	p := m.play
	if p == nil || p.session == nil || msg.gen != p.gen {
		return nil
	}
	dt := 1 / float64(p.fps)
	if !p.last.IsZero() {
		dt = msg.at.Sub(p.last).Seconds()
	}
	p.last = msg.at
	p.session.Update(p.hold.Input(msg.at), dt)
	return p.tick()
}

func (m *Model) updatePlayKey(msg tea.KeyMsg) bool {
	p := m.play
	if p == nil || p.session == nil {
		return false
	}
	now := m.now()
	switch {
	case matches(msg, m.keys.Forward):
		p.hold.Press(play.KeyForward, now)
	case matches(msg, m.keys.Reverse):
		p.hold.Press(play.KeyReverse, now)
	case matches(msg, m.keys.Left):
		p.hold.Press(play.KeyLeft, now)
	case matches(msg, m.keys.Right):
		p.hold.Press(play.KeyRight, now)
	case matches(msg, m.keys.Reset):
		p.hold.Clear()
		p.session.Reset()
	case matches(msg, m.keys.Vectors):
		p.vectors = !p.vectors
	case matches(msg, m.keys.ZoomIn):
		p.zoom = math.Min(p.zoom*1.25, maxZoom)
		p.session.SetZoom(p.zoom)
	case matches(msg, m.keys.ZoomOut):
		p.zoom = math.Max(p.zoom/1.25, minZoom)
		p.session.SetZoom(p.zoom)
	default:
		return false
	}
	return true
}

// clickPlay maps a terminal cell to canvas dots and queues a click.
func (m *Model) clickPlay(x, y int) {
	p := m.play
	if p == nil || p.session == nil {
		return
	}
	top := m.headerHeight() + playHUDRows + 1
	left := 1
	w, h := m.canvasSize()
	cx, cy := x-left, y-top
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return
	}
	target := p.session.Click(float64(cx*2+1), float64(cy*4+2))
	m.log.Debug("play click", zap.Int("col", cx), zap.Int("row", cy),
		zap.Float64("x", target.X), zap.Float64("y", target.Y))
}

// canvasSize returns the play canvas in cells.
func (m *Model) canvasSize() (int, int) {
	w := m.width - 2
	h := m.bodyHeight() - playHUDRows - 2
	return max(w, minCanvasW), max(h, minCanvasH)
}

func (m *Model) resizePlay() {
	if m.play == nil || m.play.session == nil {
		return
	}
	w, h := m.canvasSize()
	m.play.session.Resize(float64(w*2), float64(h*4))
}

func (m Model) viewPlay() string {
	p := m.play
	if p == nil {
		return ""
	}
	if p.err != nil {
		return m.styles.Warning.Render("play unavailable: " + p.err.Error())
	}

	snap := p.session.Snapshot()
	s := snap.State
	target := "none"
	if s.Target.Active {
		target = fmt.Sprintf("%.0f,%.0f", s.Target.Point.X, s.Target.Point.Y)
	}
	hud := lipgloss.JoinHorizontal(lipgloss.Top,
		m.hudField("speed", fmt.Sprintf("%5.1f", s.Speed())),
		m.hudField("heading", fmt.Sprintf("%4.0f°", steer.Degrees(steer.WrapAngle(s.Rotation)))),
		m.hudField("slip", fmt.Sprintf("%5.1f", r2.Norm(s.Lateral()))),
		m.hudField("target", target),
		m.hudField("t", fmt.Sprintf("%.1fs", snap.Elapsed)),
	)

	w, h := m.canvasSize()
	c := viz.NewCanvas(w, h)
	viz.DrawScene(c, snap, viz.SceneOptions{Grid: floorGrid, Vectors: p.vectors})
	canvas := m.styles.Canvas.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Border).
		Render(c.String())

	return lipgloss.JoinVertical(lipgloss.Left, hud, canvas)
}

func (m Model) hudField(label, value string) string {
	return m.styles.HUDLabel.Render(label+" ") + m.styles.HUDValue.Render(value) + "   "
}
