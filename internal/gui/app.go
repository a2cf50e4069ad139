// Package gui runs the steering demo in a desktop window.
package gui

import (
	"fmt"
	"math"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/mverhelle/folio/internal/config"
	"github.com/mverhelle/folio/internal/play"
	"github.com/mverhelle/folio/internal/steer"
	"github.com/mverhelle/folio/internal/storage"
)

var (
	ColBg      = rl.NewColor(12, 14, 20, 255)
	ColTileA   = rl.NewColor(28, 32, 42, 255)
	ColTileB   = rl.NewColor(22, 26, 34, 255)
	ColBounds  = rl.NewColor(90, 100, 120, 255)
	ColPlayer  = rl.NewColor(56, 189, 248, 255)
	ColNose    = rl.NewColor(240, 240, 240, 255)
	ColTarget  = rl.NewColor(245, 158, 11, 255)
	ColVel     = rl.NewColor(34, 197, 94, 255)
	ColSlip    = rl.NewColor(239, 68, 68, 255)
	ColText    = rl.NewColor(200, 200, 210, 255)
	ColTextDim = rl.NewColor(110, 115, 130, 255)
)

const (
	tileSize  = 64
	hudHeight = 40
)

type Options struct {
	Title string
	Store *storage.Store // records the session when set
}

type App struct {
	cfg *config.Config
	log *zap.Logger

	session     *play.Session
	floor       rl.Texture2D
	showVectors bool
	quit        bool
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, log *zap.Logger, opts Options) error {
	if log == nil {
		log = zap.NewNop()
	}
	title := opts.Title
	if title == "" {
		title = cfg.Site.Name + " / play"
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: window could not be created")
	}
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0)

	app, err := newApp(cfg, log.Named("gui"), opts)
	if err != nil {
		return err
	}
	defer app.Close()

	for !rl.WindowShouldClose() && !app.quit {
		app.Update()
		app.Draw()
	}
	return nil
}

func newApp(cfg *config.Config, log *zap.Logger, opts Options) (*App, error) {
	pcfg := play.ConfigFrom(cfg)
	pcfg.ViewportW = float64(rl.GetScreenWidth())
	pcfg.ViewportH = float64(rl.GetScreenHeight())

	var popts []play.Option
	if opts.Store != nil {
		popts = append(popts, play.WithRecorder(storage.NewRecorder(opts.Store, storage.RunMetadata{
			Scenario:  "play",
			Origin:    "gui",
			Timestamp: time.Now(),
			Dt:        1 / float64(max(cfg.Screen.TargetFPS, 1)),
			Params:    pcfg.Params,
		})))
	}

	session, err := play.Mount(pcfg, log, popts...)
	if err != nil {
		return nil, err
	}

	// Two-by-two checker tile, repeated across the floor.
	img := rl.GenImageChecked(tileSize*2, tileSize*2, tileSize, tileSize, ColTileA, ColTileB)
	floor := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &App{
		cfg:         cfg,
		log:         log,
		session:     session,
		floor:       floor,
		showVectors: false,
	}, nil
}

// Update reads input and advances the session by the frame time.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.session.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.session.Reset()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.showVectors = !a.showVectors
	}

	in := steer.Input{
		Forward: rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW),
		Reverse: rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD),
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && mouse.Y > hudHeight {
		target := a.session.Click(float64(mouse.X), float64(mouse.Y))
		a.log.Debug("click", zap.Float64("x", target.X), zap.Float64("y", target.Y))
	}

	a.session.Update(in, float64(rl.GetFrameTime()))
}

func (a *App) Draw() {
	snap := a.session.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode2D(camera2D(snap))
	a.drawFloor(snap)
	drawWorld(snap, a.showVectors)
	rl.EndMode2D()

	a.drawHUD(snap)
	rl.EndDrawing()
}

func (a *App) drawHUD(snap play.Snapshot) {
	w := float32(rl.GetScreenWidth())
	rl.DrawRectangleRec(rl.Rectangle{X: 0, Y: 0, Width: w, Height: hudHeight}, rl.Fade(ColBg, 0.85))

	if gui.Button(rl.Rectangle{X: 8, Y: 6, Width: 90, Height: 28}, "Reset") {
		a.session.Reset()
	}
	if gui.Button(rl.Rectangle{X: 106, Y: 6, Width: 110, Height: 28}, toggleText(a.showVectors, "Hide vectors", "Show vectors")) {
		a.showVectors = !a.showVectors
	}

	s := snap.State
	status := fmt.Sprintf("speed %5.1f   heading %4.0f°   t %.1fs",
		s.Speed(), steer.Degrees(steer.WrapAngle(s.Rotation)), snap.Elapsed)
	if s.Target.Active {
		status += fmt.Sprintf("   target %.0f,%.0f", s.Target.Point.X, s.Target.Point.Y)
	}
	rl.DrawText(status, 232, 12, 18, ColText)
	rl.DrawText("arrows/WASD steer   click to drive   R reset   V vectors   Q quit",
		8, int32(rl.GetScreenHeight())-24, 16, ColTextDim)
}

// Close releases the session and GPU resources.
func (a *App) Close() {
	if err := a.session.Close(); err != nil {
		a.log.Warn("closing session", zap.Error(err))
	}
	rl.UnloadTexture(a.floor)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

func camera2D(snap play.Snapshot) rl.Camera2D {
	c := snap.Camera
	return rl.Camera2D{
		Offset:   rl.NewVector2(float32(c.ViewportW/2), float32(c.ViewportH/2)),
		Target:   rl.NewVector2(float32(c.X), float32(c.Y)),
		Rotation: 0,
		Zoom:     float32(c.Zoom),
	}
}

func deg(rad float64) float32 { return float32(rad * 180 / math.Pi) }
