package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mverhelle/folio/internal/carousel"
	"github.com/mverhelle/folio/internal/config"
	"github.com/mverhelle/folio/internal/projects"
	"github.com/mverhelle/folio/internal/storage"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, cfg *config.Config, route string) (Model, *carousel.ManualScheduler) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	sched := carousel.NewManualScheduler()
	m, err := New(cfg, nil, Options{
		Route:     route,
		Scheduler: sched,
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m, sched
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomeCarouselAdvances(t *testing.T) {
	m, sched := newTestModel(t, nil, "/")

	assert.Equal(t, PageHome, m.Route().Page)
	assert.Contains(t, m.View(), "Awesome Project")

	sched.Advance(10 * time.Second)
	assert.Equal(t, 1, m.carousel.Index())
	assert.Contains(t, m.View(), "Cool App")

	sched.Advance(10 * time.Second)
	assert.Equal(t, 0, m.carousel.Index(), "wraps around")
}

func TestArrowsRevealAndFade(t *testing.T) {
	m, sched := newTestModel(t, nil, "/")
	assert.NotContains(t, m.View(), "›")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.carousel.Index())
	assert.Contains(t, m.View(), "›")
	assert.Contains(t, m.View(), "‹")

	sched.Advance(time.Second)
	assert.NotContains(t, m.View(), "›")
}

func TestMouseMotionReveals(t *testing.T) {
	m, _ := newTestModel(t, nil, "/")
	top := m.headerHeight()

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: top + 1, Action: tea.MouseActionMotion})
	assert.True(t, m.carousel.ControlsVisible())

	// A click on the right gutter advances.
	x := arrowWidth + textWidth(m.viewCard())
	m, _ = update(t, m, tea.MouseMsg{X: x, Y: top + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, m.carousel.Index())
}

func TestSingleProjectHasNoControls(t *testing.T) {
	cfg := config.Default()
	cfg.Projects = projects.List{{Slug: "solo", Title: "Solo"}}
	m, sched := newTestModel(t, cfg, "/")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, m.carousel.ControlsVisible())
	assert.Equal(t, 0, sched.Pending())
	assert.NotContains(t, m.View(), "‹")

	sched.Advance(time.Minute)
	assert.Equal(t, 0, m.carousel.Index())
}

func TestEmptyProjects(t *testing.T) {
	cfg := config.Default()
	cfg.Projects = nil
	m, _ := newTestModel(t, cfg, "/")

	assert.Contains(t, m.View(), "No projects yet.")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, PageHome, m.Route().Page)
}

func TestHeaderAndFooter(t *testing.T) {
	m, _ := newTestModel(t, nil, "/about")
	view := m.View()

	assert.Contains(t, view, "MV")
	assert.Contains(t, view, "github.com/MitchellVerhelle")
	assert.Contains(t, view, "© 2026 Mitchell Verhelle. All rights reserved.")
}

func TestOpenProject(t *testing.T) {
	m, _ := newTestModel(t, nil, "/")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, PageProject, m.Route().Page)
	assert.Equal(t, "awesome-project", m.Route().Slug)
	assert.Contains(t, m.View(), "Awesome")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PageHome, m.Route().Page)
}

func TestNotFound(t *testing.T) {
	for _, path := range []string{"/nope", "/projects/missing"} {
		m, _ := newTestModel(t, nil, path)
		assert.Equal(t, PageNotFound, m.Route().Page, path)
		assert.Contains(t, m.View(), path+" not found")
	}
}

func TestContactPage(t *testing.T) {
	m, _ := newTestModel(t, nil, "/")
	assert.Contains(t, m.viewHeader(), "contact")

	m, _ = update(t, m, runes("4"))
	assert.Equal(t, PageContact, m.Route().Page)
	assert.Contains(t, m.View(), "quickest")
}

func TestContactHiddenWithoutText(t *testing.T) {
	cfg := config.Default()
	cfg.Site.Contact = ""
	m, _ := newTestModel(t, cfg, "/contact")

	assert.Equal(t, PageNotFound, m.Route().Page)
	assert.Contains(t, m.View(), "/contact not found")
	assert.NotContains(t, m.viewHeader(), "contact")
}

func TestGotoPrompt(t *testing.T) {
	m, _ := newTestModel(t, nil, "/")

	m, _ = update(t, m, runes("/"))
	require.True(t, m.prompting)
	m, _ = update(t, m, runes("about"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.prompting)
	assert.Equal(t, PageAbout, m.Route().Page)
}

func TestPlayMountsAndUnmounts(t *testing.T) {
	m, _ := newTestModel(t, nil, "/")

	m, cmd := update(t, m, runes("3"))
	require.Equal(t, PagePlay, m.Route().Page)
	require.NotNil(t, m.play)
	require.NotNil(t, m.play.session)
	assert.NotNil(t, cmd, "mounting starts the frame ticker")
	session := m.play.session

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.play)
	assert.True(t, session.Snapshot().Closed)
}

func TestPlayTick(t *testing.T) {
	m, _ := newTestModel(t, nil, "/play")
	require.NotNil(t, m.play)
	gen := m.play.gen

	m, _ = update(t, m, runes("w"))
	m, cmd := update(t, m, tickMsg{gen: gen, at: testNow.Add(16 * time.Millisecond)})
	assert.NotNil(t, cmd)
	assert.Greater(t, m.play.session.Snapshot().State.Speed(), 0.0)
	assert.Contains(t, m.View(), "speed")

	_, cmd = update(t, m, tickMsg{gen: gen - 1, at: testNow.Add(time.Second)})
	assert.Nil(t, cmd, "stale ticks stop")
}

func TestPlayResetAndKeys(t *testing.T) {
	m, _ := newTestModel(t, nil, "/play")
	gen := m.play.gen

	m, _ = update(t, m, runes("w"))
	m, _ = update(t, m, tickMsg{gen: gen, at: testNow.Add(10 * time.Millisecond)})
	m, _ = update(t, m, runes("r"))
	assert.Zero(t, m.play.session.Snapshot().State.Speed())

	m, _ = update(t, m, runes("v"))
	assert.True(t, m.play.vectors)
	m, _ = update(t, m, runes("+"))
	assert.Greater(t, m.play.zoom, playZoom)
}

func TestPlayRecordsToStore(t *testing.T) {
	store := storage.New(t.TempDir())
	require.NoError(t, store.Init())

	m, err := New(config.Default(), nil, Options{
		Route:     "/play",
		Scheduler: carousel.NewManualScheduler(),
		Store:     store,
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)

	m, _ = update(t, m, tickMsg{gen: m.play.gen, at: testNow})
	m, _ = update(t, m, runes("1"))
	m.Close()

	runs, err := store.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "play", runs[0].Origin)
}

func TestThemeCycle(t *testing.T) {
	m, _ := newTestModel(t, nil, "/")
	before := m.styles.Theme.Name
	m, _ = update(t, m, runes("t"))
	assert.NotEqual(t, before, m.styles.Theme.Name)
}

func TestResize(t *testing.T) {
	m, _ := newTestModel(t, nil, "/play")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	w, h := m.canvasSize()
	cam := m.play.session.Snapshot().Camera
	assert.Equal(t, float64(w*2), cam.ViewportW)
	assert.Equal(t, float64(h*4), cam.ViewportH)
	assert.LessOrEqual(t, len(strings.Split(m.View(), "\n")), 40)
}

func TestQuitClosesEverything(t *testing.T) {
	m, sched := newTestModel(t, nil, "/")
	require.Positive(t, sched.Pending())

	_, cmd := update(t, m, runes("q"))
	assert.NotNil(t, cmd)
	assert.Zero(t, sched.Pending())
}

func TestApplyReload(t *testing.T) {
	m, _ := newTestModel(t, nil, "/projects/cool-app")
	m, _ = update(t, m, reloadMsg{projects: projects.List{{Slug: "new", Title: "New"}}})

	assert.Equal(t, 1, m.carousel.Len())
	assert.Equal(t, PageNotFound, m.Route().Page, "removed project no longer resolves")
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  name: A\n"), 0644))

	w, err := newWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	body := "projects:\n  - slug: fresh\n    title: Fresh\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	got := make(chan tea.Msg, 1)
	go func() { got <- w.wait()() }()

	select {
	case msg := <-got:
		rm, ok := msg.(reloadMsg)
		require.True(t, ok)
		require.NoError(t, rm.err)
		require.Len(t, rm.projects, 1)
		assert.Equal(t, "fresh", rm.projects[0].Slug)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}
