// Package tui is the terminal portfolio: a routed site with a header, a
// footer, the project carousel, markdown pages and the steering demo.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/mverhelle/folio/internal/carousel"
	"github.com/mverhelle/folio/internal/config"
	"github.com/mverhelle/folio/internal/projects"
	"github.com/mverhelle/folio/internal/storage"
	"github.com/mverhelle/folio/internal/viz"
)

// timerMsg delivers an expired carousel timer to the update loop.
type timerMsg func()

type Options struct {
	Route      string // initial path, "/" when empty
	ConfigPath string
	Watch      bool           // reload projects when ConfigPath changes
	Store      *storage.Store // records play sessions when set

	// Scheduler drives carousel timers. A LoopScheduler is created when nil;
	// any other scheduler is advanced by its owner.
	Scheduler carousel.Scheduler
	Now       func() time.Time
}

type Model struct {
	cfg  *config.Config
	log  *zap.Logger
	opts Options
	now  func() time.Time

	keys      keyMap
	help      help.Model
	prompt    textinput.Model
	prompting bool
	viewport  viewport.Model
	markdown  *glamour.TermRenderer
	styles    viz.Styles

	route    Route
	sched    carousel.Scheduler
	loop     *carousel.LoopScheduler
	ownLoop  bool
	carousel *carousel.Carousel[projects.Project]
	watcher  *watcher

	play    *playPage
	playGen int

	width   int
	height  int
	initCmd tea.Cmd
}

func New(cfg *config.Config, log *zap.Logger, opts Options) (Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := *cfg
	m := Model{
		cfg:    &c,
		log:    log.Named("tui"),
		opts:   opts,
		now:    opts.Now,
		keys:   defaultKeys(),
		help:   help.New(),
		styles: viz.NewStyles(viz.GetTheme(c.Site.Theme)),
		width:  80,
		height: 24,
	}
	if m.now == nil {
		m.now = time.Now
	}

	m.prompt = textinput.New()
	m.prompt.Prompt = "go to "
	m.prompt.Placeholder = "/projects/..."
	m.prompt.CharLimit = 128

	switch s := opts.Scheduler.(type) {
	case nil:
		m.loop = carousel.NewLoopScheduler()
		m.ownLoop = true
		m.sched = m.loop
	case *carousel.LoopScheduler:
		m.loop = s
		m.sched = s
	default:
		m.sched = s
	}
	m.carousel = m.newCarousel(c.Projects)

	if opts.Watch && opts.ConfigPath != "" {
		w, err := newWatcher(opts.ConfigPath, m.log)
		if err != nil {
			m.Close()
			return Model{}, err
		}
		m.watcher = w
		m.log.Info("watching config", zap.String("path", opts.ConfigPath))
	}

	m.viewport = viewport.New(m.width, m.bodyHeight())
	m.setRenderer()

	route := opts.Route
	if route == "" {
		route = "/"
	}
	m.initCmd = m.navigate(ParseRoute(route))
	return m, nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initCmd, m.waitTimer()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// Close releases the carousel timers, the play session and the watcher.
// Safe to call more than once.
func (m *Model) Close() {
	m.unmountPlay()
	if m.carousel != nil {
		m.carousel.Close()
	}
	if m.ownLoop && m.loop != nil {
		m.loop.Close()
	}
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.log.Warn("closing watcher", zap.Error(err))
		}
	}
}

// Route returns the page on display.
func (m Model) Route() Route { return m.route }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.bodyHeight()
		m.setRenderer()
		m.renderPage()
		m.resizePlay()
		return m, nil

	case timerMsg:
		msg()
		return m, m.waitTimer()

	case tickMsg:
		return m, m.updatePlayTick(msg)

	case reloadMsg:
		m.applyReload(msg)
		if m.watcher == nil {
			return m, nil
		}
		return m, m.watcher.wait()

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		switch msg.Type {
		case tea.KeyEnter:
			path := m.prompt.Value()
			m.closePrompt()
			return m, m.navigate(ParseRoute(path))
		case tea.KeyEsc:
			m.closePrompt()
			return m, nil
		}
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	switch {
	case matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.bodyHeight()
		m.resizePlay()
		return m, nil
	case matches(msg, m.keys.Goto):
		m.prompting = true
		return m, m.prompt.Focus()
	case matches(msg, m.keys.Theme):
		m.styles = viz.NewStyles(viz.NextTheme(m.styles.Theme))
		m.setRenderer()
		m.renderPage()
		return m, nil
	case matches(msg, m.keys.Home):
		return m, m.navigate(ParseRoute("/"))
	case matches(msg, m.keys.About):
		return m, m.navigate(ParseRoute("/about"))
	case matches(msg, m.keys.Play):
		return m, m.navigate(ParseRoute("/play"))
	case matches(msg, m.keys.Contact):
		return m, m.navigate(ParseRoute("/contact"))
	case matches(msg, m.keys.Back):
		if m.route.Page != PageHome {
			return m, m.navigate(ParseRoute("/"))
		}
		return m, nil
	}

	switch m.route.Page {
	case PageHome:
		switch {
		case matches(msg, m.keys.Prev):
			m.carousel.Prev()
			m.carousel.Reveal()
		case matches(msg, m.keys.Next):
			m.carousel.Next()
			m.carousel.Reveal()
		case matches(msg, m.keys.Open):
			return m, m.openCurrent()
		}
	case PagePlay:
		m.updatePlayKey(msg)
	case PageAbout, PageProject, PageContact:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch m.route.Page {
	case PageHome:
		top := m.headerHeight()
		h := len(splitLines(m.viewCarouselRow()))
		if msg.Y < top || msg.Y >= top+h {
			return nil
		}
		switch msg.Action {
		case tea.MouseActionMotion:
			m.carousel.Reveal()
		case tea.MouseActionPress:
			if msg.Button != tea.MouseButtonLeft {
				return nil
			}
			cardW := textWidth(m.viewCard())
			switch {
			case msg.X < arrowWidth:
				if m.carousel.ControlsVisible() {
					m.carousel.Prev()
					m.carousel.Reveal()
				}
			case msg.X >= arrowWidth+cardW:
				if m.carousel.ControlsVisible() {
					m.carousel.Next()
					m.carousel.Reveal()
				}
			default:
				return m.openCurrent()
			}
		}
	case PagePlay:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.clickPlay(msg.X, msg.Y)
		}
	case PageAbout, PageProject, PageContact:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// navigate switches pages. Leaving /play closes the demo session; entering
// it mounts a fresh one.
func (m *Model) navigate(r Route) tea.Cmd {
	switch r.Page {
	case PageProject:
		if _, ok := m.cfg.Projects.Find(r.Slug); !ok {
			r.Page = PageNotFound
		}
	case PageContact:
		if strings.TrimSpace(m.cfg.Site.Contact) == "" {
			r.Page = PageNotFound
		}
	}
	if r.Page != PagePlay {
		m.unmountPlay()
	}
	m.route = r
	m.keys.page = r.Page
	m.log.Debug("navigate", zap.String("path", r.Path), zap.Stringer("page", r.Page))

	switch r.Page {
	case PagePlay:
		if m.play == nil {
			return m.mountPlay()
		}
	case PageAbout, PageProject, PageContact:
		m.renderPage()
	}
	return nil
}

func (m *Model) openCurrent() tea.Cmd {
	p, ok := m.carousel.Current()
	if !ok {
		return nil
	}
	return m.navigate(ParseRoute(p.Route()))
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m *Model) newCarousel(list projects.List) *carousel.Carousel[projects.Project] {
	c := carousel.New(list, m.sched, m.cfg.Carousel.Interval, m.cfg.Carousel.Fade)
	log := m.log
	c.OnChange = func(i int) {
		log.Debug("carousel", zap.Int("index", i))
	}
	return c
}

func (m *Model) applyReload(msg reloadMsg) {
	if msg.err != nil {
		m.log.Warn("reloading projects", zap.Error(msg.err))
		return
	}
	m.cfg.Projects = msg.projects
	m.carousel.Close()
	m.carousel = m.newCarousel(msg.projects)
	if m.route.Page != PagePlay {
		m.navigate(ParseRoute(m.route.Path))
	}
	m.log.Info("projects reloaded", zap.Int("count", len(msg.projects)))
}

func (m Model) waitTimer() tea.Cmd {
	loop := m.loop
	if loop == nil {
		return nil
	}
	return func() tea.Msg {
		f, ok := loop.Wait()
		if !ok {
			return nil
		}
		return timerMsg(f)
	}
}

func (m *Model) setRenderer() {
	style := "dark"
	if m.styles.Theme.Name == viz.ThemePaper.Name {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(m.width-4, 20)),
	)
	if err != nil {
		m.log.Warn("markdown renderer", zap.Error(err))
		m.markdown = nil
		return
	}
	m.markdown = r
}

func (m *Model) renderPage() {
	var md string
	switch m.route.Page {
	case PageAbout:
		md = m.cfg.Site.About
	case PageContact:
		md = m.cfg.Site.Contact
	case PageProject:
		p, ok := m.cfg.Projects.Find(m.route.Slug)
		if !ok {
			return
		}
		md = projectMarkdown(p)
	default:
		return
	}
	m.viewport.SetContent(m.renderMarkdown(md))
	m.viewport.GotoTop()
}

func (m *Model) renderMarkdown(md string) string {
	if m.markdown == nil {
		return md
	}
	out, err := m.markdown.Render(md)
	if err != nil {
		m.log.Warn("rendering markdown", zap.Error(err))
		return md
	}
	return out
}

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
