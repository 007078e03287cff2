package tui

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"talktimer/internal/docs"
	"talktimer/internal/logging"
	"talktimer/internal/store"
	"talktimer/internal/timer"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
)

// Options configure one TUI run.
type Options struct {
	// Store is the session directory (TUI state lives there).
	Store store.Store
	// KV is the origin-scoped durable store backing the timer.
	KV timer.KV
	// Log receives engine and TUI records; nil discards.
	Log *slog.Logger
	// Session is shown in the header.
	Session string
	// PagePath is the markdown page to present. Empty restores the last page.
	PagePath string
	// Config holds optional TUI preferences.
	Config *store.TUIConfig
}

const (
	headerHeight = 3
	footerHeight = 1
)

type appModel struct {
	store   store.Store
	log     *slog.Logger
	session string

	clock  *teaClock
	screen *screen
	engine *timer.Engine

	width  int
	height int

	page       viewport.Model
	pagePath   string
	pageMD     string
	pageErr    string
	pageOffset int

	help         help.Model
	keys         keyMap
	counterStyle string
	counterHover bool
}

// newAppModel builds the page and its timer engine. now overrides the wall
// clock (tests); nil means time.Now.
func newAppModel(opts Options, now func() time.Time) appModel {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	m := appModel{
		store:   opts.Store,
		log:     log,
		session: strings.TrimSpace(opts.Session),
		clock:   newTeaClock(now),
		screen:  &screen{},
		page:    viewport.New(80, 20),
		help:    help.New(),
		keys:    newKeyMap(),
	}
	if opts.Config != nil {
		m.counterStyle = opts.Config.CounterStyle
	}

	m.loadPage(opts.PagePath)
	m.engine = timer.New(m.clock, timer.NewPersistence(opts.KV, log), m.screen, timer.WithLogger(log))
	return m
}

// loadPage reads the markdown page. With no explicit path the last page of
// the session (and its scroll offset) is restored.
func (m *appModel) loadPage(path string) {
	path = strings.TrimSpace(path)
	restored := false
	if path == "" {
		if st, err := m.store.LoadTUIState(); err == nil && st.PagePath != "" {
			path = st.PagePath
			m.pageOffset = st.PageOffset
			restored = true
		}
	}
	if path == "" {
		m.pageMD = docs.Shortcuts()
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	m.pagePath = path

	b, err := os.ReadFile(path)
	if err != nil {
		m.log.Warn("read page", "path", path, "err", err)
		if restored && errors.Is(err, os.ErrNotExist) {
			// A page that moved since the last run is not worth an error screen.
			m.pagePath = ""
			m.pageOffset = 0
			m.pageMD = docs.Shortcuts()
			return
		}
		m.pageErr = err.Error()
		return
	}
	m.pageMD = string(b)
}

func (m *appModel) layoutPage() {
	w := m.width
	if w <= 0 {
		w = 80
	}
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	offset := m.page.YOffset
	if m.pageOffset > 0 {
		offset = m.pageOffset
		m.pageOffset = 0
	}
	m.page.Width = w
	m.page.Height = h
	if m.pageErr != "" {
		m.page.SetContent(styleError().Render("cannot open page: " + m.pageErr))
	} else {
		m.page.SetContent(RenderMarkdown(m.pageMD, w))
	}
	m.page.SetYOffset(offset)
	m.help.Width = w
}

// saveState records the current page for the next run. Best effort.
func (m appModel) saveState() {
	st := &store.TUIState{Version: 1, PagePath: m.pagePath}
	if m.pagePath != "" {
		st.PageOffset = m.page.YOffset
	}
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.Warn("save tui state", "err", err)
	}
}
