// Package tui is the terminal catalog browser: it fetches one snapshot,
// then searches and filters it locally through view.State.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MatthewDes/EcosolGIS-website/internal/browser"
	"github.com/MatthewDes/EcosolGIS-website/internal/catalog"
	"github.com/MatthewDes/EcosolGIS-website/internal/view"
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeHelp
)

// searchDebounce is the quiet period after a keystroke before the
// filtered list recomputes.
const searchDebounce = 250 * time.Millisecond

const loadTimeout = 15 * time.Second

// LoadFunc produces the catalog snapshot, from the local store or a
// remote server.
type LoadFunc func(ctx context.Context) (catalog.Catalog, error)

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Load   LoadFunc
	Source string
}

type App struct {
	load   LoadFunc
	source string

	state   *view.State
	visible catalog.Catalog
	cursor  int
	focus   focusPane
	mode    mode

	width  int
	height int

	searchInput textinput.Model
	spinner     spinner.Model
	tagBar      tagBar

	// Render states: loading until the first snapshot lands, loadErr
	// sticks until a reload succeeds.
	loading bool
	loadErr error
	err     error

	// searchGen invalidates pending debounce ticks; each keystroke
	// bumps it.
	searchGen int
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	state := view.NewState()

	return &App{
		load:        opts.Load,
		source:      opts.Source,
		state:       state,
		tagBar:      newTagBar(state),
		searchInput: ti,
		spinner:     sp,
		loading:     true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCatalogCmd(), a.spinner.Tick)
}

func (a *App) loadCatalogCmd() tea.Cmd {
	load := a.load
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		cat, err := load(ctx)
		if err != nil {
			return loadErrMsg{err: err}
		}
		return catalogLoadedMsg{cat: cat}
	}
}

// recompute refreshes the derived list and clamps the cursor.
func (a *App) recompute() {
	a.visible = a.state.Recompute()
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
}

func openDocumentCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return actionErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky action error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case catalogLoadedMsg:
		a.loading = false
		a.loadErr = nil
		a.state.SetCatalog(msg.cat)
		a.tagBar.refresh()
		a.recompute()
		return a, nil

	case loadErrMsg:
		a.loading = false
		a.loadErr = msg.err
		return a, nil

	case actionErrMsg:
		a.err = msg.err
		return a, nil

	case searchDebounceMsg:
		// A newer keystroke supersedes this tick.
		if msg.gen != a.searchGen {
			return a, nil
		}
		a.state.SetSearch(a.searchInput.Value())
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.visible)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusDetail
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if len(a.visible) > 0 && a.cursor < len(a.visible) {
			return a, openDocumentCmd(a.visible[a.cursor].File)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.tagBar.filterMode = true
		return a, nil
	case "r":
		a.loading = true
		a.loadErr = nil
		return a, tea.Batch(a.loadCatalogCmd(), a.spinner.Tick)
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel clears immediately, no debounce.
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.searchGen++
		a.state.ClearSearch()
		a.recompute()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.searchGen++
		a.state.SetSearch(a.searchInput.Value())
		a.recompute()
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)

	// Only arm the debounce on actual value changes, not cursor moves.
	if a.searchInput.Value() == before {
		return a, cmd
	}
	a.searchGen++
	gen := a.searchGen
	debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{gen: gen}
	})
	return a, tea.Batch(cmd, debounce)
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeNormal
		a.tagBar.filterMode = false
		return a, nil
	case "left", "h":
		if a.tagBar.cursor > 0 {
			a.tagBar.cursor--
		}
		return a, nil
	case "right", "l":
		if a.tagBar.cursor < len(a.tagBar.tags)-1 {
			a.tagBar.cursor++
		}
		return a, nil
	case " ", "enter":
		a.tagBar.toggleCurrent()
		a.cursor = 0
		a.recompute()
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		a.tagBar.toggleIndex(int(msg.String()[0] - '1'))
		a.cursor = 0
		a.recompute()
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorPrimary).Render("  ecosolgis")
	}

	if a.loading {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.spinner.View()+" loading catalog...")
	}

	if a.loadErr != nil {
		msg := errorStyle.Render("Could not load the catalog") + "\n\n" +
			errorDimStyle.Render(truncateStr(a.loadErr.Error(), a.width-8)) + "\n\n" +
			errorDimStyle.Render("r retry  q quit")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, msg)
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Layout calculations
	headerHeight := 1
	tagBarHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - tagBarHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.4)
	detailWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("ecosolgis archive")
	headerRight := headerCountStyle.Render(a.source)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Tag bar, replaced by the search input while typing
	bar := a.tagBar.render(a.width)
	if a.mode == modeSearch {
		bar = a.searchInput.View()
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.visible, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Detail pane
	var selected *catalog.ProjectRecord
	if len(a.visible) > 0 && a.cursor < len(a.visible) {
		selected = &a.visible[a.cursor]
	}
	innerDetailW := detailWidth - 4
	detailContent := renderDetail(selected, innerDetailW, contentHeight)

	var detailPane string
	if a.focus == focusDetail {
		detailPane = detailPaneActiveStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	} else {
		detailPane = detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	status := renderStatusBar(
		len(a.visible),
		len(a.state.Catalog()),
		a.tagBar.activeLabel(),
		a.width,
		a.mode == modeSearch,
	)

	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render("ecosolgis")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through the project list\n" +
		"  tab           Switch focus between list and detail\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open the document in a browser\n" +
		"  r             Reload the catalog\n" +
		"  /             Search by title or tag\n" +
		"  f             Toggle tag filter mode\n\n" +
		dim.Render("Filter Mode") + "\n" +
		"  ←/→, h/l     Move between tags\n" +
		"  space/enter   Toggle the highlighted tag\n" +
		"  1-9           Toggle tag by number\n" +
		"  esc, f        Exit filter mode\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the catalog browser.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
