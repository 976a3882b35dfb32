// Package browser contains the root Bubble Tea model for svcbrowse.
package browser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/espenotterstad/svcdb/internal/parser"
	"github.com/espenotterstad/svcdb/internal/svc"
	"github.com/espenotterstad/svcdb/internal/ui"
)

// ReloadMsg is sent by the watcher goroutine when the services file changed
// on disk.
type ReloadMsg struct{}

// WatchErrMsg is sent when the watcher cannot be started.
type WatchErrMsg struct{ Err error }

// datasetMsg carries a freshly parsed dataset.
type datasetMsg struct {
	recs []svc.Record
	err  error
}

// Model is the root Bubble Tea model.
type Model struct {
	// Path of the services file being browsed.
	path string

	// All parsed records (unfiltered).
	all []svc.Record

	// Filtered view of records.
	filtered []svc.Record

	// Cursor position within filtered.
	cursor int

	// Protocol filter, empty for any.
	proto svc.Protocol

	// True while the search input is open.
	searching   bool
	searchInput textinput.Model

	// True while the detail page is open.
	showDetail bool

	// Terminal dimensions.
	width, height int

	// Non-fatal load problem shown in the status line.
	loadErr error
}

// New creates the initial model for the services file at path.
func New(path string) Model {
	ti := textinput.New()
	ti.Placeholder = "name or port…"
	ti.CharLimit = 64
	ti.Width = 30

	return Model{path: path, searchInput: ti}
}

// Init triggers the initial dataset load.
func (m Model) Init() tea.Cmd {
	return loadCmd(m.path)
}

// loadCmd parses the services file off the update loop.
func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		recs, err := parser.ParseFile(path)
		return datasetMsg{recs: recs, err: err}
	}
}

// Update handles all incoming messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case datasetMsg:
		// An unreadable file degrades to an empty dataset, same as the
		// library's runtime backend.
		m.all = msg.recs
		m.loadErr = msg.err
		m.applyFilters()
		return m, nil

	case ReloadMsg:
		return m, loadCmd(m.path)

	case WatchErrMsg:
		m.loadErr = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applyFilters()
		return m, cmd
	}

	return m, nil
}

// handleKey dispatches keyboard events.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Detail page: close on Esc or Enter.
	if m.showDetail {
		if msg.String() == "esc" || msg.String() == "enter" || msg.String() == "q" {
			m.showDetail = false
		}
		return m, nil
	}

	// Search input open: keystrokes go to the input.
	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.searchInput.Blur()
			m.applyFilters()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applyFilters()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "pgup":
		m.cursor -= 20
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "pgdown":
		m.cursor += 20
		if m.cursor >= len(m.filtered) {
			m.cursor = len(m.filtered) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "enter":
		if len(m.filtered) > 0 {
			m.showDetail = true
		}
	case "t":
		m.proto = toggleProto(m.proto, svc.TCP)
		m.applyFilters()
	case "u":
		m.proto = toggleProto(m.proto, svc.UDP)
		m.applyFilters()
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "esc":
		m.proto = ""
		m.searchInput.SetValue("")
		m.applyFilters()
	case "r":
		return m, loadCmd(m.path)
	}

	return m, nil
}

func toggleProto(cur, p svc.Protocol) svc.Protocol {
	if cur == p {
		return ""
	}
	return p
}

// applyFilters rebuilds the filtered slice from all.
func (m *Model) applyFilters() {
	query := strings.TrimSpace(m.searchInput.Value())
	port, isPort := -1, false
	if p, err := strconv.Atoi(query); err == nil {
		port, isPort = p, true
	}

	m.filtered = m.filtered[:0]
	for _, r := range m.all {
		if m.proto != "" && r.Protocol != m.proto {
			continue
		}
		switch {
		case query == "":
		case isPort:
			if r.Port != port {
				continue
			}
		default:
			if !strings.Contains(strings.ToLower(r.Name), strings.ToLower(query)) {
				continue
			}
		}
		m.filtered = append(m.filtered, r)
	}

	// Clamp cursor.
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the entire TUI.
func (m Model) View() string {
	var sb strings.Builder

	// ── Top bar ─────────────────────────────────────────────────────────────
	status := fmt.Sprintf("%s — %d/%d records", m.path, len(m.filtered), len(m.all))
	if m.loadErr != nil {
		status = fmt.Sprintf("%s — %v", m.path, m.loadErr)
	}
	if m.proto != "" {
		status += "  " + ui.StyleFilter.Render("["+string(m.proto)+"]")
	}
	title := ui.StyleTitle.Render("svcbrowse")
	spacer := m.width - lipgloss.Width(status) - len("svcbrowse") - 2
	if spacer < 0 {
		spacer = 0
	}
	sb.WriteString(status + strings.Repeat(" ", spacer) + title + "\n")
	sb.WriteString(ui.StyleDivider.Render(strings.Repeat("─", m.width)) + "\n")

	// ── Body ────────────────────────────────────────────────────────────────
	contentHeight := m.height - 4 // top bar(1) + divider(1) + divider(1) + help(1)

	if m.showDetail && m.cursor < len(m.filtered) {
		sb.WriteString(ui.RenderDetailPage(m.filtered[m.cursor], m.width, contentHeight))
	} else {
		sb.WriteString(ui.RenderTable(m.filtered, m.cursor, m.width, contentHeight))
	}

	// ── Help footer ─────────────────────────────────────────────────────────
	sb.WriteString(ui.StyleDivider.Render(strings.Repeat("─", m.width)) + "\n")
	if m.searching {
		sb.WriteString("  search: " + m.searchInput.View() + "  " + ui.StyleHelp.Render("[Esc/Enter] done"))
	} else {
		sb.WriteString(ui.StyleHelp.Render(
			"[/]search  [t]tcp  [u]udp  [Enter]detail  [r]reload  [Esc]clear  [q]quit",
		))
	}

	return sb.String()
}
