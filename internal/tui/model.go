// Package tui is the interactive terminal shell over the verba facade: a
// single input line that either ingests a locator or looks up a stored
// ranking, with the three outcomes a caller must distinguish rendered as
// results, a not-found notice, or an error notice.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tomeworks/verba/pkg/verba/internalerr"
	"github.com/tomeworks/verba/pkg/verba/report"
	"github.com/tomeworks/verba/pkg/verba/store"
)

// Port is the TUI-facing subset of the verba facade.
type Port interface {
	Ingest(ctx context.Context, locator string) (report.Report, error)
	Lookup(ctx context.Context, title string) ([]store.WordCount, error)
	Documents(ctx context.Context, limit int) ([]store.Doc, error)
}

type mode int

const (
	modeIngest mode = iota
	modeLookup
)

func (m mode) label() string {
	if m == modeIngest {
		return "ingest"
	}
	return "lookup"
}

func (m mode) placeholder() string {
	if m == modeIngest {
		return "Locator to ingest, e.g. https://example.com/moby.txt"
	}
	return "Title to look up, e.g. Moby Dick"
}

// Messages produced by the async commands.
type (
	ingestDoneMsg struct {
		report report.Report
		err    error
	}
	lookupDoneMsg struct {
		title   string
		ranking []store.WordCount
		err     error
	}
	documentsMsg struct {
		docs []store.Doc
		err  error
	}
)

// Model is the Bubble Tea model for the verba terminal shell.
type Model struct {
	svc      Port
	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	mode     mode
	busy     bool
	ready    bool
	status   string
}

// New creates the TUI model.
func New(svc Port) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = modeIngest.placeholder()
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return Model{
		svc:      svc,
		input:    ti,
		viewport: viewport.New(0, 0),
		spin:     sp,
		mode:     modeIngest,
		status:   "Tab switches ingest/lookup. Enter runs. Ctrl+C quits.",
	}
}

// Init starts the cursor blink and loads the recent documents.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadDocuments())
}

// Update handles key, window, and completion events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frameH := resultBoxStyle.GetFrameSize()
		_, inputH := inputBoxStyle.GetFrameSize()
		reserved := 2 + inputH + 2 // title bar, mode line, input frame, status, spacer
		vh := msg.Height - reserved - frameH
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = vh
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			if !m.busy {
				m.mode = m.toggledMode()
				m.input.Placeholder = m.mode.placeholder()
				m.status = "Mode: " + m.mode.label()
			}
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			m.busy = true
			if m.mode == modeIngest {
				m.status = "Ingesting " + value
				return m, tea.Batch(m.spin.Tick, m.startIngest(value))
			}
			m.status = "Looking up " + value
			return m, tea.Batch(m.spin.Tick, m.startLookup(value))
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case ingestDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Ingest failed: " + errorLabel(msg.err)
			m.viewport.SetContent(errorStyle.Render(msg.err.Error()))
			return m, nil
		}
		m.status = fmt.Sprintf("Ingested %q (%d tokens)", msg.report.Title, msg.report.TokenCount)
		m.viewport.SetContent(renderReport(msg.report))
		m.input.SetValue("")
		return m, nil

	case lookupDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Lookup failed: " + errorLabel(msg.err)
			if errors.Is(msg.err, internalerr.ErrNotFound) {
				m.viewport.SetContent(noticeStyle.Render(fmt.Sprintf("No document titled %q.", msg.title)))
			} else {
				m.viewport.SetContent(errorStyle.Render(msg.err.Error()))
			}
			return m, nil
		}
		m.status = fmt.Sprintf("Ranking for %q", msg.title)
		m.viewport.SetContent(renderRanking(msg.title, msg.ranking))
		m.input.SetValue("")
		return m, nil

	case documentsMsg:
		if msg.err == nil {
			m.viewport.SetContent(renderDocuments(msg.docs))
			m.status = fmt.Sprintf("%d documents in the library.", len(msg.docs))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the full layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := titleStyle.Render("verba")
	modeLine := modeStyle.Render("mode: " + m.mode.label())
	results := resultBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())

	status := m.status
	if m.busy {
		status = m.spin.View() + " " + status
	}

	return title + "  " + modeLine + "\n" + results + "\n" + input + "\n" + statusStyle.Render(status)
}

func (m Model) toggledMode() mode {
	if m.mode == modeIngest {
		return modeLookup
	}
	return modeIngest
}

func (m Model) startIngest(locator string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		r, err := svc.Ingest(context.Background(), locator)
		return ingestDoneMsg{report: r, err: err}
	}
}

func (m Model) startLookup(title string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ranking, err := svc.Lookup(context.Background(), title)
		return lookupDoneMsg{title: title, ranking: ranking, err: err}
	}
}

func (m Model) loadDocuments() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		docs, err := svc.Documents(context.Background(), 20)
		return documentsMsg{docs: docs, err: err}
	}
}

// errorLabel maps the pipeline's error kinds onto short notice labels.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, internalerr.ErrNotFound):
		return "not found"
	case errors.Is(err, internalerr.ErrFetch):
		return "fetch failed"
	case errors.Is(err, internalerr.ErrDecode):
		return "not a text document"
	case errors.Is(err, internalerr.ErrStorage):
		return "storage failure"
	case errors.Is(err, internalerr.ErrInvalidInput):
		return "invalid input"
	default:
		return "error"
	}
}

func renderReport(r report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render(r.Title))
	fmt.Fprintf(&b, "%s\n\n", faintStyle.Render(r.Locator))
	b.WriteString(renderRows(r.Ranking))
	fmt.Fprintf(&b, "\n%s", faintStyle.Render(fmt.Sprintf("%d tokens, receipt %s", r.TokenCount, r.ID)))
	return b.String()
}

func renderRanking(title string, ranking []store.WordCount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headingStyle.Render(title))
	b.WriteString(renderRows(ranking))
	return b.String()
}

func renderRows(ranking []store.WordCount) string {
	if len(ranking) == 0 {
		return noticeStyle.Render("No stored words for this document.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", faintStyle.Render(fmt.Sprintf("%3s  %-24s %6s", "#", "word", "count")))
	for i, wc := range ranking {
		fmt.Fprintf(&b, "%3d  %-24s %6d\n", i+1, wc.Word, wc.Count)
	}
	return b.String()
}

func renderDocuments(docs []store.Doc) string {
	if len(docs) == 0 {
		return noticeStyle.Render("Library is empty. Ingest a locator to get started.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headingStyle.Render("Recent documents"))
	for _, d := range docs {
		fmt.Fprintf(&b, "%s\n%s\n", d.Title, faintStyle.Render("  "+d.Locator))
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	modeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headingStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
