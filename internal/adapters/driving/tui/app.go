package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/drawwatch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/drawwatch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/drawwatch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

// DefaultRefresh is how often the dashboard re-reads state.
const DefaultRefresh = 30 * time.Second

// App is the live dashboard model.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	table   table.Model
	spinner spinner.Model
	help    help.Model

	refresh time.Duration

	view     *driving.SnapshotView
	statuses []driving.SourceStatus
	lastPoll *driving.PollReport
	err      error
	polling  bool
	updated  time.Time

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the dashboard.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = s.TableHeader
	ts.Selected = s.TableSelected
	t.SetStyles(ts)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		table:   t,
		spinner: sp,
		help:    help.New(),
		refresh: DefaultRefresh,
		width:   80,
	}, nil
}

// WithContext sets the context passed to service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithRefresh sets the refresh interval.
func (a *App) WithRefresh(d time.Duration) *App {
	if d > 0 {
		a.refresh = d
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadSnapshot(), a.loadStatus(), a.tick())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		case key.Matches(msg, a.keys.Refresh):
			return a, tea.Batch(a.loadSnapshot(), a.loadStatus())
		case key.Matches(msg, a.keys.Poll):
			if a.polling {
				return a, nil
			}
			a.polling = true
			return a, tea.Batch(a.poll(), a.spinner.Tick)
		}
		var cmd tea.Cmd
		a.table, cmd = a.table.Update(msg)
		return a, cmd

	case messages.Tick:
		return a, tea.Batch(a.loadSnapshot(), a.loadStatus(), a.tick())

	case messages.SnapshotLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.view = msg.View
			a.err = nil
		}
		a.updated = time.Now()
		a.rebuildRows()
		return a, nil

	case messages.StatusLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.statuses = msg.Statuses
		a.rebuildRows()
		return a, nil

	case messages.PollCompleted:
		a.polling = false
		a.lastPoll = msg.Report
		a.err = msg.Err
		return a, tea.Batch(a.loadSnapshot(), a.loadStatus())

	case spinner.TickMsg:
		if !a.polling {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	title := "drawwatch"
	if a.view != nil {
		title += " · " + a.view.AsOfDate.String()
	}
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(a.styles.Muted.Render(a.summary()))
	b.WriteString("\n\n")

	b.WriteString(a.styles.Border.Render(a.table.View()))
	b.WriteString("\n")

	b.WriteString(a.statusLine())
	b.WriteString("\n")

	if a.help.ShowAll {
		b.WriteString(a.help.FullHelpView([][]key.Binding{a.keys.FullHelp()}))
	} else {
		b.WriteString(a.help.ShortHelpView(a.keys.ShortHelp()))
	}
	return b.String()
}

// SetDimensions resizes the dashboard.
func (a *App) SetDimensions(width, height int) {
	a.width, a.height = width, height
	a.table.SetColumns(columns(width))
	if h := height - 8; h > 3 {
		a.table.SetHeight(h)
	}
	a.help.Width = width
}

// Rows returns the table rows currently shown.
func (a *App) Rows() []table.Row {
	return a.table.Rows()
}

// Err returns the last error shown.
func (a *App) Err() error {
	return a.err
}

// Polling reports whether a forced poll is in flight.
func (a *App) Polling() bool {
	return a.polling
}

func (a *App) summary() string {
	if a.view == nil {
		return "waiting for first snapshot"
	}
	s := fmt.Sprintf("%d/%d sources settled",
		len(a.view.SourcesWithResults), len(a.view.SourcesConsidered))
	if a.view.Stale {
		s += " (stale)"
	}
	return s
}

func (a *App) statusLine() string {
	switch {
	case a.polling:
		return a.spinner.View() + " polling..."
	case a.err != nil && errors.Is(a.err, domain.ErrNoResults):
		return a.styles.Warning.Render("no data yet")
	case a.err != nil:
		return a.styles.Error.Render("error: " + a.err.Error())
	case a.lastPoll != nil:
		return a.styles.Success.Render(fmt.Sprintf("last poll %s: %d fetched, %d settled",
			shortID(a.lastPoll.RunID), len(a.lastPoll.Eligible), len(a.lastPoll.NewlySettled)))
	case !a.updated.IsZero():
		return a.styles.Muted.Render("updated " + a.updated.Format(time.Kitchen))
	default:
		return ""
	}
}

// rebuildRows merges search state and results into table rows, in registry order.
func (a *App) rebuildRows() {
	statuses := a.statuses
	if len(statuses) == 0 {
		for _, src := range a.ports.Source.List() {
			statuses = append(statuses, driving.SourceStatus{Source: src})
		}
	}

	rows := make([]table.Row, 0, len(statuses))
	for _, st := range statuses {
		rows = append(rows, table.Row{
			st.Source.ID,
			st.Source.Name,
			st.Source.RawDrawTime,
			stateLabel(st),
			attempts(st.Search),
			a.results(st.Source.ID),
		})
	}
	a.table.SetRows(rows)
}

func (a *App) results(sourceID string) string {
	if a.view == nil {
		return ""
	}
	payload := a.view.Results[sourceID]
	names := make([]string, 0, len(payload))
	for name := range payload {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+payload[name].Numbers)
	}
	return strings.Join(parts, ", ")
}

func (a *App) loadSnapshot() tea.Cmd {
	ctx, svc := a.ctx, a.ports.Snapshot
	return func() tea.Msg {
		view, err := svc.Today(ctx)
		return messages.SnapshotLoaded{View: view, Err: err}
	}
}

func (a *App) loadStatus() tea.Cmd {
	ctx, svc := a.ctx, a.ports.Source
	return func() tea.Msg {
		statuses, err := svc.Status(ctx)
		return messages.StatusLoaded{Statuses: statuses, Err: err}
	}
}

func (a *App) poll() tea.Cmd {
	ctx, svc := a.ctx, a.ports.Snapshot
	return func() tea.Msg {
		report, err := svc.Poll(ctx)
		return messages.PollCompleted{Report: report, Err: err}
	}
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg {
		return messages.Tick{At: t}
	})
}

func columns(width int) []table.Column {
	fixed := 10 + 16 + 10 + 12 + 8
	result := width - fixed - 14
	if result < 20 {
		result = 20
	}
	return []table.Column{
		{Title: "Source", Width: 10},
		{Title: "Name", Width: 16},
		{Title: "Draw", Width: 10},
		{Title: "State", Width: 12},
		{Title: "Tries", Width: 8},
		{Title: "Result", Width: result},
	}
}

func stateLabel(st driving.SourceStatus) string {
	switch {
	case !st.Source.Valid:
		return "invalid"
	case st.Settled:
		return "settled"
	case st.Search != nil && st.Search.State == domain.SearchSearching:
		return "searching"
	case st.Search != nil && st.Search.State == domain.SearchStopped:
		return "stopped"
	case st.InWindow:
		return "due"
	default:
		return "waiting"
	}
}

func attempts(s *domain.ActiveSearch) string {
	if s == nil || s.Attempts == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", s.Attempts)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
