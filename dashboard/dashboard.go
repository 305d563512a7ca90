// dashboard/dashboard.go
// Package dashboard provides the live terminal view of a running experiment.
// It wires one state store, one chart component, and one terminal surface
// into a Bubble Tea program, feeds window and mouse events back into the
// chart pipeline, and tears the pipeline down on every exit path.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/trialscope/internal/appconfig"
	"github.com/mwiater/trialscope/internal/chart"
	"github.com/mwiater/trialscope/internal/feed"
	"github.com/mwiater/trialscope/internal/logging"
	"github.com/mwiater/trialscope/internal/store"
	"github.com/mwiater/trialscope/internal/surface"
	"github.com/mwiater/trialscope/internal/trial"
)

// Config represents the shared application configuration for the dashboard.
type Config = appconfig.Config

// footerHeight is the number of rows reserved below the chart region.
const footerHeight = 4

// resizeBus fans drawable-region size changes out to subscribers. The UI
// loop publishes; the chart component consumes.
type resizeBus struct {
	mu   sync.Mutex
	subs map[int]func(width, height int)
	next int
}

func newResizeBus() *resizeBus {
	return &resizeBus{subs: map[int]func(width, height int){}}
}

// SubscribeResize registers a size-change listener and returns its unsubscribe.
func (b *resizeBus) SubscribeResize(fn func(width, height int)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *resizeBus) emit(width, height int) {
	b.mu.Lock()
	subs := make([]func(int, int), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()
	for _, fn := range subs {
		fn(width, height)
	}
}

// trialMsg is a message sent when the store publishes a new trial record.
type trialMsg *trial.TrialRecord

// feedDoneMsg is a message sent when the trial feed finishes or fails.
type feedDoneMsg struct{ err error }

// trialSelectedMsg is a message sent when the user clicks a chart row.
type trialSelectedMsg chart.ClickEvent

// tickMsg is a message sent at regular intervals, used for the elapsed timer.
type tickMsg time.Time

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx       context.Context
	cfg       *Config
	st        *store.Store
	term      *surface.Term
	component *chart.Component
	resizes   *resizeBus
	spinner   spinner.Model

	width, height int
	trials        int
	latest        *trial.TrialRecord
	selected      string
	feedDone      bool
	feedErr       error
	startTime     time.Time
	program       *tea.Program
	unsubStore    func()

	headerStyle lipgloss.Style
	footerStyle lipgloss.Style
	errorStyle  lipgloss.Style
}

// newModel creates and initializes a dashboard model around an already
// mounted chart component.
func newModel(ctx context.Context, cfg *Config, st *store.Store, term *surface.Term, component *chart.Component, resizes *resizeBus) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &model{
		ctx:         ctx,
		cfg:         cfg,
		st:          st,
		term:        term,
		component:   component,
		resizes:     resizes,
		spinner:     s,
		startTime:   time.Now(),
		headerStyle: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1),
		footerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the Bubble Tea model and starts the spinner and timer.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.teardown()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizes.emit(msg.Width, msg.Height-footerHeight)
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if idx, ok := m.term.DataIndexAt(msg.Y); ok {
				m.term.EmitClick(chart.ClickEvent{DataIndex: idx})
			}
		}
		return m, nil

	case trialMsg:
		if msg != nil {
			m.trials++
			m.latest = msg
		}
		return m, nil

	case trialSelectedMsg:
		trials := m.component.History().Trials()
		if msg.DataIndex >= 0 && msg.DataIndex < len(trials) {
			rec := trials[msg.DataIndex]
			m.selected = fmt.Sprintf("trial #%d: %s=%.4f, %ds", rec.TrialNo, rec.MetricName, rec.AvgReward, rec.Elapsed)
		}
		return m, nil

	case feedDoneMsg:
		m.feedDone = true
		m.feedErr = msg.err
		return m, nil

	case tickMsg:
		if m.feedDone {
			return m, nil
		}
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the chart frame above a status footer.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.term.View())
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.footerStyle.Render("q: quit  click: inspect trial"))
	return b.String()
}

// statusLine summarizes the run for the footer: trial counters while
// feeding, the early-stopping state when the record carries one, and the
// terminal feed outcome.
func (m *model) statusLine() string {
	if m.feedErr != nil {
		return m.errorStyle.Render(fmt.Sprintf("feed error: %v", m.feedErr))
	}
	if m.trials == 0 {
		if m.feedDone {
			return m.footerStyle.Render("feed finished with no trials")
		}
		timer := fmt.Sprintf("%.0f", time.Since(m.startTime).Seconds())
		return fmt.Sprintf("%s Waiting for trials... %ss", m.spinner.View(), timer)
	}

	parts := []string{fmt.Sprintf("trials: %d", m.trials)}
	if best := m.component.History().Best(); best != nil {
		parts = append(parts, fmt.Sprintf("best: %.4f (#%d)", best.AvgReward, best.TrialNo))
	}
	if m.latest != nil && m.latest.EarlyStopping != nil && m.latest.EarlyStopping.Status != nil {
		status := m.latest.EarlyStopping.Status
		parts = append(parts, fmt.Sprintf("no-improve: %d", status.NoImprovedTrials))
	}
	if m.feedDone {
		parts = append(parts, "feed finished")
	}
	line := m.headerStyle.Render(strings.Join(parts, "  "))
	if m.selected != "" {
		line += "  " + m.footerStyle.Render(m.selected)
	}
	return line
}

// teardown releases every pipeline registration exactly once. Unmount is
// idempotent, so both the quit key and the post-Run cleanup may call it.
func (m *model) teardown() {
	if m.unsubStore != nil {
		m.unsubStore()
		m.unsubStore = nil
	}
	m.component.Unmount()
}

// Run assembles the live dashboard around a trial source and blocks until
// the user quits. The store and the source are owned by the caller; the
// chart component and surface are owned by the dashboard and disposed on
// exit.
func Run(ctx context.Context, cfg *Config, st *store.Store, src feed.Source) error {
	if cfg == nil {
		return fmt.Errorf("dashboard needs a loaded configuration")
	}

	resizes := newResizeBus()
	term := surface.NewTerm(surface.Region{}, cfg.ThemeName())

	var m *model
	opts := []chart.Option{
		chart.WithClickHandler(func(ev chart.ClickEvent) {
			if m != nil && m.program != nil {
				m.program.Send(trialSelectedMsg(ev))
			}
		}),
	}
	if cfg.ShowLoading {
		opts = append(opts, chart.WithLoading(chart.LoadingOptions{Text: "Waiting for trials..."}))
	}

	component := chart.NewComponent(cfg.TrialConfig(), opts...)
	if err := component.Mount(term); err != nil {
		return fmt.Errorf("mount chart: %w", err)
	}
	component.BindStore(st)
	component.WatchResize(resizes)

	m = newModel(ctx, cfg, st, term, component, resizes)
	defer m.teardown()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.program = p

	m.unsubStore = st.Subscribe(func(s store.State) {
		p.Send(trialMsg(s.LatestTrial))
	})

	feedCtx, cancelFeed := context.WithCancel(ctx)
	defer cancelFeed()
	go func() {
		err := src.Run(feedCtx)
		if err != nil && feedCtx.Err() == nil {
			logging.LogEvent("feed stopped: %v", err)
		}
		p.Send(feedDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
