// internal/surface/term.go
package surface

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mwiater/trialscope/internal/chart"
	"github.com/mwiater/trialscope/internal/util"
)

const (
	minBarWidth   = 4
	labelGutter   = 2
	headerLines   = 2
	defaultWidth  = 80
	defaultHeight = 24
)

var seriesPalette = []lipgloss.Color{"205", "39", "214", "40", "135", "203"}

// Term renders chart options into a text frame for a terminal region. It is
// safe for concurrent use; updates arriving from a feed goroutine and reads
// from the UI loop are serialized internally.
type Term struct {
	mu          sync.Mutex
	width       int
	height      int
	opts        chart.Options
	frame       string
	loading     bool
	loadingOpts chart.LoadingOptions
	disposed    bool
	firstRow    int

	clickSubs  map[int]func(chart.ClickEvent)
	updateSubs map[int]func()
	nextSub    int

	titleStyle  lipgloss.Style
	legendStyle lipgloss.Style
	labelStyle  lipgloss.Style
	barStyle    lipgloss.Style
	dimStyle    lipgloss.Style
}

// NewTerm binds a surface to a drawable region. The required rendering
// modules are registered once, before first use.
func NewTerm(region Region, theme string) *Term {
	RegisterModules(chart.RequiredModules)

	width := region.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := region.Height
	if height <= 0 {
		height = defaultHeight
	}

	t := &Term{
		width:      width,
		height:     height,
		clickSubs:  map[int]func(chart.ClickEvent){},
		updateSubs: map[int]func(){},
	}
	t.applyTheme(theme)
	return t
}

func (t *Term) applyTheme(theme string) {
	accent := lipgloss.Color("62")
	dim := lipgloss.Color("244")
	if theme == "light" {
		accent = lipgloss.Color("25")
		dim = lipgloss.Color("240")
	}
	t.titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.legendStyle = lipgloss.NewStyle().Foreground(dim)
	t.labelStyle = lipgloss.NewStyle().Bold(true)
	t.barStyle = lipgloss.NewStyle().Foreground(accent)
	t.dimStyle = lipgloss.NewStyle().Foreground(dim)
}

// SetOption applies a full options structure and redraws the frame. The
// terminal surface always redraws from scratch, so merge semantics reduce
// to a replace either way. A non-silent update notifies update subscribers.
func (t *Term) SetOption(opts chart.Options, replaceMerge, silent bool) error {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return errors.New("surface disposed")
	}
	t.opts = opts
	t.render()
	var subs []func()
	if !silent {
		subs = make([]func(), 0, len(t.updateSubs))
		for _, fn := range t.updateSubs {
			subs = append(subs, fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// OnClick registers a click handler and returns its unsubscribe.
func (t *Term) OnClick(fn func(chart.ClickEvent)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextSub
	t.nextSub++
	t.clickSubs[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.clickSubs, id)
	}
}

// OnUpdate registers a redraw listener, invoked after every non-silent
// SetOption, and returns its unsubscribe.
func (t *Term) OnUpdate(fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextSub
	t.nextSub++
	t.updateSubs[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.updateSubs, id)
	}
}

// Resize re-lays-out the frame for a new region size.
func (t *Term) Resize(width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return errors.New("surface disposed")
	}
	if width > 0 {
		t.width = width
	}
	if height > 0 {
		t.height = height
	}
	t.render()
	return nil
}

// ShowLoading overlays the loading indicator until HideLoading is called.
func (t *Term) ShowLoading(opts chart.LoadingOptions) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return
	}
	t.loading = true
	t.loadingOpts = opts
	t.render()
}

// HideLoading removes the loading overlay.
func (t *Term) HideLoading() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return
	}
	t.loading = false
	t.render()
}

// Dispose releases the frame buffer and all handler registrations. It is
// idempotent; a disposed surface rejects further SetOption and Resize calls.
func (t *Term) Dispose() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return nil
	}
	t.disposed = true
	t.frame = ""
	t.clickSubs = map[int]func(chart.ClickEvent){}
	t.updateSubs = map[int]func(){}
	return nil
}

// View returns the last rendered frame.
func (t *Term) View() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// EmitClick delivers a click event to every registered handler. The UI loop
// calls this after mapping a mouse position to a data index.
func (t *Term) EmitClick(ev chart.ClickEvent) {
	t.mu.Lock()
	subs := make([]func(chart.ClickEvent), 0, len(t.clickSubs))
	for _, fn := range t.clickSubs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// DataIndexAt maps a frame row (0-based, relative to the frame top) to the
// index of the trial rendered there. The second return is false for header
// rows or rows past the data.
func (t *Term) DataIndexAt(row int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loading || row < headerLines {
		return 0, false
	}
	idx := t.firstRow + (row - headerLines)
	if len(t.opts.XAxis) == 0 || idx >= len(t.opts.XAxis[0].Data) {
		return 0, false
	}
	return idx, true
}

// render rebuilds the frame from the current options. Callers hold t.mu.
func (t *Term) render() {
	if t.loading {
		text := t.loadingOpts.Text
		if text == "" {
			text = "Loading..."
		}
		t.frame = "\n  " + t.dimStyle.Render(text) + "\n"
		return
	}

	var b strings.Builder
	title := t.opts.Title.Text
	if title == "" {
		title = "Chart"
	}
	b.WriteString(t.titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(t.legendStyle.Render(t.legendLine()))
	b.WriteString("\n")

	labels := []string{}
	if len(t.opts.XAxis) > 0 {
		labels = t.opts.XAxis[0].Data
	}
	if len(labels) == 0 {
		b.WriteString(t.dimStyle.Render("  (no trials yet)"))
		t.firstRow = 0
		t.frame = clampFrame(b.String(), t.width)
		return
	}

	// Keep the most recent trials visible when the history outgrows the
	// region height.
	visible := util.Max(t.height-headerLines-1, 1)
	t.firstRow = util.Max(len(labels)-visible, 0)

	barSeries, valueSeries := t.splitSeries()
	maxBar := 0.0
	if barSeries != nil {
		for _, v := range barSeries.Data {
			if v > maxBar {
				maxBar = v
			}
		}
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = util.Max(labelWidth, len(l))
	}
	barWidth := util.Max(util.Min(t.width/4, 20), minBarWidth)

	for i := t.firstRow; i < len(labels); i++ {
		b.WriteString(t.labelStyle.Render(util.PadRight(labels[i], labelWidth+labelGutter)))
		if barSeries != nil && i < len(barSeries.Data) {
			b.WriteString(t.barStyle.Render(bar(barSeries.Data[i], maxBar, barWidth)))
			b.WriteString(t.dimStyle.Render(fmt.Sprintf(" %3.0fm ", barSeries.Data[i])))
		}
		for si, s := range valueSeries {
			if i >= len(s.Data) {
				continue
			}
			style := lipgloss.NewStyle().Foreground(seriesPalette[si%len(seriesPalette)])
			b.WriteString(style.Render(fmt.Sprintf(" %s%.4f", seriesGlyph(s.Type), s.Data[i])))
		}
		b.WriteString("\n")
	}

	t.frame = clampFrame(strings.TrimRight(b.String(), "\n"), t.width)
}

// clampFrame truncates every frame line to the region width without
// splitting escape sequences.
func clampFrame(frame string, width int) string {
	lines := strings.Split(frame, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}

func (t *Term) legendLine() string {
	if len(t.opts.Legend.Data) == 0 {
		return ""
	}
	parts := make([]string, 0, len(t.opts.Series))
	for _, s := range t.opts.Series {
		parts = append(parts, seriesGlyph(s.Type)+s.Name)
	}
	return strings.Join(parts, "  ")
}

func (t *Term) splitSeries() (*chart.Series, []chart.Series) {
	var barSeries *chart.Series
	var rest []chart.Series
	for i := range t.opts.Series {
		s := t.opts.Series[i]
		if s.Type == chart.SeriesBar && barSeries == nil {
			barSeries = &t.opts.Series[i]
			continue
		}
		rest = append(rest, s)
	}
	return barSeries, rest
}

func bar(value, max float64, width int) string {
	if max <= 0 {
		return strings.Repeat("·", 1)
	}
	filled := int(value / max * float64(width))
	if filled <= 0 && value > 0 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
}

func seriesGlyph(seriesType string) string {
	switch seriesType {
	case chart.SeriesBar:
		return "▇"
	case chart.SeriesScatter:
		return "●"
	default:
		return "─"
	}
}
