// dashboard/dashboard_test.go
package dashboard

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/trialscope/internal/appconfig"
	"github.com/mwiater/trialscope/internal/chart"
	"github.com/mwiater/trialscope/internal/store"
	"github.com/mwiater/trialscope/internal/surface"
	"github.com/mwiater/trialscope/internal/trial"
)

func newTestDashboard(t *testing.T) (*model, *store.Store) {
	t.Helper()
	cfg := &appconfig.Config{
		Experiment: appconfig.Experiment{MetricName: "auc", Direction: "max"},
	}
	st := store.New()
	resizes := newResizeBus()
	term := surface.NewTerm(surface.Region{Width: 80, Height: 20}, cfg.ThemeName())

	component := chart.NewComponent(cfg.TrialConfig())
	if err := component.Mount(term); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	component.BindStore(st)
	component.WatchResize(resizes)

	return newModel(context.Background(), cfg, st, term, component, resizes), st
}

func record(trialNo int, reward float64) *trial.TrialRecord {
	return &trial.TrialRecord{
		TrialNo:    trialNo,
		Models:     []trial.FoldResult{{Reward: reward, Fold: 0}},
		AvgReward:  reward,
		Elapsed:    90,
		MetricName: "auc",
	}
}

// TestUpdateAndView covers the dashboard state machine: the waiting state
// before the first trial, counter updates as records arrive through the
// store, and the finished-feed footer.
func TestUpdateAndView(t *testing.T) {
	m, st := newTestDashboard(t)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	if !strings.Contains(out, "Waiting for trials") {
		t.Fatalf("expected waiting state in view; got: %s", out)
	}

	st.Dispatch(store.Action{Kind: store.ActionUpdate, Data: record(1, 0.7)})
	m2, _ := m.Update(trialMsg(record(1, 0.7)))
	m = m2.(*model)
	if m.trials != 1 || m.latest == nil || m.latest.TrialNo != 1 {
		t.Fatalf("expected one counted trial; got trials=%d latest=%+v", m.trials, m.latest)
	}

	out = m.View()
	if !strings.Contains(out, "trials: 1") || !strings.Contains(out, "best: 0.7000 (#1)") {
		t.Fatalf("expected trial counters in view; got: %s", out)
	}
	if !strings.Contains(out, "#1") {
		t.Fatalf("expected chart row for trial 1; got: %s", out)
	}

	m2, _ = m.Update(feedDoneMsg{})
	m = m2.(*model)
	out = m.View()
	if !strings.Contains(out, "feed finished") {
		t.Fatalf("expected finished footer; got: %s", out)
	}
}

// TestClickSelectsTrial verifies the mouse path: a press on a chart row maps
// to a data index, flows through the surface's click registration, and lands
// in the footer as the selected trial.
func TestClickSelectsTrial(t *testing.T) {
	m, st := newTestDashboard(t)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	st.Dispatch(store.Action{Kind: store.ActionUpdate, Data: record(1, 0.7)})
	m2, _ := m.Update(trialMsg(record(1, 0.7)))
	m = m2.(*model)

	unsub := m.term.OnClick(func(ev chart.ClickEvent) {
		m2, _ := m.Update(trialSelectedMsg(ev))
		m = m2.(*model)
	})
	defer unsub()

	idx, ok := m.term.DataIndexAt(2)
	if !ok || idx != 0 {
		t.Fatalf("expected first data row at row 2; got idx=%d ok=%v", idx, ok)
	}

	_, _ = m.Update(tea.MouseMsg{Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !strings.Contains(m.selected, "trial #1") {
		t.Fatalf("expected selected trial in footer; got %q", m.selected)
	}
}

// TestQuitTearsDown verifies that the quit key unmounts the component,
// disposes the surface, and detaches the store subscription.
func TestQuitTearsDown(t *testing.T) {
	m, st := newTestDashboard(t)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	before := m.term.View()
	st.Dispatch(store.Action{Kind: store.ActionUpdate, Data: record(1, 0.7)})
	if m.term.View() != before {
		t.Fatal("expected no renders after teardown")
	}
	if err := m.term.SetOption(chart.Options{}, true, true); err == nil {
		t.Fatal("expected disposed surface to reject SetOption")
	}
}
