package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tickrate/internal/config"
	"github.com/jask/tickrate/internal/converter"
	"github.com/jask/tickrate/internal/logging"
	"github.com/jask/tickrate/internal/service"
	"github.com/jask/tickrate/internal/stopwatch"
)

// App ties together the stopwatch and converter views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	logger   *slog.Logger
	services Services
	state    appState
	keys     keyMap
	help     help.Model
	status   string

	watch *stopwatch.Stopwatch

	form          converter.Form
	amount        textinput.Model
	focus         focusField
	cancelConvert context.CancelFunc
}

type Services struct {
	Converter *converter.Service
	// Recorder is optional; a nil recorder disables the journal.
	Recorder *service.Recorder
}

type appState string

const (
	viewStopwatch appState = "stopwatch"
	viewConverter appState = "converter"
)

type focusField int

const (
	focusAmount focusField = iota
	focusFrom
	focusTo
	focusCount
)

func (f focusField) shift(delta int) focusField {
	return focusField(((int(f)+delta)%int(focusCount) + int(focusCount)) % int(focusCount))
}

func (f focusField) currency() converter.Field {
	if f == focusTo {
		return converter.FieldTo
	}
	return converter.FieldFrom
}

func New(ctx context.Context, cfg config.Config, services Services, logger *slog.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	layout, err := stopwatch.ParseLayout(cfg.Stopwatch.Layout)
	if err != nil {
		logger.Warn("unknown stopwatch layout, using default", "layout", cfg.Stopwatch.Layout)
		layout = stopwatch.LayoutCentiseconds
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Enter amount"
	ti.CharLimit = 32
	ti.Width = 20

	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		services: services,
		state:    viewStopwatch,
		keys:     defaultKeys(),
		help:     help.New(),
		watch:    stopwatch.New(cfg.Stopwatch.TickInterval, layout),
		form:     converter.NewForm(cfg.Converter.DefaultFrom, cfg.Converter.DefaultTo, nil),
		amount:   ti,
	}
	if cfg.UI.StartView == string(viewConverter) {
		a.showConverter()
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadCurrencies())
}

// Close releases the tick source and abandons any conversion in flight.
func (a *App) Close() {
	a.watch.Close()
	a.cancelInFlight()
}

// messages
type tickMsg struct{ timerID uint64 }

type convertDoneMsg struct{ outcome converter.Outcome }

type currenciesMsg struct {
	list []string
	err  error
}

type statusMsg string

type errMsg struct{ error }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case tickMsg:
		if a.watch.Tick(m.timerID) {
			return a, waitTick(a.watch.Timer())
		}
		return a, nil
	case convertDoneMsg:
		if !a.form.Accepts(m.outcome) {
			a.logger.Debug("dropping stale conversion", "seq", m.outcome.Seq, "pending", a.form.Pending)
			return a, nil
		}
		a.cancelInFlight()
		a.form = a.form.Resolve(m.outcome)
		return a, a.recordConversion(m.outcome)
	case currenciesMsg:
		a.form = a.form.WithCurrencies(m.list, m.err)
		return a, nil
	case statusMsg:
		a.status = string(m)
		return a, nil
	case errMsg:
		a.logger.Error("tui", "err", m.error)
		a.status = "error: " + m.Error()
		return a, nil
	}

	var cmd tea.Cmd
	a.amount, cmd = a.amount.Update(msg)
	return a, cmd
}

func (a *App) editing() bool {
	return a.state == viewConverter && a.focus == focusAmount
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.Close()
		return a, tea.Quit
	case key.Matches(m, a.keys.NextView):
		if a.state == viewStopwatch {
			return a, a.showConverter()
		}
		a.showStopwatch()
		return a, nil
	}
	if !a.editing() {
		switch {
		case key.Matches(m, a.keys.QuitIdle):
			a.Close()
			return a, tea.Quit
		case key.Matches(m, a.keys.ShowStopwatch):
			a.showStopwatch()
			return a, nil
		case key.Matches(m, a.keys.ShowConverter):
			return a, a.showConverter()
		}
	}
	if a.state == viewConverter {
		return a.handleConverterKey(m)
	}
	return a.handleStopwatchKey(m)
}

func (a *App) showStopwatch() {
	a.state = viewStopwatch
	a.amount.Blur()
}

func (a *App) showConverter() tea.Cmd {
	a.state = viewConverter
	if a.focus == focusAmount {
		return a.amount.Focus()
	}
	return nil
}

func (a *App) handleStopwatchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Toggle):
		if t := a.watch.Toggle(); t != nil {
			return a, waitTick(t)
		}
	case key.Matches(m, a.keys.Reset):
		return a, a.recordSession(a.watch.Reset())
	}
	return a, nil
}

func (a *App) handleConverterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Convert):
		return a, a.startConvert()
	case key.Matches(m, a.keys.NextField):
		return a, a.setFocus(a.focus.shift(1))
	case key.Matches(m, a.keys.PrevField):
		return a, a.setFocus(a.focus.shift(-1))
	case key.Matches(m, a.keys.SwapAny):
		a.form = a.form.Swap()
		return a, nil
	}

	if a.focus == focusAmount {
		var cmd tea.Cmd
		a.amount, cmd = a.amount.Update(m)
		a.form = a.form.SetAmount(a.amount.Value())
		return a, cmd
	}

	switch {
	case key.Matches(m, a.keys.Swap):
		a.form = a.form.Swap()
	case key.Matches(m, a.keys.Prev):
		a.form = a.form.Cycle(a.focus.currency(), -1)
	case key.Matches(m, a.keys.Next):
		a.form = a.form.Cycle(a.focus.currency(), 1)
	}
	return a, nil
}

func (a *App) setFocus(f focusField) tea.Cmd {
	a.focus = f
	if f == focusAmount {
		return a.amount.Focus()
	}
	a.amount.Blur()
	return nil
}

// commands

func waitTick(t *stopwatch.Timer) tea.Cmd {
	if t == nil {
		return nil
	}
	id := t.ID()
	c := t.C()
	return func() tea.Msg {
		if _, ok := <-c; !ok {
			return nil
		}
		return tickMsg{timerID: id}
	}
}

func (a *App) cancelInFlight() {
	if a.cancelConvert != nil {
		a.cancelConvert()
		a.cancelConvert = nil
	}
}

// startConvert begins a new attempt. The previous attempt, if any, is
// cancelled and its outcome will be dropped.
func (a *App) startConvert() tea.Cmd {
	a.cancelInFlight()
	form, req, err := a.form.SetAmount(a.amount.Value()).Begin()
	a.form = form
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelConvert = cancel
	svc := a.services.Converter
	return func() tea.Msg {
		return convertDoneMsg{outcome: svc.Convert(ctx, req)}
	}
}

func (a *App) loadCurrencies() tea.Cmd {
	svc := a.services.Converter
	ctx := a.ctx
	return func() tea.Msg {
		list, err := svc.LoadCurrencies(ctx)
		return currenciesMsg{list: list, err: err}
	}
}

func (a *App) recordConversion(o converter.Outcome) tea.Cmd {
	rec := a.services.Recorder
	if !rec.Enabled() || o.Err != nil {
		return nil
	}
	ctx := a.ctx
	variant := a.services.Converter.Variant()
	return func() tea.Msg {
		if err := rec.RecordConversion(ctx, variant, o); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (a *App) recordSession(elapsedMs int64) tea.Cmd {
	rec := a.services.Recorder
	if !rec.Enabled() || elapsedMs <= 0 {
		return nil
	}
	ctx := a.ctx
	shown := a.watch.Layout().Format(elapsedMs)
	return func() tea.Msg {
		if err := rec.RecordSession(ctx, elapsedMs); err != nil {
			return errMsg{err}
		}
		return statusMsg("session saved: " + shown)
	}
}
