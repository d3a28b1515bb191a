package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) View() string {
	var body string
	var keys help.KeyMap
	switch a.state {
	case viewConverter:
		body = a.renderConverter()
		keys = converterHelp{a.keys}
	default:
		body = a.renderStopwatch()
		keys = stopwatchHelp{a.keys}
	}

	parts := []string{a.renderTabs(), body}
	if a.status != "" {
		parts = append(parts, statusStyle.Render(a.status))
	}
	parts = append(parts, a.help.View(keys))
	return appStyle.Render(strings.Join(parts, "\n\n"))
}

func (a *App) renderTabs() string {
	tab := func(label string, s appState) string {
		if a.state == s {
			return activeTabStyle.Render(label)
		}
		return inactiveTabStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("tickrate "),
		tab("1 Stopwatch", viewStopwatch),
		tab("2 Converter", viewConverter),
	)
}

func (a *App) renderStopwatch() string {
	st := a.watch.State()
	style, action := pausedStyle, "Start"
	if st.Running {
		style, action = runningStyle, "Pause"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stopwatch"))
	b.WriteString("\n")
	b.WriteString(style.Render(a.watch.Display()))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("[space] %s   [r] Reset", action)))
	return b.String()
}

func (a *App) renderConverter() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Currency Converter"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Amount") + a.amount.View() + "\n")
	b.WriteString(labelStyle.Render("From") + a.renderSelector(a.form.From, a.focus == focusFrom) + "\n")
	b.WriteString(labelStyle.Render("To") + a.renderSelector(a.form.To, a.focus == focusTo) + "\n")
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("[ctrl+x] Swap Currencies   [enter] Convert"))

	switch {
	case a.form.Busy():
		b.WriteString("\n\n" + pendingStyle.Render("converting..."))
	case a.form.Err != "":
		b.WriteString("\n\n" + errorStyle.Render(a.form.Err))
	case a.form.HasResult:
		b.WriteString("\n\n" + resultStyle.Render(fmt.Sprintf("Converted Value: %s %s", a.form.Converted, a.form.To)))
	}
	if a.form.LoadErr != "" {
		b.WriteString("\n" + errorStyle.Render(a.form.LoadErr))
	}
	return b.String()
}

func (a *App) renderSelector(code string, focused bool) string {
	if focused {
		return focusedSelectorStyle.Render("‹ " + code + " ›")
	}
	return selectorStyle.Render("  " + code + "  ")
}
