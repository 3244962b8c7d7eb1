package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/prefs"
	"github.com/jask/propdesk/internal/service"
	"github.com/jask/propdesk/internal/store"
)

func (a *App) handlePropertiesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.query.Focused() {
		switch m.String() {
		case "enter":
			a.query.Blur()
			return a, a.runSearch()
		case "esc":
			a.query.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.query, cmd = a.query.Update(m)
		return a, cmd
	}
	st := a.store.Snapshot()
	switch m.String() {
	case "/":
		return a, a.query.Focus()
	case "f":
		a.modal = modalFilters
		a.form.set(st.Filters)
		return a, a.form.open()
	case "x":
		a.store.Clear()
		a.query.SetValue("")
		a.form.reset()
		a.cursor = 0
		a.suggestions = nil
		a.status = "search cleared"
	case "r":
		return a, a.runSearch()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(st.Results)-1 {
			a.cursor++
		}
	case "enter":
		if len(st.Results) == 0 {
			return a, nil
		}
		return a, a.openProperty(st.Results[a.cursor])
	}
	return a, nil
}

// runSearch starts a store search from the current query and form. The
// delay runs inside the returned command.
func (a *App) runSearch() tea.Cmd {
	filters, err := a.form.parse()
	if err != nil {
		a.status = "error: " + err.Error()
		return nil
	}
	ticket := a.store.BeginSearch(strings.TrimSpace(a.query.Value()), filters)
	a.status = ""
	return a.searchCmd(ticket)
}

func (a *App) searchCmd(t store.Ticket) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg(a.store.Resolve(a.ctx, t))
	}
}

func (a *App) finishSearch(c store.Completion) tea.Cmd {
	if !a.store.Complete(c) {
		return nil
	}
	st := a.store.Snapshot()
	a.cursor = 0
	a.suggestions = nil
	a.searchedAt = time.Now()
	if st.Error != "" {
		return nil
	}
	if len(st.Results) == 0 && st.Query != "" {
		a.suggestions = service.Suggest(st.Query, a.propertyNames(), 3)
	}
	return a.saveSearchCmd(prefs.LastSearch{Query: st.Query, Filters: st.Filters})
}

func (a *App) saveSearchCmd(s prefs.LastSearch) tea.Cmd {
	return func() tea.Msg {
		if err := prefs.SaveLastSearch(a.prefsDir, s); err != nil {
			return errMsg{fmt.Errorf("save last search: %w", err)}
		}
		return nil
	}
}

func (a *App) propertyNames() []string {
	src := a.store.Source()
	names := make([]string, 0, len(src))
	for _, p := range src {
		names = append(names, p.Name)
	}
	return names
}

func (a *App) renderProperties() string {
	st := a.store.Snapshot()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Property Search") + "\n")
	b.WriteString(a.query.View() + "\n")
	fmt.Fprintf(&b, "Filters: %d active\n\n", st.Filters.Active())

	switch {
	case st.Loading:
		b.WriteString("Searching...\n")
	case st.Error != "":
		b.WriteString(errorStyle.Render(st.Error) + "\n")
	case !st.Searched():
		b.WriteString("Start your property search\n")
		b.WriteString(subtleStyle.Render("Press / to type a query, f to set filters, enter to search.") + "\n")
	case len(st.Results) == 0:
		b.WriteString("No properties found\n")
		b.WriteString(subtleStyle.Render("Try adjusting your search criteria or filters.") + "\n")
		if len(a.suggestions) > 0 {
			fmt.Fprintf(&b, "Did you mean: %s?\n", strings.Join(a.suggestions, ", "))
		}
	default:
		fmt.Fprintf(&b, "Found %d properties matching %s", len(st.Results), store.Describe(st.Query, st.Filters))
		if !a.searchedAt.IsZero() {
			b.WriteString(subtleStyle.Render(" at " + a.searchedAt.In(a.tz).Format("15:04:05")))
		}
		b.WriteString("\n")
		for i, p := range st.Results {
			b.WriteString(a.propertyLine(p, i == a.cursor) + "\n")
		}
	}
	b.WriteString("\n[/] Search  [f] Filters  [r] Re-run  [x] Clear  [enter] Details")
	return b.String()
}

func (a *App) propertyLine(p *repository.Property, selected bool) string {
	marker := " "
	name := fmt.Sprintf("%-20s", p.Name)
	if selected {
		marker = "▶"
		name = cursorStyle.Render(name)
	}
	rooms := fmt.Sprintf("%s bd / %s ba", optInt(p.Bedrooms), optInt(p.Bathrooms))
	return fmt.Sprintf("%s %s %-40s %-11s %12s  %-14s %s sqft  %s",
		marker, name, p.Address, statusLabel(string(p.Type)), money(a.currency, p.Price),
		rooms, number(p.Sqft), badge(string(p.Status)))
}
