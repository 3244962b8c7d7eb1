package tui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/propdesk/internal/config"
	"github.com/jask/propdesk/internal/database"
	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/prefs"
	"github.com/jask/propdesk/internal/service"
	"github.com/jask/propdesk/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenCatalog(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	rows, err := repository.NewPropertyRepo(db).List(ctx)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(store.FromRows(rows), store.WithDelay(0), store.WithLogger(logger))

	cfg := config.Config{
		UI:    config.UIConfig{CurrencySymbol: "$", DateFormat: "2006-01-02", Timezone: "UTC"},
		Prefs: config.PrefsConfig{Dir: t.TempDir()},
	}
	services := Services{
		Financials: &service.FinancialService{Expenses: repository.NewExpenseRepo(db)},
		History: &service.HistoryService{
			Maintenance:  repository.NewMaintenanceRepo(db),
			Documents:    repository.NewDocumentRepo(db),
			Tenants:      repository.NewTenantRepo(db),
			Applications: repository.NewApplicationRepo(db),
		},
		Clients: &service.ClientService{Clients: repository.NewClientRepo(db)},
	}
	a := New(ctx, cfg, st, services, logger)
	run(t, a, a.Init())
	return a
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and discards the returned command (cursor blinks etc).
func press(a *App, keys ...string) {
	for _, k := range keys {
		a.Update(key(k))
	}
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// run executes cmd and feeds its messages back into the app, following
// any commands those produce.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(t, a, c)
		}
		return
	}
	if msg == nil {
		return
	}
	_, next := a.Update(msg)
	run(t, a, next)
}

// sendKey sends a key and runs the resulting command.
func sendKey(t *testing.T, a *App, k string) {
	t.Helper()
	_, cmd := a.Update(key(k))
	run(t, a, cmd)
}

func search(t *testing.T, a *App, query string) {
	t.Helper()
	press(a, "/")
	a.query.SetValue(query)
	sendKey(t, a, "enter")
}

func TestQuerySearchShowsResults(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	require.Contains(t, a.View(), "Start your property search")

	press(a, "/")
	typeText(a, "loft")
	require.Equal(t, "loft", a.query.Value())
	sendKey(t, a, "enter")

	st := a.store.Snapshot()
	require.False(t, st.Loading)
	require.Len(t, st.Results, 1)
	view := a.View()
	require.Contains(t, view, `Found 1 properties matching "loft"`)
	require.Contains(t, view, "Downtown Loft")
	require.Contains(t, view, "$675,000")

	saved, err := prefs.LoadLastSearch(a.prefsDir)
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, "loft", saved.Query)
}

func TestLoadingShownUntilCompletion(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	press(a, "/")
	a.query.SetValue("sunset")
	_, cmd := a.Update(key("enter"))
	require.True(t, a.store.Snapshot().Loading)
	require.Contains(t, a.View(), "Searching...")
	run(t, a, cmd)
	require.NotContains(t, a.View(), "Searching...")
}

func TestStaleSearchIgnored(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	a.query.SetValue("sunset")
	first := a.runSearch()
	a.query.SetValue("loft")
	second := a.runSearch()

	newer := second()
	older := first()
	a.Update(newer)
	a.Update(older)
	st := a.store.Snapshot()
	require.Len(t, st.Results, 1)
	require.Equal(t, "Downtown Loft", st.Results[0].Name)
}

func TestNoResultsSuggestsNames(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	search(t, a, "sunsett")
	view := a.View()
	require.Contains(t, view, "No properties found")
	require.Contains(t, view, "Did you mean: Sunset Apartments?")
	require.NotContains(t, view, "Start your property search")
}

func TestFilterModalAppliesCriteria(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	press(a, "f")
	require.Equal(t, modalFilters, a.modal)
	require.Contains(t, a.View(), "Min price")

	typeText(a, "house")
	sendKey(t, a, "enter")
	require.Equal(t, modalNone, a.modal)

	st := a.store.Snapshot()
	require.Equal(t, repository.TypeHouse, st.Filters.Type)
	require.Len(t, st.Results, 1)
	require.Equal(t, "Family House", st.Results[0].Name)
	require.Contains(t, a.View(), "Filters: 1 active")
}

func TestFilterModalRejectsBadInput(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	press(a, "f", "tab", "tab")
	typeText(a, "cheap")
	_, cmd := a.Update(key("enter"))
	require.Nil(t, cmd)
	require.Equal(t, modalFilters, a.modal)
	require.Contains(t, a.status, "min price")

	press(a, "esc")
	require.Equal(t, modalNone, a.modal)
	require.Nil(t, a.store.Snapshot().Results)
}

func TestMinPriceFilterKeepsOrder(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	press(a, "f", "tab", "tab")
	typeText(a, "500,000")
	sendKey(t, a, "enter")
	st := a.store.Snapshot()
	require.Len(t, st.Results, 2)
	require.Equal(t, int64(675000), st.Results[0].Price)
	require.Equal(t, int64(850000), st.Results[1].Price)
}

func TestClearResetsSearch(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	search(t, a, "loft")
	press(a, "x")
	st := a.store.Snapshot()
	require.Equal(t, "", st.Query)
	require.Nil(t, st.Results)
	require.Equal(t, "", a.query.Value())
	require.Contains(t, a.View(), "Start your property search")
}

func TestDetailTabs(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	search(t, a, "sunset")
	sendKey(t, a, "enter")
	require.Equal(t, viewPropertyDetail, a.state)
	require.NotNil(t, a.detail)

	st := a.store.Snapshot()
	require.Equal(t, "Sunset Apartments", st.Selected.Name)
	require.Equal(t, store.TabGeneral, st.ActiveTab)
	require.Contains(t, a.View(), "Pool, Gym, Parking, Pet Friendly")

	press(a, "tab")
	require.Equal(t, store.TabFinancial, a.store.Snapshot().ActiveTab)
	view := a.View()
	require.Contains(t, view, "6.67%")
	require.Contains(t, view, "0.556%")
	require.Contains(t, view, "$1,650")
	require.Contains(t, view, "$19,800")

	press(a, "tab")
	require.Contains(t, a.View(), "Completed: 2  Open: 2  Total cost: $475")
	press(a, "tab")
	require.Contains(t, a.View(), "Lease (1)")
	press(a, "tab")
	require.Contains(t, a.View(), "Current tenant: Sarah Johnson")
	press(a, "tab")
	require.Equal(t, store.TabGeneral, a.store.Snapshot().ActiveTab)
	press(a, "shift+tab")
	require.Equal(t, store.TabTenants, a.store.Snapshot().ActiveTab)

	press(a, "esc")
	require.Equal(t, viewProperties, a.state)
	require.Nil(t, a.store.Snapshot().Selected)
	require.Len(t, a.store.Snapshot().Results, 1)
}

func TestUnknownTabRendersPlaceholder(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	search(t, a, "")
	sendKey(t, a, "enter")
	a.store.SetActiveTab("photos")
	require.Contains(t, a.View(), `Unknown tab "photos"`)
	press(a, "tab")
	require.Equal(t, store.TabGeneral, a.store.Snapshot().ActiveTab)
}

func TestClientsDashboard(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	press(a, "2")
	require.Equal(t, viewClients, a.state)
	view := a.View()
	require.Contains(t, view, "Total 4  Active 2  Pending 1  Inactive 1")
	require.Contains(t, view, "4 clients")
	require.Contains(t, view, "David Thompson")

	press(a, "s")
	require.Equal(t, "active", a.clientStatus)
	require.Len(t, a.clients.Visible(), 2)
	require.NotContains(t, a.View(), "Emily Rodriguez")

	press(a, "s", "s", "s")
	require.Equal(t, service.StatusAll, a.clientStatus)

	press(a, "/")
	typeText(a, "m.chen")
	press(a, "enter")
	require.False(t, a.clients.Filtering())
	require.Len(t, a.clients.Visible(), 1)

	sendKey(t, a, "enter")
	require.Equal(t, viewClientProfile, a.state)
	view = a.View()
	require.Contains(t, view, "Michael Chen")
	require.Contains(t, view, "Lisa Chen - (555) 876-5432")

	press(a, "esc")
	require.Equal(t, viewClients, a.state)
}

func TestClientsEmptyState(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	press(a, "2", "/")
	typeText(a, "zzz")
	require.Contains(t, a.View(), "No clients found")
}

func TestQuitOnlyOutsideInputs(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	press(a, "/", "q")
	require.Equal(t, "q", a.query.Value())
	require.True(t, a.query.Focused())

	press(a, "esc")
	_, cmd := a.Update(key("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	require.True(t, isQuit)
}

func TestRestoresLastSearch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	beds := 4
	require.NoError(t, prefs.SaveLastSearch(dir, prefs.LastSearch{
		Query:   "family",
		Filters: store.Filters{Bedrooms: &beds},
	}))

	a := newTestApp(t)
	a.prefsDir = dir
	run(t, a, a.restoreSearch())
	require.Equal(t, "family", a.query.Value())
	f, err := a.form.parse()
	require.NoError(t, err)
	require.Equal(t, 4, *f.Bedrooms)
	require.Contains(t, a.status, "restored")
}

func TestPrefsWriteFailureSurfaces(t *testing.T) {
	t.Parallel()
	a := newTestApp(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	a.prefsDir = filepath.Join(blocker, "sub")
	search(t, a, "loft")
	require.Contains(t, a.status, "save last search")
}
