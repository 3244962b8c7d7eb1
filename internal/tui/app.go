package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/propdesk/internal/config"
	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/prefs"
	"github.com/jask/propdesk/internal/service"
	"github.com/jask/propdesk/internal/store"
)

// App ties together views.
type App struct {
	ctx        context.Context
	cfg        config.Config
	store      *store.Store
	services   Services
	log        *slog.Logger
	state      appState
	modal      modalState
	status     string
	tz         *time.Location
	currency   string
	dateFormat string
	prefsDir   string

	// property search
	query       textinput.Model
	form        filterForm
	cursor      int
	suggestions []string
	searchedAt  time.Time

	// property detail, loaded per selection
	detail *propertyDetail

	// clients
	directory    service.ClientDirectory
	clientStatus string
	clients      *Summary[clientItem]
	profile      *repository.Client
}

type Services struct {
	Financials *service.FinancialService
	History    *service.HistoryService
	Clients    *service.ClientService
}

type appState string

const (
	viewProperties     appState = "properties"
	viewPropertyDetail appState = "propertyDetail"
	viewClients        appState = "clients"
	viewClientProfile  appState = "clientProfile"
)

type modalState string

const (
	modalNone    modalState = ""
	modalFilters modalState = "filters"
)

func New(ctx context.Context, cfg config.Config, st *store.Store, services Services, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	q := textinput.New()
	q.Prompt = "Search: "
	q.Placeholder = "name or address"
	q.CharLimit = 128
	a := &App{
		ctx:          ctx,
		cfg:          cfg,
		store:        st,
		services:     services,
		log:          logger,
		state:        viewProperties,
		tz:           cfg.Location(),
		currency:     cfg.UI.CurrencySymbol,
		dateFormat:   cfg.UI.DateFormat,
		prefsDir:     cfg.Prefs.Dir,
		query:        q,
		form:         newFilterForm(),
		clientStatus: service.StatusAll,
	}
	if a.dateFormat == "" {
		a.dateFormat = time.DateOnly
	}
	a.clients = NewSummary[clientItem]("Clients", "Manage your client relationships and information", nil, a.openClient)
	a.clients.RenderFields = a.clientFields
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadClients(), a.restoreSearch())
}

func (a *App) loadClients() tea.Cmd {
	return func() tea.Msg {
		if a.services.Clients == nil {
			return clientsMsg{}
		}
		dir, err := a.services.Clients.Directory(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return clientsMsg(dir)
	}
}

func (a *App) restoreSearch() tea.Cmd {
	return func() tea.Msg {
		last, err := prefs.LoadLastSearch(a.prefsDir)
		if err != nil {
			return errMsg{err}
		}
		if last == nil {
			return nil
		}
		return restoredMsg(*last)
	}
}

// inputFocused reports whether keystrokes belong to a text input.
func (a *App) inputFocused() bool {
	switch {
	case a.modal != modalNone:
		return true
	case a.state == viewProperties:
		return a.query.Focused()
	case a.state == viewClients:
		return a.clients.Filtering()
	}
	return false
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if !a.inputFocused() {
			switch m.String() {
			case "q":
				return a, tea.Quit
			case "1":
				a.state = viewProperties
				a.status = ""
				return a, nil
			case "2":
				a.state = viewClients
				a.status = ""
				return a, nil
			}
		}
		switch a.state {
		case viewProperties:
			return a.handlePropertiesKey(m)
		case viewPropertyDetail:
			return a.handleDetailKey(m)
		case viewClients:
			return a.handleClientsKey(m)
		case viewClientProfile:
			if m.String() == "esc" || m.String() == "backspace" {
				a.state = viewClients
				a.profile = nil
			}
		}
	case searchDoneMsg:
		return a, a.finishSearch(store.Completion(m))
	case detailMsg:
		sel := a.store.Snapshot().Selected
		if sel != nil && sel.ID == m.propertyID {
			a.detail = m.detail
			a.status = ""
		}
	case clientsMsg:
		a.directory = service.ClientDirectory(m)
		a.refreshClients()
	case openClientMsg:
		if c, ok := a.directory.Get(string(m)); ok {
			a.profile = &c
			a.state = viewClientProfile
		} else {
			a.status = "client " + string(m) + " not found"
		}
	case restoredMsg:
		a.query.SetValue(m.Query)
		a.form.set(m.Filters)
		a.status = "restored last search; press enter in the search box to run it"
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.log.Error("ui command failed", "err", m.error)
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewPropertyDetail:
		body = a.renderDetail()
	case viewClients:
		body = a.renderClients()
	case viewClientProfile:
		body = a.renderProfile()
	default:
		body = a.renderProperties()
	}
	if a.modal == modalFilters {
		body += "\n\n" + a.form.view()
	}
	nav := subtleStyle.Render("[1] Properties  [2] Clients  [q] Quit")
	body += "\n" + nav
	if a.status != "" {
		body += "\n" + a.status
	}
	return body
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
		a.form.set(a.store.Snapshot().Filters)
		return a, nil
	case "tab", "down":
		return a, a.form.move(1)
	case "shift+tab", "up":
		return a, a.form.move(-1)
	case "ctrl+r":
		a.form.reset()
		return a, nil
	case "enter":
		if _, err := a.form.parse(); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.modal = modalNone
		return a, a.runSearch()
	}
	return a, a.form.update(m)
}

// messages
type searchDoneMsg store.Completion

type detailMsg struct {
	propertyID string
	detail     *propertyDetail
}

type clientsMsg service.ClientDirectory

type openClientMsg string

type restoredMsg prefs.LastSearch

type statusMsg string

type errMsg struct{ error }
