package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/service"
	"github.com/jask/propdesk/internal/store"
)

// propertyDetail holds the read models behind the non-general tabs.
type propertyDetail struct {
	financials  service.FinancialSummary
	maintenance service.MaintenanceHistory
	documents   []service.DocumentGroup
	tenants     service.TenantRoster
}

func (a *App) openProperty(p *repository.Property) tea.Cmd {
	a.store.Select(p)
	a.detail = nil
	a.state = viewPropertyDetail
	a.status = "loading details..."
	return a.loadDetail(p)
}

func (a *App) loadDetail(p *repository.Property) tea.Cmd {
	return func() tea.Msg {
		if a.services.Financials == nil || a.services.History == nil {
			return statusMsg("details unavailable")
		}
		var d propertyDetail
		var err error
		if d.financials, err = a.services.Financials.Summary(a.ctx, p); err != nil {
			return errMsg{err}
		}
		if d.maintenance, err = a.services.History.MaintenanceFor(a.ctx, p.ID); err != nil {
			return errMsg{err}
		}
		if d.documents, err = a.services.History.DocumentsFor(a.ctx, p.ID); err != nil {
			return errMsg{err}
		}
		if d.tenants, err = a.services.History.TenantsFor(a.ctx, p.ID); err != nil {
			return errMsg{err}
		}
		return detailMsg{propertyID: p.ID, detail: &d}
	}
}

// cycleTab steps through the known tabs. An unknown active tab restarts
// from general.
func cycleTab(cur store.Tab, delta int) store.Tab {
	n := len(store.Tabs)
	for i, t := range store.Tabs {
		if t == cur {
			return store.Tabs[(i+delta+n)%n]
		}
	}
	return store.TabGeneral
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := a.store.Snapshot()
	switch m.String() {
	case "tab", "right", "l":
		a.store.SetActiveTab(cycleTab(st.ActiveTab, 1))
	case "shift+tab", "left", "h":
		a.store.SetActiveTab(cycleTab(st.ActiveTab, -1))
	case "g":
		a.store.SetActiveTab(store.TabGeneral)
	case "esc", "backspace":
		a.store.Select(nil)
		a.detail = nil
		a.state = viewProperties
		a.status = ""
	}
	return a, nil
}

func (a *App) renderDetail() string {
	st := a.store.Snapshot()
	p := st.Selected
	if p == nil {
		return titleStyle.Render("Property") + "\nNo property selected.\n[esc] Back"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Name) + " " + badge(string(p.Status)) + "\n")
	b.WriteString(p.Address + "\n")
	fmt.Fprintf(&b, "%s  %s\n\n", statusLabel(string(p.Type)), money(a.currency, p.Price))

	var tabs []string
	for _, t := range store.Tabs {
		label := statusLabel(string(t))
		if t == st.ActiveTab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	switch st.ActiveTab {
	case store.TabGeneral:
		b.WriteString(a.renderGeneral(p))
	case store.TabFinancial, store.TabMaintenance, store.TabDocuments, store.TabTenants:
		if a.detail == nil {
			b.WriteString("Loading...\n")
			break
		}
		switch st.ActiveTab {
		case store.TabFinancial:
			b.WriteString(a.renderFinancial(a.detail.financials))
		case store.TabMaintenance:
			b.WriteString(a.renderMaintenance(a.detail.maintenance))
		case store.TabDocuments:
			b.WriteString(a.renderDocuments(a.detail.documents))
		case store.TabTenants:
			b.WriteString(a.renderTenants(a.detail.tenants))
		}
	default:
		fmt.Fprintf(&b, "Unknown tab %q\n", st.ActiveTab)
	}
	b.WriteString("\n[tab] Next tab  [shift+tab] Prev tab  [esc] Back to results")
	return b.String()
}

func (a *App) renderGeneral(p *repository.Property) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bedrooms:   %s\n", optInt(p.Bedrooms))
	fmt.Fprintf(&b, "Bathrooms:  %s\n", optInt(p.Bathrooms))
	fmt.Fprintf(&b, "Sqft:       %s\n", number(p.Sqft))
	fmt.Fprintf(&b, "Year built: %d\n", p.YearBuilt)
	fmt.Fprintf(&b, "Images:     %d\n\n", len(p.Images))
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	if len(p.Features) > 0 {
		b.WriteString("Features: " + strings.Join(p.Features, ", ") + "\n")
	}
	fmt.Fprintf(&b, "Owner:   %s (#%s)\n", p.OwnerName, p.OwnerID)
	fmt.Fprintf(&b, "Listed:  %s\n", formatDate(p.CreatedAt, a.dateFormat))
	fmt.Fprintf(&b, "Updated: %s\n", formatDate(p.UpdatedAt, a.dateFormat))
	return b.String()
}

func (a *App) renderFinancial(f service.FinancialSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Purchase price: %s\n", money(a.currency, f.Price))
	fmt.Fprintf(&b, "Monthly rent:   %s\n", optMoney(a.currency, f.MonthlyRent))
	fmt.Fprintf(&b, "Deposit:        %s\n", optMoney(a.currency, f.Deposit))
	fmt.Fprintf(&b, "Annual ROI:     %s\n", f.AnnualROI)
	fmt.Fprintf(&b, "Monthly ROI:    %s\n\n", f.MonthlyROI)
	b.WriteString("Monthly expenses\n")
	for _, e := range f.Expenses {
		fmt.Fprintf(&b, "  %-22s %10s  %s\n", e.Category, money(a.currency, e.Amount), e.Frequency)
	}
	fmt.Fprintf(&b, "  %-22s %10s\n\n", "Total", money(a.currency, f.TotalExpenses))
	fmt.Fprintf(&b, "Net monthly income: %s\n", money(a.currency, f.NetMonthly))
	fmt.Fprintf(&b, "Net annual income:  %s\n", money(a.currency, f.NetAnnual))
	return b.String()
}

func (a *App) renderMaintenance(h service.MaintenanceHistory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Completed: %d  Open: %d  Total cost: %s\n\n",
		h.Completed, h.Open, money(a.currency, h.CompletedCost))
	if len(h.Records) == 0 {
		b.WriteString("No maintenance records.\n")
	}
	for _, r := range h.Records {
		fmt.Fprintf(&b, "%s %s  %s  %s\n", badge(r.Status), r.Title, statusLabel(r.Type), money(a.currency, r.Cost))
		line := "    scheduled " + formatDate(r.ScheduledDate, a.dateFormat)
		if r.CompletedDate != nil {
			line += ", completed " + formatDate(*r.CompletedDate, a.dateFormat)
		}
		if r.Contractor != nil {
			line += ", by " + *r.Contractor
		}
		b.WriteString(subtleStyle.Render(line) + "\n")
	}
	return b.String()
}

func (a *App) renderDocuments(groups []service.DocumentGroup) string {
	var b strings.Builder
	total := 0
	for _, g := range groups {
		total += len(g.Documents)
	}
	fmt.Fprintf(&b, "%d documents\n\n", total)
	if total == 0 {
		b.WriteString("No documents uploaded.\n")
	}
	for _, g := range groups {
		fmt.Fprintf(&b, "%s (%d)\n", statusLabel(g.Type), len(g.Documents))
		for _, d := range g.Documents {
			fmt.Fprintf(&b, "  %s  %s\n", d.Name, subtleStyle.Render(formatDate(d.UploadedAt, a.dateFormat)))
		}
	}
	return b.String()
}

func (a *App) renderTenants(r service.TenantRoster) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Active tenants: %d  Pending applications: %d\n\n", r.ActiveCount, len(r.Applications))
	if r.Current != nil {
		t := r.Current
		fmt.Fprintf(&b, "Current tenant: %s %s\n", t.Name, badge(t.Status))
		fmt.Fprintf(&b, "  %s  %s\n", t.Email, t.Phone)
		fmt.Fprintf(&b, "  Lease %s to %s, %s/month, deposit %s\n\n",
			formatDate(t.LeaseStart, a.dateFormat), formatDate(t.LeaseEnd, a.dateFormat),
			money(a.currency, t.MonthlyRent), money(a.currency, t.Deposit))
	} else {
		b.WriteString("No current tenant.\n\n")
	}
	if len(r.Applications) > 0 {
		b.WriteString("Applications\n")
		for _, ap := range r.Applications {
			fmt.Fprintf(&b, "  %s  %s  applied %s\n", ap.Name, ap.Email, formatDate(ap.AppliedDate, a.dateFormat))
		}
		b.WriteString("\n")
	}
	b.WriteString("Tenant history\n")
	for _, t := range r.Tenants {
		fmt.Fprintf(&b, "  %s %s  %s to %s\n", t.Name, badge(t.Status),
			formatDate(t.LeaseStart, a.dateFormat), formatDate(t.LeaseEnd, a.dateFormat))
	}
	return b.String()
}
