package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/service"
)

// clientItem adapts a client to the generic list. The email doubles as the
// description so the list filter searches name and email.
type clientItem struct{ repository.Client }

func (c clientItem) EntityID() string          { return c.ID }
func (c clientItem) EntityName() string        { return c.Name }
func (c clientItem) EntityDescription() string { return c.Email }
func (c clientItem) EntityStatus() string      { return string(c.Status) }

func (a *App) openClient(id string) tea.Cmd {
	return func() tea.Msg { return openClientMsg(id) }
}

func (a *App) clientFields(c clientItem) string {
	return fmt.Sprintf("%s  ·  %d properties  ·  %s/month\nLast contact %s",
		c.Phone, c.PropertiesCount, money(a.currency, c.TotalRent), formatDate(c.LastContact, a.dateFormat))
}

// refreshClients rebuilds the list from the directory and status filter.
func (a *App) refreshClients() {
	filtered := a.directory.Filter("", a.clientStatus)
	items := make([]clientItem, len(filtered))
	for i, c := range filtered {
		items[i] = clientItem{c}
	}
	a.clients.SetItems(items)
}

func (a *App) handleClientsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := a.clients.Update(m); handled {
		return a, cmd
	}
	if m.String() == "s" {
		a.clientStatus = service.NextStatusFilter(a.clientStatus)
		a.refreshClients()
	}
	return a, nil
}

func (a *App) renderClients() string {
	st := a.directory.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "Total %d  Active %d  Pending %d  Inactive %d\n", st.Total, st.Active, st.Pending, st.Inactive)
	var filters []string
	for _, f := range service.ClientStatusFilters {
		label := statusLabel(f)
		if f == a.clientStatus {
			filters = append(filters, activeTabStyle.Render(label))
		} else {
			filters = append(filters, tabStyle.Render(label))
		}
	}
	b.WriteString("Status: " + strings.Join(filters, " ") + "  [s] cycle\n\n")
	b.WriteString(a.clients.View())
	return b.String()
}

func (a *App) renderProfile() string {
	c := a.profile
	if c == nil {
		return titleStyle.Render("Client") + "\nNo client selected.\n[esc] Back"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name) + " " + badge(string(c.Status)) + "\n\n")
	b.WriteString("Contact\n")
	fmt.Fprintf(&b, "  Email:   %s\n", c.Email)
	fmt.Fprintf(&b, "  Phone:   %s\n", c.Phone)
	fmt.Fprintf(&b, "  Address: %s\n\n", c.Address)
	b.WriteString("Portfolio\n")
	fmt.Fprintf(&b, "  Properties: %d\n", c.PropertiesCount)
	fmt.Fprintf(&b, "  Total rent: %s/month\n\n", money(a.currency, c.TotalRent))
	b.WriteString("Timeline\n")
	fmt.Fprintf(&b, "  Joined:       %s\n", formatDate(c.JoinDate, a.dateFormat))
	fmt.Fprintf(&b, "  Last contact: %s\n\n", formatDate(c.LastContact, a.dateFormat))
	if c.EmergencyContact != "" {
		fmt.Fprintf(&b, "Emergency contact: %s\n", c.EmergencyContact)
	}
	if c.Notes != "" {
		b.WriteString("Notes: " + c.Notes + "\n")
	}
	b.WriteString("\n[esc] Back to clients")
	return b.String()
}
