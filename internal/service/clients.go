package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jask/propdesk/internal/database/repository"
)

// StatusAll disables the client status filter.
const StatusAll = "all"

// ClientStatusFilters is the cycle order of the client status filter.
var ClientStatusFilters = []string{
	StatusAll,
	string(repository.ClientActive),
	string(repository.ClientPending),
	string(repository.ClientInactive),
}

// NextStatusFilter returns the filter after cur in the cycle. Unknown values
// restart at "all".
func NextStatusFilter(cur string) string {
	for i, s := range ClientStatusFilters {
		if s == cur {
			return ClientStatusFilters[(i+1)%len(ClientStatusFilters)]
		}
	}
	return StatusAll
}

// ClientService loads the client directory.
type ClientService struct {
	Clients *repository.ClientRepo
}

func (s *ClientService) Directory(ctx context.Context) (ClientDirectory, error) {
	clients, err := s.Clients.List(ctx)
	if err != nil {
		return ClientDirectory{}, fmt.Errorf("list clients: %w", err)
	}
	return ClientDirectory{Clients: clients}, nil
}

// ClientDirectory is an in-memory client list.
type ClientDirectory struct {
	Clients []repository.Client
}

type ClientStats struct {
	Total    int
	Active   int
	Pending  int
	Inactive int
}

// Stats counts the whole directory regardless of any filter.
func (d ClientDirectory) Stats() ClientStats {
	st := ClientStats{Total: len(d.Clients)}
	for _, c := range d.Clients {
		switch c.Status {
		case repository.ClientActive:
			st.Active++
		case repository.ClientPending:
			st.Pending++
		case repository.ClientInactive:
			st.Inactive++
		}
	}
	return st
}

// Filter keeps clients whose name or email contains term, ignoring case,
// and whose status matches status ("all" or "" matches every client).
func (d ClientDirectory) Filter(term, status string) []repository.Client {
	term = strings.ToLower(term)
	out := make([]repository.Client, 0, len(d.Clients))
	for _, c := range d.Clients {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Email), term) {
			continue
		}
		if status != "" && status != StatusAll && string(c.Status) != status {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Get finds a client by id.
func (d ClientDirectory) Get(id string) (repository.Client, bool) {
	for _, c := range d.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return repository.Client{}, false
}
