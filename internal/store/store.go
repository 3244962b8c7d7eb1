// Package store holds the property search state: the fixed catalog, the
// current query and filters, results, selection and the active detail tab.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jask/propdesk/internal/database/repository"
)

// DefaultDelay is the simulated latency of a search.
const DefaultDelay = time.Second

// Tab names a property detail tab. Any string is accepted by SetActiveTab.
type Tab string

const (
	TabGeneral     Tab = "general"
	TabFinancial   Tab = "financial"
	TabMaintenance Tab = "maintenance"
	TabDocuments   Tab = "documents"
	TabTenants     Tab = "tenants"
)

// Tabs lists the detail tabs in display order.
var Tabs = []Tab{TabGeneral, TabFinancial, TabMaintenance, TabDocuments, TabTenants}

// State is a read-only view of the store. Error is "" when there is none.
type State struct {
	Query     string
	Filters   Filters
	Results   []*repository.Property
	Selected  *repository.Property
	ActiveTab Tab
	Loading   bool
	Error     string
}

// Searched reports whether a search has published results since the last clear.
func (s State) Searched() bool { return s.Results != nil }

// Store owns the search state. All transitions go through its methods.
type Store struct {
	mu     sync.Mutex
	source []*repository.Property
	delay  time.Duration
	log    *slog.Logger
	seq    uint64
	state  State
}

type Option func(*Store)

// WithDelay overrides the simulated latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New builds a store over a fixed source list. The list is not copied and
// must not be modified afterwards.
func New(source []*repository.Property, opts ...Option) *Store {
	s := &Store{
		source: source,
		delay:  DefaultDelay,
		log:    slog.Default(),
		state:  State{ActiveTab: TabGeneral},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromRows wraps repository rows as a source list.
func FromRows(rows []repository.Property) []*repository.Property {
	out := make([]*repository.Property, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}

// Source returns the catalog the store searches.
func (s *Store) Source() []*repository.Property { return s.source }

// Delay returns the simulated latency.
func (s *Store) Delay() time.Duration { return s.delay }

// Snapshot copies the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Filters = s.state.Filters.clone()
	// an empty non-nil slice still means "searched, nothing matched"
	out.Results = slices.Clone(s.state.Results)
	return out
}

// Ticket identifies one started search.
type Ticket struct {
	Seq     uint64
	Query   string
	Filters Filters
}

// Completion is the outcome of resolving a ticket.
type Completion struct {
	Seq     uint64
	Results []*repository.Property
	Err     error
}

// BeginSearch records query and filters, marks the store loading and clears
// any previous error.
func (s *Store) BeginSearch(query string, f Filters) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state.Query = query
	s.state.Filters = f.clone()
	s.state.Loading = true
	s.state.Error = ""
	s.log.Debug("search started", "seq", s.seq, "query", query, "filters", f.Active())
	return Ticket{Seq: s.seq, Query: query, Filters: f.clone()}
}

// Resolve waits out the simulated delay and filters the source. It does not
// touch the state, so it may run on any goroutine.
func (s *Store) Resolve(ctx context.Context, t Ticket) Completion {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Completion{Seq: t.Seq, Err: fmt.Errorf("search cancelled: %w", ctx.Err())}
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Completion{Seq: t.Seq, Err: fmt.Errorf("search cancelled: %w", err)}
	}
	return Completion{Seq: t.Seq, Results: Apply(s.source, t.Query, t.Filters)}
}

// Complete publishes a completion. Completions of superseded searches are
// dropped and reported as false.
func (s *Store) Complete(c Completion) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Seq != s.seq {
		s.log.Debug("stale search dropped", "seq", c.Seq, "latest", s.seq)
		return false
	}
	s.state.Loading = false
	if c.Err != nil {
		s.state.Error = c.Err.Error()
		s.log.Warn("search failed", "seq", c.Seq, "err", c.Err)
		return true
	}
	s.state.Results = c.Results
	s.log.Debug("search finished", "seq", c.Seq, "results", len(c.Results))
	return true
}

// Search runs a full search inline.
func (s *Store) Search(ctx context.Context, query string, f Filters) error {
	c := s.Resolve(ctx, s.BeginSearch(query, f))
	s.Complete(c)
	return c.Err
}

// Select sets the selected property and resets the tab to general. The
// property is not checked against the source.
func (s *Store) Select(p *repository.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selected = p
	s.state.ActiveTab = TabGeneral
}

// SetActiveTab switches the detail tab without validating the name.
func (s *Store) SetActiveTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveTab = tab
}

// Clear resets query, filters, results and selection. An in-flight search
// is invalidated.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state.Query = ""
	s.state.Filters = Filters{}
	s.state.Results = nil
	s.state.Selected = nil
	s.state.Loading = false
}

// Lookup finds a source property by id.
func (s *Store) Lookup(id string) *repository.Property {
	for _, p := range s.source {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Describe renders the query and filters for a results heading.
func Describe(query string, f Filters) string {
	var parts []string
	if query != "" {
		parts = append(parts, fmt.Sprintf("%q", query))
	}
	if f.Type != "" {
		parts = append(parts, "type="+string(f.Type))
	}
	if f.Status != "" {
		parts = append(parts, "status="+string(f.Status))
	}
	if f.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("price>=%d", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("price<=%d", *f.MaxPrice))
	}
	if f.Bedrooms != nil {
		parts = append(parts, fmt.Sprintf("beds=%d", *f.Bedrooms))
	}
	if f.Bathrooms != nil {
		parts = append(parts, fmt.Sprintf("baths=%d", *f.Bathrooms))
	}
	if f.MinSqft != nil {
		parts = append(parts, fmt.Sprintf("sqft>=%d", *f.MinSqft))
	}
	if f.MaxSqft != nil {
		parts = append(parts, fmt.Sprintf("sqft<=%d", *f.MaxSqft))
	}
	if f.Location != "" {
		parts = append(parts, fmt.Sprintf("location~%q", f.Location))
	}
	if len(parts) == 0 {
		return "all properties"
	}
	return strings.Join(parts, ", ")
}
