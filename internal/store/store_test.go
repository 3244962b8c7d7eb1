package store

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/fixtures"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{
		WithDelay(0),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return New(FromRows(fixtures.Properties()), opts...)
}

func names(ps []*repository.Property) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func i64(n int64) *int64 { return &n }
func ip(n int) *int      { return &n }

func TestInitialState(t *testing.T) {
	t.Parallel()
	st := newTestStore(t).Snapshot()
	require.Equal(t, "", st.Query)
	require.True(t, st.Filters.IsZero())
	require.Nil(t, st.Results)
	require.Nil(t, st.Selected)
	require.Equal(t, TabGeneral, st.ActiveTab)
	require.False(t, st.Loading)
	require.Equal(t, "", st.Error)
}

func TestSearchQueryIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	for _, q := range []string{"sunset", "SUNSET", "SuNsEt"} {
		require.NoError(t, s.Search(context.Background(), q, Filters{}))
		require.Equal(t, []string{"Sunset Apartments"}, names(s.Snapshot().Results), q)
	}
}

func TestSearchMatchesAddress(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Search(context.Background(), "pasadena", Filters{}))
	require.Equal(t, []string{"Family House"}, names(s.Snapshot().Results))
}

func TestSearchLoft(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Search(context.Background(), "loft", Filters{}))
	st := s.Snapshot()
	require.Equal(t, []string{"Downtown Loft"}, names(st.Results))
	require.Equal(t, "loft", st.Query)
	require.False(t, st.Loading)
}

func TestMinPriceKeepsSourceOrder(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Search(context.Background(), "", Filters{MinPrice: i64(500000)}))
	var prices []int64
	for _, p := range s.Snapshot().Results {
		prices = append(prices, p.Price)
	}
	require.Equal(t, []int64{675000, 850000}, prices)
}

func TestRangesAreInclusive(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Search(context.Background(), "", Filters{MinPrice: i64(450000), MaxPrice: i64(675000)}))
	require.Equal(t, []string{"Sunset Apartments", "Downtown Loft"}, names(s.Snapshot().Results))

	require.NoError(t, s.Search(context.Background(), "", Filters{MinSqft: ip(900), MaxSqft: ip(1200)}))
	require.Equal(t, []string{"Sunset Apartments", "Downtown Loft"}, names(s.Snapshot().Results))
}

func TestEqualityFilters(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		f    Filters
		want []string
	}{
		{"type", Filters{Type: repository.TypeHouse}, []string{"Family House"}},
		{"status", Filters{Status: repository.StatusOccupied}, []string{"Downtown Loft"}},
		{"bedrooms", Filters{Bedrooms: ip(2)}, []string{"Sunset Apartments"}},
		{"bathrooms", Filters{Bathrooms: ip(3)}, []string{"Family House"}},
		{"zero bedrooms is a constraint", Filters{Bedrooms: ip(0)}, []string{}},
		{"location", Filters{Location: "los angeles"}, []string{"Sunset Apartments", "Downtown Loft"}},
		{"combined", Filters{Type: repository.TypeApartment, Status: repository.StatusAvailable}, []string{"Sunset Apartments"}},
		{"nothing", Filters{Type: repository.TypeWarehouse}, []string{}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t)
			require.NoError(t, s.Search(context.Background(), "", tc.f))
			got := s.Snapshot().Results
			require.NotNil(t, got)
			require.Equal(t, tc.want, names(got))
		})
	}
}

func TestBedroomsCriterionSkipsPropertiesWithoutBedrooms(t *testing.T) {
	t.Parallel()
	src := []*repository.Property{{ID: "w", Name: "Depot", Type: repository.TypeWarehouse}}
	require.Empty(t, Apply(src, "", Filters{Bedrooms: ip(0)}))
	require.Len(t, Apply(src, "", Filters{}), 1)
}

func TestResultsShareSourcePointers(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Search(context.Background(), "", Filters{}))
	st := s.Snapshot()
	require.Len(t, st.Results, 3)
	for i, p := range st.Results {
		require.Same(t, s.Source()[i], p)
	}
}

func TestSnapshotDoesNotAliasFilters(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	min := i64(1)
	s.BeginSearch("", Filters{MinPrice: min})
	*min = 999
	st := s.Snapshot()
	require.Equal(t, int64(1), *st.Filters.MinPrice)
	*st.Filters.MinPrice = 5
	require.Equal(t, int64(1), *s.Snapshot().Filters.MinPrice)
}

func TestSearchSetsLoadingUntilComplete(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	s.state.Error = "old"
	tk := s.BeginSearch("loft", Filters{})
	st := s.Snapshot()
	require.True(t, st.Loading)
	require.Equal(t, "", st.Error)
	require.Equal(t, "loft", st.Query)

	require.True(t, s.Complete(s.Resolve(context.Background(), tk)))
	require.False(t, s.Snapshot().Loading)
}

func TestStaleCompletionIsDropped(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	first := s.BeginSearch("sunset", Filters{})
	second := s.BeginSearch("loft", Filters{})

	newer := s.Resolve(context.Background(), second)
	older := s.Resolve(context.Background(), first)
	require.True(t, s.Complete(newer))
	require.False(t, s.Complete(older))

	st := s.Snapshot()
	require.Equal(t, []string{"Downtown Loft"}, names(st.Results))
	require.Equal(t, "loft", st.Query)
	require.False(t, st.Loading)
}

func TestStaleCompletionDoesNotClearLoading(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	first := s.BeginSearch("sunset", Filters{})
	s.BeginSearch("loft", Filters{})
	require.False(t, s.Complete(s.Resolve(context.Background(), first)))
	require.True(t, s.Snapshot().Loading)
	require.Nil(t, s.Snapshot().Results)
}

func TestCancelledSearchSetsError(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Search(ctx, "loft", Filters{})
	require.ErrorIs(t, err, context.Canceled)
	st := s.Snapshot()
	require.False(t, st.Loading)
	require.Contains(t, st.Error, "search cancelled")
	require.Nil(t, st.Results)
}

func TestDelayIsHonoured(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, WithDelay(30*time.Millisecond))
	start := time.Now()
	require.NoError(t, s.Search(context.Background(), "", Filters{}))
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSelectResetsTab(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	s.SetActiveTab(TabDocuments)
	p := s.Source()[1]
	s.Select(p)
	st := s.Snapshot()
	require.Same(t, p, st.Selected)
	require.Equal(t, TabGeneral, st.ActiveTab)

	s.Select(nil)
	require.Nil(t, s.Snapshot().Selected)
}

func TestSelectDoesNotCheckMembership(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	outsider := &repository.Property{ID: "99", Name: "Elsewhere"}
	s.Select(outsider)
	require.Same(t, outsider, s.Snapshot().Selected)
}

func TestSetActiveTabAcceptsAnyName(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	s.SetActiveTab("bogus")
	require.Equal(t, Tab("bogus"), s.Snapshot().ActiveTab)
}

func TestClear(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Search(context.Background(), "loft", Filters{Bedrooms: ip(1)}))
	s.Select(s.Source()[0])
	s.SetActiveTab(TabTenants)
	s.Clear()

	st := s.Snapshot()
	require.Equal(t, "", st.Query)
	require.True(t, st.Filters.IsZero())
	require.Nil(t, st.Results)
	require.Nil(t, st.Selected)
	require.False(t, st.Loading)
}

func TestSearchWithNoMatchesCountsAsSearched(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Search(context.Background(), "zzz", Filters{}))

	st := s.Snapshot()
	require.True(t, st.Searched())
	require.NotNil(t, st.Results)
	require.Empty(t, st.Results)

	s.Clear()
	require.False(t, s.Snapshot().Searched())
}

func TestClearInvalidatesInFlightSearch(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	tk := s.BeginSearch("loft", Filters{})
	s.Clear()
	require.False(t, s.Complete(s.Resolve(context.Background(), tk)))
	require.Nil(t, s.Snapshot().Results)
}

func TestConcurrentSearchesLastStartedWins(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, WithDelay(5*time.Millisecond))
	var tickets []Ticket
	for _, q := range []string{"sunset", "family", "loft"} {
		tickets = append(tickets, s.BeginSearch(q, Filters{}))
	}
	var wg sync.WaitGroup
	for _, tk := range tickets {
		wg.Add(1)
		go func(tk Ticket) {
			defer wg.Done()
			s.Complete(s.Resolve(context.Background(), tk))
		}(tk)
	}
	wg.Wait()
	require.Equal(t, []string{"Downtown Loft"}, names(s.Snapshot().Results))
}

func TestLookupAndDescribe(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.Equal(t, "Family House", s.Lookup("3").Name)
	require.Nil(t, s.Lookup("42"))

	require.Equal(t, "all properties", Describe("", Filters{}))
	require.Equal(t, `"loft", type=apartment, beds=1`,
		Describe("loft", Filters{Type: repository.TypeApartment, Bedrooms: ip(1)}))
	require.Equal(t, 3, Filters{Type: repository.TypeHouse, MinSqft: ip(0), Location: "x"}.Active())
}
