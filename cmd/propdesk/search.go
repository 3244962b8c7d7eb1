package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/store"
)

func parseDelay(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("delay must not be negative")
	}
	return d, nil
}

type searchFlags struct {
	typ, status, location string
	minPrice, maxPrice    int64
	beds, baths           int
	minSqft, maxSqft      int
}

func (f *searchFlags) filters(cmd *cobra.Command) (store.Filters, error) {
	var out store.Filters
	if f.typ != "" {
		t := repository.PropertyType(strings.ToLower(f.typ))
		if !t.Valid() {
			return out, fmt.Errorf("unknown type %q", f.typ)
		}
		out.Type = t
	}
	if f.status != "" {
		s := repository.PropertyStatus(strings.ToLower(f.status))
		if !s.Valid() {
			return out, fmt.Errorf("unknown status %q", f.status)
		}
		out.Status = s
	}
	changed := cmd.Flags().Changed
	if changed("min-price") {
		out.MinPrice = &f.minPrice
	}
	if changed("max-price") {
		out.MaxPrice = &f.maxPrice
	}
	if changed("beds") {
		out.Bedrooms = &f.beds
	}
	if changed("baths") {
		out.Bathrooms = &f.baths
	}
	if changed("min-sqft") {
		out.MinSqft = &f.minSqft
	}
	if changed("max-sqft") {
		out.MaxSqft = &f.maxSqft
	}
	out.Location = f.location
	return out, nil
}

func newSearchCmd(g *globals) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search properties and print the results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := f.filters(cmd)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			ctx := cmd.Context()
			logger, closeLog, err := newLogger(g.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			db, err := openCatalog(ctx, g.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			st, err := loadStore(ctx, db, g.cfg, logger)
			if err != nil {
				return err
			}
			if err := st.Search(ctx, query, filters); err != nil {
				return err
			}
			snap := st.Snapshot()
			out := cmd.OutOrStdout()
			if len(snap.Results) == 0 {
				fmt.Fprintln(out, "No properties found")
				return nil
			}
			fmt.Fprintf(out, "Found %d properties matching %s\n", len(snap.Results), store.Describe(snap.Query, snap.Filters))
			fmt.Fprintln(out, resultsTable(snap.Results, g.cfg.UI.CurrencySymbol))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.typ, "type", "", "apartment, house, commercial or warehouse")
	fl.StringVar(&f.status, "status", "", "available, occupied, maintenance or sold")
	fl.Int64Var(&f.minPrice, "min-price", 0, "minimum price (inclusive)")
	fl.Int64Var(&f.maxPrice, "max-price", 0, "maximum price (inclusive)")
	fl.IntVar(&f.beds, "beds", 0, "exact number of bedrooms")
	fl.IntVar(&f.baths, "baths", 0, "exact number of bathrooms")
	fl.IntVar(&f.minSqft, "min-sqft", 0, "minimum square footage")
	fl.IntVar(&f.maxSqft, "max-sqft", 0, "maximum square footage")
	fl.StringVar(&f.location, "location", "", "part of the address")
	return cmd
}

func resultsTable(results []*repository.Property, currency string) string {
	p := message.NewPrinter(language.English)
	opt := func(n *int) string {
		if n == nil {
			return "-"
		}
		return fmt.Sprint(*n)
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.ID, r.Name, r.Address, string(r.Type), string(r.Status),
			currency + p.Sprintf("%d", r.Price), opt(r.Bedrooms), opt(r.Bathrooms), p.Sprintf("%d", r.Sqft),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "ADDRESS", "TYPE", "STATUS", "PRICE", "BEDS", "BATHS", "SQFT").
		Rows(rows...).
		String()
}
