package fixtures

import (
	"context"
	"fmt"

	"github.com/jask/propdesk/internal/database/repository"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Properties   *repository.PropertyRepo
	Clients      *repository.ClientRepo
	Maintenance  *repository.MaintenanceRepo
	Documents    *repository.DocumentRepo
	Tenants      *repository.TenantRepo
	Applications *repository.ApplicationRepo
	Expenses     *repository.ExpenseRepo
}

// Seed writes the mock catalog. Upserts make it safe to run twice.
func Seed(ctx context.Context, repos Repos) error {
	for _, p := range Properties() {
		if err := repos.Properties.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed property %s: %w", p.ID, err)
		}
		if err := seedDetails(ctx, repos, DetailsFor(p.ID)); err != nil {
			return fmt.Errorf("seed details for %s: %w", p.ID, err)
		}
	}
	for _, c := range Clients() {
		if err := repos.Clients.Upsert(ctx, c); err != nil {
			return fmt.Errorf("seed client %s: %w", c.ID, err)
		}
	}
	return nil
}

func seedDetails(ctx context.Context, repos Repos, d Details) error {
	for _, m := range d.Maintenance {
		if err := repos.Maintenance.Upsert(ctx, m); err != nil {
			return err
		}
	}
	for _, doc := range d.Documents {
		if err := repos.Documents.Upsert(ctx, doc); err != nil {
			return err
		}
	}
	for _, t := range d.Tenants {
		if err := repos.Tenants.Upsert(ctx, t); err != nil {
			return err
		}
	}
	for _, a := range d.Applications {
		if err := repos.Applications.Upsert(ctx, a); err != nil {
			return err
		}
	}
	for _, e := range d.Expenses {
		if err := repos.Expenses.Upsert(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
