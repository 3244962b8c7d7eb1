package database

import (
	"context"
	"database/sql"

	"github.com/jask/propdesk/internal/database/repository"
	"github.com/jask/propdesk/internal/fixtures"
)

// SeedDefaults loads the fixture catalog into an empty database.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	props := repository.NewPropertyRepo(db)
	n, err := props.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return fixtures.Seed(ctx, fixtures.Repos{
		Properties:   props,
		Clients:      repository.NewClientRepo(db),
		Maintenance:  repository.NewMaintenanceRepo(db),
		Documents:    repository.NewDocumentRepo(db),
		Tenants:      repository.NewTenantRepo(db),
		Applications: repository.NewApplicationRepo(db),
		Expenses:     repository.NewExpenseRepo(db),
	})
}
