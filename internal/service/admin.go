package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/propdesk/internal/database"
)

// AdminService houses destructive catalog actions exposed through the CLI.
type AdminService struct {
	DB *sql.DB
}

// Reset wipes the catalog. The schema stays so it can be seeded again.
func (s *AdminService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("admin: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		tables := []string{
			"expenses",
			"applications",
			"tenants",
			"documents",
			"maintenance_records",
			"clients",
			"properties",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
