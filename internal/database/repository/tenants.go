package repository

import (
	"context"
	"database/sql"
)

// TenantRepo stores tenants.
type TenantRepo struct{ db *sql.DB }

func NewTenantRepo(db *sql.DB) *TenantRepo { return &TenantRepo{db: db} }

func (r *TenantRepo) Upsert(ctx context.Context, t Tenant) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tenants(id, property_id, name, email, phone, lease_start, lease_end, monthly_rent, deposit, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 email=excluded.email,
	 phone=excluded.phone,
	 lease_start=excluded.lease_start,
	 lease_end=excluded.lease_end,
	 monthly_rent=excluded.monthly_rent,
	 deposit=excluded.deposit,
	 status=excluded.status;
	`, t.ID, t.PropertyID, t.Name, t.Email, t.Phone, t.LeaseStart.UTC(), t.LeaseEnd.UTC(),
		t.MonthlyRent, t.Deposit, t.Status)
	return err
}

// ListByProperty returns tenants, most recent lease first.
func (r *TenantRepo) ListByProperty(ctx context.Context, propertyID string) ([]Tenant, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, property_id, name, email, phone, lease_start, lease_end, monthly_rent, deposit, status
	FROM tenants WHERE property_id = ? ORDER BY lease_start DESC, id`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.PropertyID, &t.Name, &t.Email, &t.Phone, &t.LeaseStart, &t.LeaseEnd,
			&t.MonthlyRent, &t.Deposit, &t.Status); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ApplicationRepo stores tenant applications.
type ApplicationRepo struct{ db *sql.DB }

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

func (r *ApplicationRepo) Upsert(ctx context.Context, a Application) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO applications(id, property_id, name, email, phone, applied_date, status)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 email=excluded.email,
	 phone=excluded.phone,
	 applied_date=excluded.applied_date,
	 status=excluded.status;
	`, a.ID, a.PropertyID, a.Name, a.Email, a.Phone, a.AppliedDate.UTC(), a.Status)
	return err
}

func (r *ApplicationRepo) ListByProperty(ctx context.Context, propertyID string) ([]Application, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, property_id, name, email, phone, applied_date, status
	FROM applications WHERE property_id = ? ORDER BY applied_date DESC, id`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.PropertyID, &a.Name, &a.Email, &a.Phone, &a.AppliedDate, &a.Status); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
