package repository

import (
	"context"
	"database/sql"
)

// MaintenanceRepo stores maintenance records.
type MaintenanceRepo struct{ db *sql.DB }

func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

func (r *MaintenanceRepo) Upsert(ctx context.Context, m MaintenanceRecord) error {
	var completed interface{}
	if m.CompletedDate != nil {
		completed = m.CompletedDate.UTC()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO maintenance_records(id, property_id, title, description, type, status, cost,
	 scheduled_date, completed_date, contractor)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 description=excluded.description,
	 type=excluded.type,
	 status=excluded.status,
	 cost=excluded.cost,
	 scheduled_date=excluded.scheduled_date,
	 completed_date=excluded.completed_date,
	 contractor=excluded.contractor;
	`, m.ID, m.PropertyID, m.Title, m.Description, m.Type, m.Status, m.Cost,
		m.ScheduledDate.UTC(), completed, m.Contractor)
	return err
}

// ListByProperty returns records in schedule order.
func (r *MaintenanceRepo) ListByProperty(ctx context.Context, propertyID string) ([]MaintenanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, property_id, title, description, type, status, cost, scheduled_date, completed_date, contractor
	FROM maintenance_records WHERE property_id = ? ORDER BY scheduled_date, id`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MaintenanceRecord
	for rows.Next() {
		var m MaintenanceRecord
		var completed sql.NullTime
		var contractor sql.NullString
		if err := rows.Scan(&m.ID, &m.PropertyID, &m.Title, &m.Description, &m.Type, &m.Status, &m.Cost,
			&m.ScheduledDate, &completed, &contractor); err != nil {
			return nil, err
		}
		if completed.Valid {
			m.CompletedDate = &completed.Time
		}
		if contractor.Valid {
			m.Contractor = &contractor.String
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
