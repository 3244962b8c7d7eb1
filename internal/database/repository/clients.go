package repository

import (
	"context"
	"database/sql"
)

// ClientRepo handles clients.
type ClientRepo struct {
	db *sql.DB
}

func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) Upsert(ctx context.Context, c Client) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO clients(id, name, email, phone, address, status, properties_count, total_rent,
	 last_contact, join_date, emergency_contact, notes, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM clients))
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 email=excluded.email,
	 phone=excluded.phone,
	 address=excluded.address,
	 status=excluded.status,
	 properties_count=excluded.properties_count,
	 total_rent=excluded.total_rent,
	 last_contact=excluded.last_contact,
	 join_date=excluded.join_date,
	 emergency_contact=excluded.emergency_contact,
	 notes=excluded.notes;
	`, c.ID, c.Name, c.Email, c.Phone, c.Address, string(c.Status), c.PropertiesCount, c.TotalRent,
		c.LastContact.UTC(), c.JoinDate.UTC(), c.EmergencyContact, c.Notes)
	return err
}

const clientColumns = `id, name, email, phone, address, status, properties_count, total_rent,
 last_contact, join_date, emergency_contact, notes`

func (r *ClientRepo) List(ctx context.Context) ([]Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepo) Get(ctx context.Context, id string) (*Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func scanClient(row scanner) (Client, error) {
	var c Client
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &status, &c.PropertiesCount,
		&c.TotalRent, &c.LastContact, &c.JoinDate, &c.EmergencyContact, &c.Notes); err != nil {
		return Client{}, err
	}
	c.Status = ClientStatus(status)
	return c, nil
}
