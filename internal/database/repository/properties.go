package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PropertyRepo handles properties.
type PropertyRepo struct {
	db *sql.DB
}

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// Upsert inserts or replaces a property. New rows are appended to the end of
// the catalog order; updates keep their position.
func (r *PropertyRepo) Upsert(ctx context.Context, p Property) error {
	images, err := json.Marshal(nonNil(p.Images))
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	features, err := json.Marshal(nonNil(p.Features))
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO properties(
	 id, name, address, type, status, price, bedrooms, bathrooms, sqft, year_built,
	 images, description, features, owner_id, owner_name, monthly_rent, deposit,
	 sort_order, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	 (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM properties), ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 address=excluded.address,
	 type=excluded.type,
	 status=excluded.status,
	 price=excluded.price,
	 bedrooms=excluded.bedrooms,
	 bathrooms=excluded.bathrooms,
	 sqft=excluded.sqft,
	 year_built=excluded.year_built,
	 images=excluded.images,
	 description=excluded.description,
	 features=excluded.features,
	 owner_id=excluded.owner_id,
	 owner_name=excluded.owner_name,
	 monthly_rent=excluded.monthly_rent,
	 deposit=excluded.deposit,
	 updated_at=excluded.updated_at;
	`, p.ID, p.Name, p.Address, string(p.Type), string(p.Status), p.Price, p.Bedrooms, p.Bathrooms,
		p.Sqft, p.YearBuilt, string(images), p.Description, string(features), p.OwnerID, p.OwnerName,
		p.MonthlyRent, p.Deposit, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

const propertyColumns = `id, name, address, type, status, price, bedrooms, bathrooms, sqft, year_built,
 images, description, features, owner_id, owner_name, monthly_rent, deposit, created_at, updated_at`

// List returns every property in catalog order.
func (r *PropertyRepo) List(ctx context.Context) ([]Property, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PropertyRepo) Get(ctx context.Context, id string) (*Property, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n)
	return n, err
}

// scanner handles both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row scanner) (Property, error) {
	var p Property
	var typ, status, images, features string
	var bedrooms, bathrooms, rent, deposit sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &p.Address, &typ, &status, &p.Price, &bedrooms, &bathrooms,
		&p.Sqft, &p.YearBuilt, &images, &p.Description, &features, &p.OwnerID, &p.OwnerName,
		&rent, &deposit, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Property{}, err
	}
	p.Type = PropertyType(typ)
	p.Status = PropertyStatus(status)
	if bedrooms.Valid {
		n := int(bedrooms.Int64)
		p.Bedrooms = &n
	}
	if bathrooms.Valid {
		n := int(bathrooms.Int64)
		p.Bathrooms = &n
	}
	if rent.Valid {
		p.MonthlyRent = &rent.Int64
	}
	if deposit.Valid {
		p.Deposit = &deposit.Int64
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return Property{}, fmt.Errorf("property %s images: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
		return Property{}, fmt.Errorf("property %s features: %w", p.ID, err)
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
