package repository

import (
	"context"
	"database/sql"
)

// DocumentRepo stores property documents.
type DocumentRepo struct{ db *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{db: db} }

func (r *DocumentRepo) Upsert(ctx context.Context, d Document) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO documents(id, property_id, name, type, url, uploaded_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 type=excluded.type,
	 url=excluded.url,
	 uploaded_at=excluded.uploaded_at;
	`, d.ID, d.PropertyID, d.Name, d.Type, d.URL, d.UploadedAt.UTC())
	return err
}

// ListByProperty returns documents newest first.
func (r *DocumentRepo) ListByProperty(ctx context.Context, propertyID string) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, property_id, name, type, url, uploaded_at
	FROM documents WHERE property_id = ? ORDER BY uploaded_at DESC, id`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.PropertyID, &d.Name, &d.Type, &d.URL, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
