package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// ConversionRepo handles the conversion journal.
type ConversionRepo struct {
	db *sql.DB
}

func NewConversionRepo(db *sql.DB) *ConversionRepo {
	return &ConversionRepo{db: db}
}

// Insert stores c, assigning an id when it has none.
func (r *ConversionRepo) Insert(ctx context.Context, c *Conversion) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO conversions(id, amount, from_code, to_code, rate, result, variant, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Amount, c.From, c.To, c.Rate, c.Result, c.Variant, c.CreatedAt)
	return err
}

// Recent lists the newest conversions first. limit <= 0 means no limit.
func (r *ConversionRepo) Recent(ctx context.Context, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, amount, from_code, to_code, rate, result, variant, created_at
	FROM conversions
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.Amount, &c.From, &c.To, &c.Rate, &c.Result, &c.Variant, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ConversionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&n)
	return n, err
}
