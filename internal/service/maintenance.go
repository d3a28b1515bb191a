package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/tickrate/internal/database"
)

// Cleared counts the journal rows removed by ClearHistory.
type Cleared struct {
	Conversions int64
	Sessions    int64
}

// MaintenanceService backs `tickrate history clear`.
type MaintenanceService struct {
	DB *sql.DB
}

// ClearHistory empties both journals in one transaction and reports how many
// rows each lost. The schema is kept.
func (s *MaintenanceService) ClearHistory(ctx context.Context) (Cleared, error) {
	if s.DB == nil {
		return Cleared{}, errors.New("maintenance: journal not open")
	}
	var c Cleared
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		var err error
		if c.Conversions, err = deleteAll(ctx, tx, "conversions"); err != nil {
			return err
		}
		c.Sessions, err = deleteAll(ctx, tx, "stopwatch_sessions")
		return err
	})
	if err != nil {
		return Cleared{}, err
	}
	return c, nil
}

func deleteAll(ctx context.Context, tx *sql.Tx, table string) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM "+table)
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}
	return res.RowsAffected()
}
