package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNoRowsAffected = errors.New("no rows affected")

type ExecType int

const (
	ExecInsert ExecType = iota
	ExecUpdate
	ExecDelete
)

// ExecWithCheck runs a write and, for updates and deletes, fails with
// ErrNoRowsAffected when nothing matched.
func ExecWithCheck(ctx context.Context, db sqlx.ExtContext, query string, execType ExecType, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	// if Insert operation, don't need to check rows affected
	if execType == ExecInsert {
		return nil
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
