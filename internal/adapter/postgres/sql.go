package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"influence-hub/internal/core/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type scanner interface {
	Scan(dest ...any) error
}

func selectSQL(table string, cols []string) string {
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + table
}

func insertSQL(table string, cols []string) string {
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(ph, ", ") + ")"
}

// updateSQL sets every column but id from parameters numbered like cols.
// A version column is bumped and used as an optimistic lock.
func updateSQL(table string, cols []string) string {
	var (
		set     []string
		version int
	)
	for i, col := range cols {
		switch col {
		case "id":
		case "version":
			version = i + 1
			set = append(set, "version = version + 1")
		default:
			set = append(set, fmt.Sprintf("%s = $%d", col, i+1))
		}
	}
	q := "UPDATE " + table + " SET " + strings.Join(set, ", ") + " WHERE id = $1"
	if version > 0 {
		q += fmt.Sprintf(" AND version = $%d", version)
	}
	return q
}

func marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return b, nil
}

func unmarshal(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// translate maps driver errors onto domain errors. Serialization
// failures and deadlocks (SQLSTATE class 40) and unique violations mean
// another writer won the race.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	code := pq.ErrorCode(pgErr.Code)
	switch {
	case code.Class() == "40":
		return domain.Conflict(fmt.Sprintf("concurrent update: %s", code.Name()))
	case code.Name() == "unique_violation":
		return domain.Conflict(fmt.Sprintf("duplicate record: %s", pgErr.ConstraintName))
	}
	return err
}

// sendBatch runs b and reports the first failing statement.
func sendBatch(ctx context.Context, q querier, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	res := q.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := res.Exec(); err != nil {
			_ = res.Close()
			return translate(err)
		}
	}
	return res.Close()
}
