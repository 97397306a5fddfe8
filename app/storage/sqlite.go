package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"nuclight.org/feeds-tg-bot/app/audit"
	e "nuclight.org/feeds-tg-bot/pkg/entities"
)

// SQLite mirrors audit rows into a database table.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(ctx context.Context, filePath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite3 database: %w", err)
	}

	client := &SQLite{
		db: db,
	}

	err = client.init(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing sqlite3 database: %w", err)
	}

	return client, nil
}

func (c *SQLite) Close() error {
	return c.db.Close()
}

func (c *SQLite) Write(ctx context.Context, row audit.Row) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO audit_log (
			user_id, nickname, motion, api, date, time, answer, created_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP
		)`,
		row.UserID, row.Nickname, string(row.Motion), row.API, row.Date, row.Time, row.Answer,
	)
	if err != nil {
		return fmt.Errorf("inserting audit row: %w", err)
	}

	return nil
}

// ListRows returns up to limit rows, oldest first.
func (c *SQLite) ListRows(ctx context.Context, limit int) ([]audit.Row, error) {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT user_id, nickname, motion, api, date, time, answer
			FROM audit_log ORDER BY id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []audit.Row
	for rows.Next() {
		var (
			row    audit.Row
			motion string
		)
		if err = rows.Scan(&row.UserID, &row.Nickname, &motion, &row.API, &row.Date, &row.Time, &row.Answer); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		row.Motion = e.Motion(motion)
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit rows: %w", err)
	}

	return result, nil
}

//go:embed init.sql
var initQuery string

func (c *SQLite) init(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, initQuery)
	return err
}
