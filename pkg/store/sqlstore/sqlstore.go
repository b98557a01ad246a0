// Package sqlstore backs the store contract with a database/sql handle, so a
// relational time-series table (PostgreSQL, TimescaleDB) answers in the same
// document shape as IoTDB. The first selected column plays the timestamp role.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	_ "github.com/lib/pq"

	"github.com/TechXTT/iotorm/pkg/store"
)

// DriverName is the database/sql driver sessions are opened with.
const DriverName = "postgres"

// DSN builds a lib/pq connection URL from the endpoint. Credentials become URL
// user info and sslmode=disable is added when the URI does not choose one.
func DSN(ep store.Endpoint) (string, error) {
	if ep.URI == "" {
		return "", fmt.Errorf("DSN is empty")
	}
	u, err := url.Parse(ep.URI)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	if u.Scheme == "postgresql" {
		u.Scheme = "postgres"
	}
	if u.Host == "" {
		u.Host = ep.Host + ":" + strconv.Itoa(ep.Port)
	}
	if ep.Account != "" {
		if ep.Credential != "" {
			u.User = url.UserPassword(ep.Account, ep.Credential)
		} else {
			u.User = url.User(ep.Account)
		}
	}
	q := u.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Opener opens sessions with lib/pq.
type Opener struct{}

func (Opener) Open(ctx context.Context, ep store.Endpoint) (store.Session, error) {
	dsn, err := DSN(ep)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return New(db), nil
}

// Session wraps a *sql.DB.
type Session struct {
	DB *sql.DB
}

// New wraps an existing handle.
func New(db *sql.DB) *Session {
	return &Session{DB: db}
}

func (s *Session) Exec(ctx context.Context, stmt string) error {
	_, err := s.DB.ExecContext(ctx, stmt)
	return err
}

func (s *Session) Query(ctx context.Context, stmt string) (store.DataSet, error) {
	rows, err := s.DB.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	return &dataSet{rows: rows, cols: cols}, nil
}

func (s *Session) Close() error {
	return s.DB.Close()
}

type dataSet struct {
	rows *sql.Rows
	cols []string
}

func (d *dataSet) Columns() []string { return d.cols }

func (d *dataSet) Next() (bool, error) {
	if d.rows.Next() {
		return true, nil
	}
	if err := d.rows.Err(); err != nil {
		return false, fmt.Errorf("error iterating rows: %w", err)
	}
	return false, nil
}

func (d *dataSet) Row() (store.Row, error) {
	vals := make([]any, len(d.cols))
	ptrs := make([]any, len(d.cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := d.rows.Scan(ptrs...); err != nil {
		return store.Row{}, fmt.Errorf("failed to scan row: %w", err)
	}
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			vals[i] = string(b)
		}
	}
	if len(vals) == 0 {
		return store.Row{}, nil
	}
	return store.Row{Timestamp: vals[0], Values: vals[1:]}, nil
}

func (d *dataSet) Close() error {
	return d.rows.Close()
}
