// Package store defines what the adapter needs from a time-series store client:
// opening an authenticated session, running statements over it and pulling
// rows out of a result cursor.
package store

import (
	"context"
	"fmt"
)

// DefaultPort is the store's RPC port used when a URI carries none.
const DefaultPort = 6667

// Endpoint is everything a back-end needs to open a session.
type Endpoint struct {
	URI        string
	Host       string
	Port       int
	Account    string
	Credential string
}

// Addr returns host:port.
func (e Endpoint) Addr() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// Opener opens sessions against a store.
type Opener interface {
	Open(ctx context.Context, ep Endpoint) (Session, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, ep Endpoint) (Session, error)

func (f OpenerFunc) Open(ctx context.Context, ep Endpoint) (Session, error) {
	return f(ctx, ep)
}

// Session is an open, authenticated channel to the store.
type Session interface {
	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, stmt string) error
	// Query runs a statement that returns rows.
	Query(ctx context.Context, stmt string) (DataSet, error)
	Close() error
}

// DataSet is a pull cursor over query results. Columns lists the column held by
// Row.Timestamp first, followed by one name per field of each Row. Results with
// no timestamp, such as aggregates, put their first field in Row.Timestamp.
type DataSet interface {
	Columns() []string
	Next() (bool, error)
	Row() (Row, error)
	Close() error
}

// Row is one record of a DataSet. A nil entry in Values is a null field.
type Row struct {
	Timestamp any
	Values    []any
}
