// Package iotdb backs the store contract with the Apache IoTDB Go client.
package iotdb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/apache/iotdb-client-go/client"

	"github.com/TechXTT/iotorm/pkg/store"
)

// TimeColumn is the name IoTDB gives the timestamp column.
const TimeColumn = "Time"

// Opener opens IoTDB sessions.
type Opener struct {
	RPCCompression bool
	ConnectTimeout time.Duration
	FetchSize      int32

	// QueryTimeout bounds each query statement; zero leaves it to the server.
	QueryTimeout time.Duration
}

// NewOpener returns an Opener with client defaults.
func NewOpener() *Opener {
	return &Opener{FetchSize: 1024}
}

// Open connects and authenticates a new session.
func (o *Opener) Open(ctx context.Context, ep store.Endpoint) (store.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := &client.Config{
		Host:     ep.Host,
		Port:     strconv.Itoa(ep.Port),
		UserName: ep.Account,
		Password: ep.Credential,
	}
	if o.FetchSize > 0 {
		cfg.FetchSize = o.FetchSize
	}
	s := &session{s: client.NewSession(cfg), queryTimeout: o.QueryTimeout}
	if err := s.s.Open(o.RPCCompression, int(o.ConnectTimeout/time.Millisecond)); err != nil {
		return nil, fmt.Errorf("open iotdb session %s: %w", ep.Addr(), err)
	}
	return s, nil
}

type session struct {
	s            client.Session
	queryTimeout time.Duration
}

func (s *session) Exec(ctx context.Context, stmt string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer recoverInto(&err, "execute statement")
	status, err := s.s.ExecuteNonQueryStatement(stmt)
	if err != nil {
		return err
	}
	return client.VerifySuccess(status)
}

func (s *session) Query(ctx context.Context, stmt string) (_ store.DataSet, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer recoverInto(&err, "execute query")
	var timeout *int64
	if s.queryTimeout > 0 {
		ms := s.queryTimeout.Milliseconds()
		timeout = &ms
	}
	ds, err := s.s.ExecuteQueryStatement(stmt, timeout)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, nil
	}
	return &dataSet{ds: ds}, nil
}

func (s *session) Close() error {
	_, err := s.s.Close()
	return err
}

// recoverInto turns a panic inside the client into an error. The client
// dereferences a nil response when the transport drops mid-call.
func recoverInto(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: client failure: %v", op, r)
	}
}

type dataSet struct {
	ds *client.SessionDataSet
}

// Columns prepends the timestamp column, which the client reports separately.
// Results without a timestamp list their own columns only.
func (d *dataSet) Columns() []string {
	n := d.ds.GetColumnCount()
	if n == 0 {
		return nil
	}
	cols := make([]string, 0, n+1)
	if !d.ds.IsIgnoreTimeStamp() {
		cols = append(cols, TimeColumn)
	}
	for i := 0; i < n; i++ {
		cols = append(cols, d.ds.GetColumnName(i))
	}
	return cols
}

func (d *dataSet) Next() (bool, error) {
	return d.ds.Next()
}

func (d *dataSet) Row() (store.Row, error) {
	rec, err := d.ds.GetRowRecord()
	if err != nil {
		return store.Row{}, err
	}
	vals := make([]any, 0, len(rec.GetFields()))
	for _, f := range rec.GetFields() {
		var v any
		if f != nil {
			v = f.GetValue()
		}
		vals = append(vals, v)
	}
	if d.ds.IsIgnoreTimeStamp() {
		if len(vals) == 0 {
			return store.Row{Values: vals}, nil
		}
		return store.Row{Timestamp: vals[0], Values: vals[1:]}, nil
	}
	return store.Row{Timestamp: rec.GetTimestamp(), Values: vals}, nil
}

func (d *dataSet) Close() error {
	return d.ds.Close()
}
