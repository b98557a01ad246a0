// Package iotorm lets a generic ORM request model run statements against a
// hierarchical time-series store and get back uniform documents.
package iotorm

import (
	"context"
	"log/slog"

	"github.com/TechXTT/iotorm/internal/plugin"
	"github.com/TechXTT/iotorm/pkg/document"
	"github.com/TechXTT/iotorm/pkg/executor"
	"github.com/TechXTT/iotorm/pkg/request"
	"github.com/TechXTT/iotorm/pkg/runtime"
	"github.com/TechXTT/iotorm/pkg/store"
)

// DB bundles the session registry and the statement executor
type DB struct {
	Registry *runtime.Registry
	Executor *executor.Executor
}

type options struct {
	opener        store.Opener
	logger        *slog.Logger
	defaultSchema string
	hooks         plugin.Hooks
}

// Option configures Open
type Option func(*options)

// WithOpener replaces the scheme-dispatching connector
func WithOpener(o store.Opener) Option { return func(opts *options) { opts.opener = o } }

func WithLogger(l *slog.Logger) Option { return func(opts *options) { opts.logger = l } }

// WithDefaultSchema sets the schema used for configs naming none
func WithDefaultSchema(s string) Option { return func(opts *options) { opts.defaultSchema = s } }

func WithHooks(h plugin.Hooks) Option { return func(opts *options) { opts.hooks = h } }

// Open builds a DB. No session is opened until the first statement runs.
func Open(opts ...Option) *DB {
	o := &options{logger: slog.Default()}
	for _, fn := range opts {
		fn(o)
	}
	if o.opener == nil {
		o.opener = runtime.NewConnector()
	}
	reg := runtime.NewRegistry(o.opener, runtime.WithLogger(o.logger))
	exec := executor.New(reg,
		executor.WithDefaultSchema(o.defaultSchema),
		executor.WithHooks(o.hooks),
		executor.WithLogger(o.logger),
	)
	return &DB{Registry: reg, Executor: exec}
}

// Execute runs stmt as a query or update according to cfg's method
func (db *DB) Execute(ctx context.Context, cfg *request.Config, stmt string, loose bool) (*document.Document, error) {
	return db.Executor.Execute(ctx, cfg, stmt, loose)
}

// Query returns every row of stmt as its own document
func (db *DB) Query(ctx context.Context, cfg *request.Config, stmt string, loose bool) ([]*document.Document, error) {
	return db.Executor.ExecuteQuery(ctx, nil, cfg, stmt, loose)
}

// Close drains all cached sessions. Call it once on shutdown.
func (db *DB) Close() {
	db.Registry.Close()
}
