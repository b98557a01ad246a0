// Package executor runs update and query statements over store sessions and
// turns the outcome into the uniform document shape callers expect.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TechXTT/iotorm/internal/core"
	"github.com/TechXTT/iotorm/internal/plugin"
	"github.com/TechXTT/iotorm/pkg/document"
	"github.com/TechXTT/iotorm/pkg/request"
	"github.com/TechXTT/iotorm/pkg/store"
)

// ErrNoSession is returned when no session could be resolved for a config.
var ErrNoSession = errors.New("no session for config")

// Sessions resolves the session serving a config. *runtime.Registry implements it.
type Sessions interface {
	Session(ctx context.Context, cfg *request.Config, autoCreate bool) (store.Session, error)
}

// Executor runs statements for generic request configs.
type Executor struct {
	sessions      Sessions
	defaultSchema string
	hooks         plugin.Hooks
	log           *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithDefaultSchema sets the schema used when a config names none.
func WithDefaultSchema(schema string) Option {
	return func(e *Executor) { e.defaultSchema = schema }
}

// WithHooks installs execution hooks.
func WithHooks(h plugin.Hooks) Option {
	return func(e *Executor) {
		if h != nil {
			e.hooks = h
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Executor resolving sessions through sessions.
func New(sessions Sessions, opts ...Option) *Executor {
	e := &Executor{sessions: sessions, hooks: plugin.Nop{}, log: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Execute runs stmt as a query or an update depending on cfg's method.
func (e *Executor) Execute(ctx context.Context, cfg *request.Config, stmt string, loose bool) (*document.Document, error) {
	if cfg.Method.IsQuery() {
		return e.ExecQuery(ctx, cfg, stmt, loose)
	}
	return e.ExecuteUpdate(ctx, nil, cfg, stmt)
}

func (e *Executor) session(ctx context.Context, sess store.Session, cfg *request.Config) (store.Session, error) {
	if sess != nil {
		return sess, nil
	}
	s, err := e.sessions.Session(ctx, cfg, true)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// ExecUpdate runs an update and returns only its count.
func (e *Executor) ExecUpdate(ctx context.Context, cfg *request.Config, stmt string) (int, error) {
	res, err := e.ExecuteUpdate(ctx, nil, cfg, stmt)
	if err != nil {
		return 0, err
	}
	return res.Count(), nil
}

// ExecuteUpdate runs a statement returning no rows over sess, or over the
// registry session of cfg when sess is nil.
func (e *Executor) ExecuteUpdate(ctx context.Context, sess store.Session, cfg *request.Config, stmt string) (*document.Document, error) {
	s, err := e.session(ctx, sess, cfg)
	if err != nil {
		return nil, err
	}
	if err := e.hooks.BeforeUpdate(ctx, cfg, stmt); err != nil {
		return nil, err
	}
	if err := s.Exec(ctx, stmt); err != nil {
		e.hooks.AfterUpdate(ctx, cfg, stmt, 0, err)
		return nil, fmt.Errorf("execute update: %w", err)
	}
	res := UpdateResult(cfg)
	e.hooks.AfterUpdate(ctx, cfg, stmt, res.Count(), nil)
	e.log.Debug("update executed", "method", cfg.Method.String(), "count", res.Count())
	return res, nil
}

// UpdateResult builds the success envelope of a mutation on cfg. Targeted ids
// are echoed under the id key, id lists under the id key plus "[]".
//
// The count is the number of value rows for POST and the content size for PUT.
// Other methods count the id list when only a list is given and 1 otherwise;
// the store does not report affected rows, so 1 is a placeholder for
// statement-driven bulk operations.
func UpdateResult(cfg *request.Config) *document.Document {
	res := document.NewSuccess()
	key := cfg.Key()
	if cfg.ID != nil {
		res.Set(key, cfg.ID)
	}
	if cfg.IDIn != nil {
		res.Set(key+"[]", cfg.IDIn)
	}

	var count int
	switch cfg.Method {
	case request.POST:
		count = len(cfg.Values)
	case request.PUT:
		count = len(cfg.Content)
	default:
		count = 1
		if cfg.ID == nil && cfg.IDIn != nil {
			count = len(cfg.IDIn)
		}
	}
	res.Set(document.KeyCount, count)
	return res
}

// ExecQuery runs a query and folds the rows into one document: the first row,
// carrying every row under document.KeyRawList when there is more than one.
// It returns nil when the query produced no columns or no rows.
func (e *Executor) ExecQuery(ctx context.Context, cfg *request.Config, stmt string, loose bool) (*document.Document, error) {
	docs, err := e.ExecuteQuery(ctx, nil, cfg, stmt, loose)
	if err != nil {
		return nil, err
	}
	return Fold(docs), nil
}

// Fold returns the single-object form of docs.
func Fold(docs []*document.Document) *document.Document {
	if len(docs) == 0 {
		return nil
	}
	if len(docs) == 1 {
		return docs[0]
	}
	// the primary is a copy so the raw list does not contain itself
	primary := docs[0].Clone()
	primary.Set(document.KeyRawList, docs)
	return primary
}

// ExecuteQuery runs a statement returning rows over sess, or over the registry
// session of cfg when sess is nil. It returns nil when the store reports no
// columns and an empty slice when there are columns but no rows.
func (e *Executor) ExecuteQuery(ctx context.Context, sess store.Session, cfg *request.Config, stmt string, loose bool) (docs []*document.Document, err error) {
	s, err := e.session(ctx, sess, cfg)
	if err != nil {
		return nil, err
	}
	if err := e.hooks.BeforeQuery(ctx, cfg, stmt); err != nil {
		return nil, err
	}
	defer func() { e.hooks.AfterQuery(ctx, cfg, stmt, len(docs), err) }()

	ds, err := s.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	if ds == nil {
		return nil, nil
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil {
			e.log.Warn("close result set failed", "error", cerr)
		}
	}()

	cols := ds.Columns()
	if len(cols) == 0 {
		return nil, nil
	}
	names := StripPrefix(cols, QualifiedPrefix(e.schema(cfg), cfg.Table))
	docs, err = Materialize(ds, names, loose)
	if err != nil {
		return nil, err
	}
	e.log.Debug("query executed", "method", cfg.Method.String(), "rows", len(docs))
	return docs, nil
}

func (e *Executor) schema(cfg *request.Config) string {
	return core.NormalizeSQLSchema(core.NormalizeSchema(cfg.Schema, e.defaultSchema, true), true)
}
