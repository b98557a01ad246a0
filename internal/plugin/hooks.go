// File: internal/plugin/hooks.go
package plugin

import (
	"context"

	"github.com/TechXTT/iotorm/pkg/request"
)

// Hooks defines callbacks around statement execution. An error from a Before
// hook aborts the statement; After hooks observe the outcome.
type Hooks interface {
	BeforeQuery(ctx context.Context, cfg *request.Config, stmt string) error
	AfterQuery(ctx context.Context, cfg *request.Config, stmt string, rows int, err error)
	BeforeUpdate(ctx context.Context, cfg *request.Config, stmt string) error
	AfterUpdate(ctx context.Context, cfg *request.Config, stmt string, count int, err error)
}

// Nop implements Hooks with no-ops; embed it to override a subset.
type Nop struct{}

func (Nop) BeforeQuery(context.Context, *request.Config, string) error { return nil }
func (Nop) AfterQuery(context.Context, *request.Config, string, int, error) {}
func (Nop) BeforeUpdate(context.Context, *request.Config, string) error { return nil }
func (Nop) AfterUpdate(context.Context, *request.Config, string, int, error) {}
