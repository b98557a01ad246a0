// File: internal/core/builder.go
package core

import (
	"fmt"
	"strings"
)

// SelectBuilder is a fluent builder for native point and range select statements
type SelectBuilder struct {
	storeEnabled bool
	path         string
	selectCols   []string
	whereOps     []string
	orderBy      string
	limit        int
	offset       int
	alignByDev   bool
}

// NewSelectBuilder returns a builder; storeEnabled controls path widening in From.
func NewSelectBuilder(storeEnabled bool) *SelectBuilder {
	return &SelectBuilder{storeEnabled: storeEnabled}
}

// From sets the series path, widened to match deeper levels when not fully qualified
func (sb *SelectBuilder) From(path string) *SelectBuilder {
	sb.path = NormalizeTablePath(path, sb.storeEnabled)
	return sb
}

func (sb *SelectBuilder) Select(cols ...string) *SelectBuilder {
	sb.selectCols = cols
	return sb
}

// Where adds a condition; conditions are joined with AND
func (sb *SelectBuilder) Where(cond string) *SelectBuilder {
	sb.whereOps = append(sb.whereOps, cond)
	return sb
}

// Between adds a closed time range condition
func (sb *SelectBuilder) Between(from, to int64) *SelectBuilder {
	return sb.Where(fmt.Sprintf("time >= %d AND time <= %d", from, to))
}

// OrderBy sets the ORDER BY clause
func (sb *SelectBuilder) OrderBy(order string) *SelectBuilder {
	sb.orderBy = order
	return sb
}

// Limit sets the LIMIT clause
func (sb *SelectBuilder) Limit(n int) *SelectBuilder {
	sb.limit = n
	return sb
}

// Offset sets the OFFSET clause
func (sb *SelectBuilder) Offset(n int) *SelectBuilder {
	sb.offset = n
	return sb
}

// AlignByDevice groups result columns per device
func (sb *SelectBuilder) AlignByDevice() *SelectBuilder {
	sb.alignByDev = true
	return sb
}

// Build assembles the statement string
func (sb *SelectBuilder) Build() string {
	parts := []string{"SELECT"}
	if len(sb.selectCols) > 0 {
		parts = append(parts, strings.Join(sb.selectCols, ", "))
	} else {
		parts = append(parts, "*")
	}
	path := sb.path
	if path == "" {
		path = NormalizeTablePath("", sb.storeEnabled)
	}
	parts = append(parts, "FROM", path)
	if len(sb.whereOps) > 0 {
		parts = append(parts, "WHERE", strings.Join(sb.whereOps, " AND "))
	}
	if sb.orderBy != "" {
		parts = append(parts, "ORDER BY", sb.orderBy)
	}
	if sb.limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d", sb.limit))
	}
	if sb.offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET %d", sb.offset))
	}
	if sb.alignByDev {
		parts = append(parts, "ALIGN BY DEVICE")
	}
	return strings.Join(parts, " ")
}

// BuildCount assembles a COUNT statement over the selected columns, ignoring
// ordering and paging
func (sb *SelectBuilder) BuildCount() string {
	cols := sb.selectCols
	if len(cols) == 0 {
		cols = []string{"*"}
	}
	counted := make([]string, len(cols))
	for i, c := range cols {
		counted[i] = "COUNT(" + c + ")"
	}
	original := *sb
	sb.selectCols = counted
	sb.orderBy, sb.limit, sb.offset, sb.alignByDev = "", 0, 0, false
	stmt := sb.Build()
	*sb = original
	return stmt
}
