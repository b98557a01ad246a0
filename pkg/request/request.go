package request

import (
	"fmt"
	"strings"
)

// Method is the generic request method of a Config.
type Method int

const (
	GET Method = iota
	HEAD
	GETS
	HEADS
	POST
	PUT
	DELETE
	CRUD
)

var methodNames = [...]string{"GET", "HEAD", "GETS", "HEADS", "POST", "PUT", "DELETE", "CRUD"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// IsQuery reports whether m reads records instead of mutating them.
func (m Method) IsQuery() bool {
	switch m {
	case GET, HEAD, GETS, HEADS:
		return true
	}
	return false
}

// ParseMethod maps a method name to a Method, ignoring case.
func ParseMethod(s string) (Method, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("unknown request method %q", s)
}

// DefaultIDKey is used when Config.IDKey is empty.
const DefaultIDKey = "id"

// Config is the generic request the adapter serves. It is read-only to the adapter.
type Config struct {
	URI      string
	Account  string
	Password string

	Method Method
	Schema string
	Table  string

	IDKey   string
	ID      any
	IDIn    []any
	Content map[string]any
	Values  [][]any
}

// Key returns the configured id key, falling back to DefaultIDKey.
func (c *Config) Key() string {
	if c.IDKey == "" {
		return DefaultIDKey
	}
	return c.IDKey
}
