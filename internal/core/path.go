// File: internal/core/path.go
package core

import "strings"

// MatchAll is the store wildcard matching every level below a node.
const MatchAll = "**"

// qualifiedDepth is the number of dot segments of a fully qualified series path.
const qualifiedDepth = 3

// NormalizeSchema substitutes defaultSchema for a blank schema when the store is enabled.
func NormalizeSchema(schema, defaultSchema string, storeEnabled bool) string {
	if storeEnabled && strings.TrimSpace(schema) == "" {
		return defaultSchema
	}
	return schema
}

// NormalizeSQLSchema maps a schema to the form used inside statements.
// There is no rewriting for the store yet.
func NormalizeSQLSchema(schema string, storeEnabled bool) string {
	return schema
}

// NormalizeTablePath widens a generic table path so it matches the store hierarchy.
// A blank path matches everything, a path shorter than a full series path gets a
// trailing ".**", and a full series path is returned unchanged.
func NormalizeTablePath(path string, storeEnabled bool) string {
	if !storeEnabled {
		return path
	}
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return MatchAll
	}
	if len(strings.Split(trimmed, ".")) >= qualifiedDepth {
		return path
	}
	return path + "." + MatchAll
}
