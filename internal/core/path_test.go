package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSchema(t *testing.T) {
	require.Equal(t, "root.db", NormalizeSchema("", "root.db", true))
	require.Equal(t, "root.db", NormalizeSchema("   ", "root.db", true))
	require.Equal(t, "root.ln", NormalizeSchema("root.ln", "root.db", true))
	require.Equal(t, "", NormalizeSchema("", "root.db", false))
	require.Equal(t, "root.ln", NormalizeSchema("root.ln", "root.db", false))
}

func TestNormalizeSQLSchema(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		require.Equal(t, "root.db", NormalizeSQLSchema("root.db", enabled))
		require.Equal(t, "", NormalizeSQLSchema("", enabled))
	}
}

func TestNormalizeTablePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "**"},
		{"  ", "**"},
		{"root", "root.**"},
		{"root.db", "root.db.**"},
		{"root.db.sensor1", "root.db.sensor1"},
		{"root.db.sensor1.temp", "root.db.sensor1.temp"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizeTablePath(c.in, true), "path %q", c.in)
		require.Equal(t, c.in, NormalizeTablePath(c.in, false), "disabled path %q", c.in)
	}
}
