package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild_WithAllClauses(t *testing.T) {
	sb := NewSelectBuilder(true).
		From("root.db").
		Select("temp", "humidity").
		Where("temp > 20").
		Between(100, 200).
		OrderBy("time DESC").
		Limit(10).
		Offset(5).
		AlignByDevice()

	require.Equal(t,
		"SELECT temp, humidity FROM root.db.** WHERE temp > 20 AND time >= 100 AND time <= 200 ORDER BY time DESC LIMIT 10 OFFSET 5 ALIGN BY DEVICE",
		sb.Build(),
	)
}

func TestBuild_Defaults(t *testing.T) {
	require.Equal(t, "SELECT * FROM **", NewSelectBuilder(true).Build())
	require.Equal(t, "SELECT * FROM root.db.sensor1", NewSelectBuilder(true).From("root.db.sensor1").Build())
	require.Equal(t, "SELECT * FROM sensors", NewSelectBuilder(false).From("sensors").Build())
}

func TestBuildCount(t *testing.T) {
	sb := NewSelectBuilder(true).
		From("root.db.sensor1").
		Select("temp").
		Where("temp > 5").
		Limit(3)

	require.Equal(t, "SELECT COUNT(temp) FROM root.db.sensor1 WHERE temp > 5", sb.BuildCount())
	// the builder is left as it was
	require.Equal(t, "SELECT temp FROM root.db.sensor1 WHERE temp > 5 LIMIT 3", sb.Build())
}
