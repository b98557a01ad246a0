package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetKeepsFirstPosition(t *testing.T) {
	d := New(3)
	d.Set("time", int64(1))
	d.Set("temp", 20.5)
	d.Set("time", int64(2))

	assert.Equal(t, []string{"time", "temp"}, d.Keys())
	v, ok := d.Get("time")
	require.True(t, ok)
	assert.Equal(t, int64(2), v)
	assert.Equal(t, 2, d.Len())
}

func TestMarshalJSONOrdered(t *testing.T) {
	d := New(3)
	d.Set("z", 1)
	d.Set("a", nil)
	d.Set("m", "x")

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":null,"m":"x"}`, string(b))
}

func TestMarshalNested(t *testing.T) {
	row := New(1)
	row.Set("v", 1)
	d := New(2)
	d.Set("v", 1)
	d.Set(KeyRawList, []*Document{row, row})

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1,"@RAW@LIST":[{"v":1},{"v":1}]}`, string(b))
	assert.Len(t, d.RawList(), 2)
}

func TestNewSuccess(t *testing.T) {
	d := NewSuccess()
	d.Set(KeyCount, 3)
	assert.Equal(t, []string{KeyCode, KeyMsg, KeyCount}, d.Keys())
	assert.Equal(t, 3, d.Count())
}

func TestClone(t *testing.T) {
	d := New(2)
	d.Set("a", 1)
	c := d.Clone()
	c.Set("b", 2)

	assert.Equal(t, []string{"a"}, d.Keys())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}
