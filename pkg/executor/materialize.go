package executor

import (
	"fmt"
	"strings"

	"github.com/TechXTT/iotorm/internal/typeconv"
	"github.com/TechXTT/iotorm/pkg/document"
	"github.com/TechXTT/iotorm/pkg/store"
)

// QualifiedPrefix returns the "schema.table." prefix the store puts on column names.
func QualifiedPrefix(schema, table string) string {
	return schema + "." + table + "."
}

// StripPrefix removes prefix from every column name starting with it.
func StripPrefix(columns []string, prefix string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = strings.TrimPrefix(c, prefix)
	}
	return out
}

// Materialize drains ds into one document per row. The first column holds the
// row timestamp, the rest hold the fields in order; missing fields are nil.
// With loose set, values are kept as the decoder produced them, otherwise they
// are normalized by typeconv.Normalize.
func Materialize(ds store.DataSet, columns []string, loose bool) ([]*document.Document, error) {
	docs := []*document.Document{}
	for {
		ok, err := ds.Next()
		if err != nil {
			return nil, fmt.Errorf("fetch row: %w", err)
		}
		if !ok {
			return docs, nil
		}
		row, err := ds.Row()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		docs = append(docs, rowDocument(columns, row, loose))
	}
}

func rowDocument(columns []string, row store.Row, loose bool) *document.Document {
	d := document.New(len(columns))
	if len(columns) == 0 {
		return d
	}
	d.Set(columns[0], value(row.Timestamp, loose))
	for i, name := range columns[1:] {
		var v any
		if i < len(row.Values) {
			v = row.Values[i]
		}
		d.Set(name, value(v, loose))
	}
	return d
}

func value(v any, loose bool) any {
	if loose {
		return v
	}
	return typeconv.Normalize(v)
}
