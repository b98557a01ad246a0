package iotorm_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iotorm "github.com/TechXTT/iotorm"
	"github.com/TechXTT/iotorm/pkg/logging"
	"github.com/TechXTT/iotorm/pkg/request"
	"github.com/TechXTT/iotorm/pkg/runtime"
	"github.com/TechXTT/iotorm/pkg/store"
	"github.com/TechXTT/iotorm/pkg/store/sqlstore"
)

func mockOpener(t *testing.T, db *sql.DB, opened *[]store.Endpoint) store.Opener {
	t.Helper()
	return store.OpenerFunc(func(_ context.Context, ep store.Endpoint) (store.Session, error) {
		*opened = append(*opened, ep)
		return sqlstore.New(db), nil
	})
}

// TestDB_QueryAndUpdate runs both statement kinds through one cached session.
func TestDB_QueryAndUpdate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO root.db.sensor1`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT temp FROM root.db.sensor1`).
		WillReturnRows(sqlmock.NewRows([]string{"Time", "root.db.sensor1.temp"}).
			AddRow(int64(1), 20.5).
			AddRow(int64(2), 21.5))
	mock.ExpectClose()

	var opened []store.Endpoint
	db := iotorm.Open(
		iotorm.WithOpener(mockOpener(t, mockDB, &opened)),
		iotorm.WithLogger(logging.Discard()),
		iotorm.WithDefaultSchema("root.db"),
	)

	cfg := &request.Config{
		URI:     "iotdb://127.0.0.1:6667",
		Account: "root",
		Method:  request.POST,
		Table:   "sensor1",
		Values:  [][]any{{int64(1), 20.5}},
	}
	res, err := db.Execute(context.Background(), cfg, "INSERT INTO root.db.sensor1(timestamp, temp) VALUES (1, 20.5)", true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count())

	query := *cfg
	query.Method = request.GETS
	docs, err := db.Query(context.Background(), &query, "SELECT temp FROM root.db.sensor1", true)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, []string{"Time", "temp"}, docs[1].Keys())

	require.Len(t, opened, 1)
	assert.Equal(t, "127.0.0.1", opened[0].Host)
	assert.Equal(t, 6667, opened[0].Port)

	db.Close()
	assert.Equal(t, 0, db.Registry.Len())
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = db.Execute(context.Background(), cfg, "INSERT", true)
	assert.ErrorIs(t, err, runtime.ErrRegistryClosed)
}
