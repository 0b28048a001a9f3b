package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/models"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		raw      string
		wantPath string
		wantDSN  string
	}{
		{
			raw:      "sqlite://data/app.db",
			wantPath: "data/app.db",
			wantDSN:  "file:data/app.db?_foreign_keys=on&_busy_timeout=5000",
		},
		{
			raw:      "file:/tmp/app.db?cache=shared",
			wantPath: "/tmp/app.db",
			wantDSN:  "file:/tmp/app.db?cache=shared&_foreign_keys=on&_busy_timeout=5000",
		},
		{
			raw:      "app.db",
			wantPath: "app.db",
			wantDSN:  "file:app.db?_foreign_keys=on&_busy_timeout=5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			path, dsn := sqliteDSN(tt.raw)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}

func TestNewConnectDB_UnsupportedDSN(t *testing.T) {
	_, err := NewConnectDB(context.Background(), config.DB{DSN: "mysql://root@localhost/db"}, logger.Nop())
	assert.True(t, errors.Is(err, ErrUnsupportedDSN))
}

func TestNewConnectDB_SQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.db")

	db, err := NewConnectDB(context.Background(), config.DB{DSN: "sqlite://" + path}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, DialectSQLite, db.Dialect())
	require.NoError(t, db.Migrate(context.Background()))
}

func TestQueryPlaceholders(t *testing.T) {
	pg := newDB(nil, DialectPostgres, logger.Nop())
	lite := newDB(nil, DialectSQLite, logger.Nop())

	query, args, err := pg.findUserByUsernameQuery("alice")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, username, email, first_name, last_name, password, date_joined FROM users WHERE username = $1", query)
	assert.Equal(t, []any{"alice"}, args)

	query, _, err = lite.findUserByUsernameQuery("alice")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, username, email, first_name, last_name, password, date_joined FROM users WHERE username = ?", query)
}

func TestQueriesUseModelTables(t *testing.T) {
	db := newDB(nil, DialectPostgres, logger.Nop())

	query, _, err := db.listDatasetsQuery()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM "+models.Dataset{}.TableName()+" d JOIN "+models.User{}.TableName()+" u ON u.id = d.owner_id")

	query, _, err = db.findSessionQuery("s1")
	require.NoError(t, err)
	assert.Contains(t, query, "FROM "+models.Session{}.TableName()+" WHERE id = $1")

	query, _, err = db.updatePasswordQuery(1, "hash")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "UPDATE "+models.User{}.TableName()+" SET"))
}

func TestUpdateProfileQuery_Empty(t *testing.T) {
	db := newDB(nil, DialectPostgres, logger.Nop())

	_, _, err := db.updateProfileQuery(1, models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}
