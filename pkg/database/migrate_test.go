package database

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/care-record-api/pkg/config"
)

func TestMigrationsEmbedded(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS daily_records")
}

func TestMigrateAppliesInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migrations, err := Migrations()
	require.NoError(t, err)

	mock.ExpectBegin()
	for range migrations {
		mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	applied, err := Migrate(context.Background(), sqlx.NewDb(db, "postgres"))
	require.NoError(t, err)
	assert.Len(t, applied, len(migrations))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "care_records", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=care_records sslmode=disable", dsn)
}
