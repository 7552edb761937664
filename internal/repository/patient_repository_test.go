package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
	}
	return sqlxDB, mock, cleanup
}

var patientRowColumns = []string{"id", "hn", "name", "surname", "gender", "dob", "created_at", "updated_at"}

func TestPatientRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPatientRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(patientRowColumns).
		AddRow("p1", "HN001", "Somchai", "Lee", "M", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), now, now).
		AddRow("p2", "HN002", "Malee", "Suk", "F", time.Date(1950, 6, 15, 0, 0, 0, 0, time.UTC), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, hn, name, surname, gender, dob, created_at, updated_at FROM patients ORDER BY name ASC, surname ASC, hn ASC")).
		WillReturnRows(rows)

	patients, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "HN001", patients[0].HN)
	assert.Equal(t, "Suk", patients[1].Surname)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPatientRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM patients WHERE id = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	patient, err := repo.FindByID(context.Background(), "ghost")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.Nil(t, patient)
}
