package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"developer-registry/internal/domain"
)

var developerColumns = []string{"id", "email", "first_name", "last_name", "specialty", "status"}

func newMockRepo(t *testing.T) (*DeveloperRepo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewDeveloperRepo(db), mock
}

func TestDeveloperRepo_SaveInsertsTransient(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO "developers"`).
		WithArgs("haha@mail.ru", "Jully", "Nino", "java", "ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	d := &domain.Developer{Email: "haha@mail.ru", FirstName: "Jully", LastName: "Nino", Specialty: "java", Status: domain.StatusActive}
	require.NoError(t, r.Save(context.Background(), d))

	assert.Equal(t, int64(7), d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeveloperRepo_SaveUpdatesPersisted(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectExec(`UPDATE "developers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	d := &domain.Developer{ID: 2, Email: "updated@mail.com", FirstName: "Paul", LastName: "Rysef", Specialty: "java", Status: domain.StatusDeleted}
	require.NoError(t, r.Save(context.Background(), d))

	assert.Equal(t, int64(2), d.ID)
	assert.Equal(t, domain.StatusDeleted, d.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeveloperRepo_SaveDuplicateEmail(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO "developers"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_developers_email" (SQLSTATE 23505)`))

	d := &domain.Developer{Email: "haha@mail.ru", Status: domain.StatusActive}
	err := r.Save(context.Background(), d)

	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Zero(t, d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeveloperRepo_SaveStoreFailure(t *testing.T) {
	r, mock := newMockRepo(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(`INSERT INTO "developers"`).WillReturnError(boom)

	err := r.Save(context.Background(), &domain.Developer{Email: "a@b.c"})

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestDeveloperRepo_FindByID(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "developers" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(developerColumns).AddRow(3, "mia@mail.ru", "Mia", "Milova", "php", "DELETED"))

	d, err := r.FindByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, domain.Developer{ID: 3, Email: "mia@mail.ru", FirstName: "Mia", LastName: "Milova", Specialty: "php", Status: domain.StatusDeleted}, *d)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeveloperRepo_FindByIDMissing(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "developers" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(developerColumns))

	d, err := r.FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDeveloperRepo_FindByEmail(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "developers" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(developerColumns).AddRow(1, "john.doe@mail.com", "John", "Doe", "Java", "ACTIVE"))

	d, err := r.FindByEmail(context.Background(), "john.doe@mail.com")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, int64(1), d.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeveloperRepo_FindAll(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "developers" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(developerColumns).
			AddRow(1, "a@mail.ru", "A", "A", "java", "ACTIVE").
			AddRow(2, "b@mail.ru", "B", "B", "php", "DELETED"))

	ds, err := r.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, int64(1), ds[0].ID)
	assert.Equal(t, domain.StatusDeleted, ds[1].Status)
}

func TestDeveloperRepo_FindAllEmpty(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "developers"`).WillReturnRows(sqlmock.NewRows(developerColumns))

	ds, err := r.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
}

func TestDeveloperRepo_FindByStatusAndSpecialty(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "developers" WHERE status = \$1 AND specialty = \$2 ORDER BY id`).
		WithArgs("ACTIVE", "java").
		WillReturnRows(sqlmock.NewRows(developerColumns).
			AddRow(1, "a@mail.ru", "A", "A", "java", "ACTIVE").
			AddRow(2, "b@mail.ru", "B", "B", "java", "ACTIVE"))

	ds, err := r.FindByStatusAndSpecialty(context.Background(), domain.StatusActive, "java")
	require.NoError(t, err)
	assert.Len(t, ds, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeveloperRepo_DeleteByID(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM "developers" WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.DeleteByID(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeveloperRepo_ExistsByID(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "developers" WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "developers" WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := r.ExistsByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ExistsByID(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
