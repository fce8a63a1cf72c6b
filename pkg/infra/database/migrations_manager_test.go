package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func withRegistry(t *testing.T, migrations ...Migration) {
	t.Helper()
	registryMu.Lock()
	saved := migrationsRegistry
	migrationsRegistry = make(map[string]Migration)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		migrationsRegistry = saved
		registryMu.Unlock()
	})
	for _, m := range migrations {
		RegisterMigration(m)
	}
}

func execMigration(id, stmt string) Migration {
	return Migration{
		ID:   id,
		Name: id,
		Up: func(db *gorm.DB) error {
			return db.Exec(stmt).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + id).Error
		},
	}
}

func TestApplyPending_SkipsAppliedAndRunsInOrder(t *testing.T) {
	withRegistry(t,
		execMigration("002_second", "CREATE TABLE second (id INT)"),
		execMigration("001_first", "CREATE TABLE first (id INT)"),
		execMigration("003_third", "CREATE TABLE third (id INT)"),
	)
	db, mock := newMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS migration_version").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM migration_version ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("001_first"))

	for _, table := range []string{"second", "third"} {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE " + table)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO migration_version").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	count, err := NewMigrationsManager(db).ApplyPending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPending_FailureRollsBackThatMigration(t *testing.T) {
	withRegistry(t, execMigration("001_first", "CREATE TABLE first (id INT)"))
	db, mock := newMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS migration_version").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM migration_version").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE first")).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	count, err := NewMigrationsManager(db).ApplyPending(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_first")
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollbackLast(t *testing.T) {
	withRegistry(t,
		execMigration("001_first", "CREATE TABLE first (id INT)"),
		execMigration("002_second", "CREATE TABLE second (id INT)"),
	)
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id FROM migration_version").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("001_first").AddRow("002_second"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE 002_second")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM migration_version WHERE id = $1")).
		WithArgs("002_second").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := NewMigrationsManager(db).RollbackLast(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "002_second", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollbackLast_NothingApplied(t *testing.T) {
	withRegistry(t)
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id FROM migration_version").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewMigrationsManager(db).RollbackLast(context.Background())
	assert.ErrorIs(t, err, ErrNoAppliedMigrations)
}

func TestRegisterMigration_DuplicatePanics(t *testing.T) {
	withRegistry(t, execMigration("001_first", "SELECT 1"))
	assert.Panics(t, func() {
		RegisterMigration(execMigration("001_first", "SELECT 1"))
	})
}

func TestConfigDSN(t *testing.T) {
	cfg := &Config{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable", cfg.DSN())
}
