package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	"github.com/NeuralTrust/SpamShield/pkg/infra/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewConfigurationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "configuration" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).AddRow(settings.KeyAPIKey, "abc"))

	value, err := repo.Get(context.Background(), settings.KeyAPIKey)

	require.NoError(t, err)
	assert.Equal(t, "abc", value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepository_GetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewConfigurationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "configuration" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}))

	_, err := repo.Get(context.Background(), settings.KeyAPIKey)

	assert.ErrorIs(t, err, settings.ErrSettingNotFound)
}

func TestConfigurationRepository_GetFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewConfigurationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "configuration"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), settings.KeyAPIKey)

	require.Error(t, err)
	assert.NotErrorIs(t, err, settings.ErrSettingNotFound)
}

func TestConfigurationRepository_SetUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewConfigurationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "configuration" .* ON CONFLICT \("name"\) DO UPDATE SET "value"="excluded"."value","updated_at"="excluded"."updated_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Set(context.Background(), settings.KeyEnableBotDetector, "1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepository_SetManyWritesOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewConfigurationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "configuration" .* VALUES \(.+\),\(.+\) ON CONFLICT \("name"\) DO UPDATE`).
		WithArgs(settings.KeyAPIKey, "abc", sqlmock.AnyArg(), sqlmock.AnyArg(),
			settings.KeyEnableBotDetector, "1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.SetMany(context.Background(), map[string]string{
		settings.KeyEnableBotDetector: "1",
		settings.KeyAPIKey:            "abc",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepository_SetManyRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewConfigurationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "configuration"`).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.SetMany(context.Background(), map[string]string{
		settings.KeyAPIKey:            "abc",
		settings.KeyEnableBotDetector: "1",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), settings.KeyAPIKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigurationRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewConfigurationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "configuration" WHERE name = \$1`).
		WithArgs(settings.KeyAPIKey).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), settings.KeyAPIKey))
	assert.NoError(t, mock.ExpectationsWereMet())
}
