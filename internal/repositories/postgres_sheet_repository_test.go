package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"superagent/internal/models/chat_models"
)

func newMockPostgresRepository(t *testing.T) (SheetRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewPostgresSheetRepository(db), mock
}

func TestPostgresSheetRepository_AppendRowReturnsID(t *testing.T) {
	repo, mock := newMockPostgresRepository(t)

	mock.ExpectQuery(`INSERT INTO "completion_rows"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	row, err := repo.AppendRow(context.Background(), chat_models.CompletionRecord{
		Name:  "Alice",
		Phone: "+60123456789",
		Plan:  "Standard",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, row)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSheetRepository_MarkNotifiedWithPhone(t *testing.T) {
	repo, mock := newMockPostgresRepository(t)
	at := time.Date(2026, time.March, 4, 9, 5, 7, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "completion_rows" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).AddRow(3, "Alice", "0123456789"))
	mock.ExpectExec(`UPDATE "completion_rows" SET "email_sent"=\$1,"whatsapp_link"=\$2,"updated_at"=\$3`).
		WithArgs("04/03/2026 09:05:07", "https://wa.me/60123456789", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.MarkNotified(context.Background(), 3, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSheetRepository_MarkNotifiedWithoutPhone(t *testing.T) {
	repo, mock := newMockPostgresRepository(t)
	at := time.Date(2026, time.March, 4, 9, 5, 7, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "completion_rows" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).AddRow(3, "Alice", ""))
	mock.ExpectExec(`UPDATE "completion_rows" SET "email_sent"=\$1,"updated_at"=\$2`).
		WithArgs("04/03/2026 09:05:07", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.MarkNotified(context.Background(), 3, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSheetRepository_MarkNotifiedMissingRow(t *testing.T) {
	repo, mock := newMockPostgresRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "completion_rows" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}))
	mock.ExpectRollback()

	err := repo.MarkNotified(context.Background(), 42, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Contains(t, err.Error(), "completion row 42")
	assert.NoError(t, mock.ExpectationsWereMet())
}
