package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return NewTaskRepository(gormDB), mock
}

func TestUpdateOrderIndex_SingleRowUpdate(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(`UPDATE "tasks" SET "order_index"=\$1,"updated_at"=\$2 WHERE user_id = \$3 AND id = \$4`).
		WithArgs(2, sqlmock.AnyArg(), uint64(1), "task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateOrderIndex(1, "task-1", 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderIndex_MissingRowIsNotFound(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(`UPDATE "tasks" SET "order_index"=\$1,"updated_at"=\$2 WHERE user_id = \$3 AND id = \$4`).
		WithArgs(0, sqlmock.AnyArg(), uint64(1), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateOrderIndex(1, "missing", 0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingRowIsNotFound(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectExec(`DELETE FROM "tasks" WHERE user_id = \$1 AND id = \$2`).
		WithArgs(uint64(1), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(1, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
