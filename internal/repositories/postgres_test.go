package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
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
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestBookmarkFindByUserAndPost_LocksRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresBookmarkRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookmarks" WHERE user_id = $1 AND post_id = $2 FOR UPDATE`)).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "post_id"}).AddRow(5, 1, 2))

	bookmarks, err := repo.FindByUserAndPost(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, uint(5), bookmarks[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresBookmarkRepository(db)

	mock.ExpectQuery(`INSERT INTO "bookmarks"`).
		WithArgs(1, 2, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	bookmark := &models.Bookmark{UserID: 1, PostID: 2}
	require.NoError(t, repo.Create(context.Background(), bookmark))
	assert.Equal(t, uint(10), bookmark.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationCreate_UniqueViolationIsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	uniqueViolation := &pgconn.PgError{Code: "23505", ConstraintName: "idx_like_user_post"}

	mock.ExpectQuery(`INSERT INTO "likes"`).WillReturnError(uniqueViolation)
	err := NewPostgresLikeRepository(db).Create(context.Background(), &models.Like{UserID: 1, PostID: 2})
	assert.ErrorIs(t, err, ErrDuplicate)

	mock.ExpectQuery(`INSERT INTO "reported_posts"`).WillReturnError(uniqueViolation)
	err = NewPostgresReportedPostRepository(db).Create(context.Background(), &models.ReportedPost{UserID: 1, PostID: 2})
	assert.ErrorIs(t, err, ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeDelete(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE "likes"."id" = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewPostgresLikeRepository(db).Delete(context.Background(), &models.Like{ID: 3, UserID: 1, PostID: 2})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeCountByPostID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE post_id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := NewPostgresLikeRepository(db).CountByPostID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportFindByUserAndPost_LocksRows(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reported_posts" WHERE user_id = $1 AND post_id = $2 FOR UPDATE`)).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "post_id"}))

	reports, err := NewPostgresReportedPostRepository(db).FindByUserAndPost(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Empty(t, reports)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))

	_, err := NewPostgresUserRepository(db).GetUserByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddClicks(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "clicks"=clicks + $1 WHERE id = $2`)).
		WithArgs(5, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresPostRepository(db).AddClicks(context.Background(), 3, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreWithTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewGormStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "likes"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectCommit()

		err := store.WithTx(context.Background(), func(tx Store) error {
			_, err := tx.Likes().CountByPostID(context.Background(), 1)
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewGormStore(db)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.WithTx(context.Background(), func(tx Store) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
