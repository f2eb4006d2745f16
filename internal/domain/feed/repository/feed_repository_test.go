package repository

import (
	"testing"
	"time"

	"social_feed/internal/domain/feed/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (FeedRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewFeedRepository(db), mock
}

func TestCreateLike(t *testing.T) {
	t.Run("Unique violation maps to duplicate-like", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`INSERT INTO "likes"`).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

		err := repo.CreateLike(model.NewLike("u1", model.PostTarget("p1")))

		assert.ErrorIs(t, err, ErrDuplicateLike)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Foreign key violation maps to missing target", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`INSERT INTO "likes"`).
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

		err := repo.CreateLike(model.NewLike("u1", model.CommentTarget("ghost")))

		assert.ErrorIs(t, err, ErrTargetMissing)
	})

	t.Run("Other database errors pass through", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`INSERT INTO "likes"`).
			WillReturnError(&pgconn.PgError{Code: "57014"})

		err := repo.CreateLike(model.NewLike("u1", model.PostTarget("p1")))

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateLike)
		assert.NotErrorIs(t, err, ErrTargetMissing)
	})
}

func TestFindLike(t *testing.T) {
	t.Run("Absent row yields record-not-found", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT \* FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
			WithArgs("u1", "p1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		like, err := repo.FindLike("u1", model.PostTarget("p1"))

		assert.Nil(t, like)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Comment target filters on comment_id", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows([]string{"id", "user_id", "comment_id"}).
			AddRow("l1", "u1", "c1")
		mock.ExpectQuery(`SELECT \* FROM "likes" WHERE user_id = \$1 AND comment_id = \$2`).
			WithArgs("u1", "c1", 1).
			WillReturnRows(rows)

		like, err := repo.FindLike("u1", model.CommentTarget("c1"))

		assert.NoError(t, err)
		assert.Equal(t, model.CommentTarget("c1"), like.Target())
	})
}

func TestCountLikes(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE post_id = \$1`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountLikes(model.PostTarget("p1"))

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestCountLikesByPostIDs(t *testing.T) {
	t.Run("Single grouped query fills the map", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows([]string{"post_id", "count"}).
			AddRow("p1", 3).
			AddRow("p2", 1)
		mock.ExpectQuery(`SELECT post_id, COUNT\(\*\) AS count FROM "likes"`).
			WillReturnRows(rows)

		counts, err := repo.CountLikesByPostIDs([]string{"p1", "p2", "p3"})

		assert.NoError(t, err)
		assert.Equal(t, map[string]int64{"p1": 3, "p2": 1}, counts)
	})

	t.Run("No ids short-circuits without a query", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		counts, err := repo.CountLikesByPostIDs(nil)

		assert.NoError(t, err)
		assert.Empty(t, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListLikeEventsSince(t *testing.T) {
	repo, mock := newMockRepo(t)

	since := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"is_post", "author"}).
		AddRow(true, "alice").
		AddRow(false, "bob").
		AddRow(true, nil)
	mock.ExpectQuery(`SELECT \(l\.post_id IS NOT NULL\) AS is_post, u\.username AS author`).
		WithArgs(since).
		WillReturnRows(rows)

	events, err := repo.ListLikeEventsSince(since)

	assert.NoError(t, err)
	require.Len(t, events, 3)
	assert.True(t, events[0].IsPost)
	assert.Equal(t, "alice", *events[0].Author)
	assert.False(t, events[1].IsPost)
	assert.Nil(t, events[2].Author)
}

func TestDeleteLike(t *testing.T) {
	repo, mock := newMockRepo(t)

	like := model.NewLike("u1", model.PostTarget("p1"))
	like.ID = "l1"

	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteLike(like)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
