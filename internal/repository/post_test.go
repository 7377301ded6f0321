package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_RecordView(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "post_view_events"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "view_count"=view_count + 1`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.RecordView(ctx, 1, at)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownPostRollsBackEvent", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "post_view_events"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "view_count"=view_count + 1`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.RecordView(ctx, 99, at)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Like(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
			WithArgs(1, 2, at).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "post_like_events"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "like_count"=like_count + 1`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Like(ctx, 1, 2, at)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// The conflict guard means a repeat like never reaches the counter update.
	t.Run("AlreadyLiked", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
			WithArgs(1, 2, at).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Like(ctx, 1, 2, at)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeAlreadyLiked, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Unlike(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post_like_events`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "like_count"=CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Unlike(ctx, 1, 2)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotLiked", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Unlike(ctx, 1, 2)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotLiked, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// A missing post reports NotFound before the like state is consulted.
	t.Run("UnknownPost", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		err := repo.Unlike(ctx, 1, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_TotalsByAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{
		"total_posts", "total_views", "total_likes", "total_comments", "total_shares",
	}).AddRow(3, 120, 14, 7, 2)
	mock.ExpectQuery(regexp.QuoteMeta(`COALESCE(SUM(view_count), 0) as total_views`)).
		WithArgs(1).
		WillReturnRows(rows)

	totals, err := repo.TotalsByAuthor(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), totals.TotalPosts)
	assert.Equal(t, int64(120), totals.TotalViews)
	assert.Equal(t, int64(14), totals.TotalLikes)
	assert.Equal(t, int64(7), totals.TotalComments)
	assert.Equal(t, int64(2), totals.TotalShares)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("AnonymousReader", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id", "like_count"}).
				AddRow(1, "Hello", 7, 3))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "author"))

		post, err := repo.GetByID(ctx, 1, 0)
		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.False(t, post.Liked)
		assert.Equal(t, 3, post.LikeCount)
	})

	t.Run("AuthenticatedReaderGetsLikedFlag", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}).
				AddRow(1, "Hello", 7))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "author"))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(5, 1).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		post, err := repo.GetByID(ctx, 1, 5)
		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.True(t, post.Liked)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99, 0)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestPostRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultIsNewestFirst", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.List(ctx, "", 20, 0)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FeaturedByLikes", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY like_count DESC, created_at DESC`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.List(ctx, SortLikes, 20, 0)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FeaturedByViews", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY view_count DESC, created_at DESC`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.List(ctx, SortViews, 20, 0)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Bookmark(t *testing.T) {
	ctx := context.Background()

	t.Run("NewBookmarkCreated", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookmarks`)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := repo.Bookmark(ctx, 1, 2)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateIsNoOp", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookmarks`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := repo.Bookmark(ctx, 1, 2)
		assert.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownPost", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		_, err := repo.Bookmark(ctx, 1, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_ListBookmarked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN bookmarks ON bookmarks.post_id = posts.id`)).
		WithArgs(1, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}).
			AddRow(4, "Saved", 7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "author"))

	posts, err := repo.ListBookmarked(ctx, 1, 20, 0)
	assert.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Saved", posts[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
