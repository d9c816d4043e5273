package repo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"him-backend/internal/repo"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func articleColumns() []string {
	return []string{
		"id", "title", "content", "summary", "author_id", "featured_image",
		"read_time", "view_count", "is_featured", "is_published",
		"category_id", "published_at", "created_at", "updated_at",
	}
}

func TestArticleRepoFindByIDMissReturnsNil(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `articles` WHERE articles.id = ?")).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows(articleColumns()))

	r := repo.NewArticleRepo(gdb)
	got, err := r.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepoFindByIDLoadsRow(t *testing.T) {
	gdb, mock := newMockDB(t)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `articles` WHERE articles.id = ?")).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows(articleColumns()).AddRow(
			7, "Orientation recap", "body", "sum", nil, "",
			3, int64(12), false, true, nil, now, now, now,
		))

	r := repo.NewArticleRepo(gdb)
	got, err := r.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, "Orientation recap", got.Title)
	assert.Equal(t, int64(12), got.ViewCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepoListPublishedCountsThenPages(t *testing.T) {
	gdb, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `articles` WHERE is_published = ?")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(23)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `articles` WHERE is_published = ?")).
		WillReturnRows(sqlmock.NewRows(articleColumns()).AddRow(
			1, "a", "", "", nil, "", 0, int64(0), false, true, nil, now, now, now,
		).AddRow(
			2, "b", "", "", nil, "", 0, int64(0), false, true, nil, now, now, now,
		))

	r := repo.NewArticleRepo(gdb)
	as, total, err := r.ListPublished(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(23), total)
	assert.Len(t, as, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepoDeleteMissingRow(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `articles` WHERE `articles`.`id` = ?")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := repo.NewArticleRepo(gdb)
	err := r.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepoDeleteExistingRow(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `articles` WHERE `articles`.`id` = ?")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := repo.NewArticleRepo(gdb)
	require.NoError(t, r.Delete(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
