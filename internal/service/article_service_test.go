package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"him-backend/internal/domain"
)

func newArticleFixture() (*ArticleService, *fakeArticleRepo, *fakeImageStore) {
	articles := newFakeArticleRepo()
	images := &fakeImageStore{}
	svc := NewArticleService(articles, &fakeCategoryRepo{}, images, nil, zap.NewNop())
	return svc, articles, images
}

func seedArticle(t *testing.T, svc *ArticleService, title string, published bool) *domain.Article {
	t.Helper()
	a, err := svc.Create(context.Background(), &domain.Article{
		Title:       title,
		Content:     "content of " + title,
		IsPublished: published,
	}, nil, ImageUpload{})
	require.NoError(t, err)
	return a
}

func TestArticleCreateValidation(t *testing.T) {
	svc, _, _ := newArticleFixture()

	_, err := svc.Create(context.Background(), &domain.Article{Content: "x"}, nil, ImageUpload{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &domain.Article{Title: "x"}, nil, ImageUpload{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestArticleViewCountSequentialIncrements(t *testing.T) {
	svc, _, _ := newArticleFixture()
	a := seedArticle(t, svc, "counting", true)

	const n = 7
	for i := 0; i < n; i++ {
		require.NoError(t, svc.IncrementViewCount(context.Background(), a.ID))
	}

	got, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(n), got.ViewCount)
}

func TestArticleCreateWithImage(t *testing.T) {
	svc, _, images := newArticleFixture()

	a, err := svc.Create(context.Background(), &domain.Article{
		Title: "with image", Content: "c", IsPublished: true,
	}, nil, ImageUpload{Data: []byte("png"), Filename: "cover.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.FeaturedImage)
	assert.Equal(t, 1, images.uploads)
}

func TestArticleCreateUploadFailureIsFatal(t *testing.T) {
	svc, articles, images := newArticleFixture()
	images.failUpload = true

	_, err := svc.Create(context.Background(), &domain.Article{
		Title: "doomed", Content: "c",
	}, nil, ImageUpload{Data: []byte("png"), Filename: "cover.png"})
	require.Error(t, err)
	assert.Empty(t, articles.items)
}

func TestArticleUpdateReplacesImage(t *testing.T) {
	svc, _, images := newArticleFixture()

	a, err := svc.Create(context.Background(), &domain.Article{
		Title: "old", Content: "c", IsPublished: true,
	}, nil, ImageUpload{Data: []byte("a"), Filename: "old.png"})
	require.NoError(t, err)
	oldURL := a.FeaturedImage

	updated, err := svc.Update(context.Background(), a.ID, &domain.Article{
		Title: "new", Content: "c", IsPublished: true,
	}, ImageUpload{Data: []byte("b"), Filename: "new.png"})
	require.NoError(t, err)

	assert.NotEqual(t, oldURL, updated.FeaturedImage)
	assert.Equal(t, []string{oldURL}, images.deleted)
}

func TestArticleUpdateKeepsImageWhenNoneSupplied(t *testing.T) {
	svc, _, images := newArticleFixture()

	a, err := svc.Create(context.Background(), &domain.Article{
		Title: "keep", Content: "c", IsPublished: true,
	}, nil, ImageUpload{Data: []byte("a"), Filename: "keep.png"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), a.ID, &domain.Article{
		Title: "keep2", Content: "c", IsPublished: true,
	}, ImageUpload{})
	require.NoError(t, err)

	assert.Equal(t, a.FeaturedImage, updated.FeaturedImage)
	assert.Empty(t, images.deleted)
}

func TestArticleUpdateUnknownID(t *testing.T) {
	svc, _, _ := newArticleFixture()
	_, err := svc.Update(context.Background(), 99, &domain.Article{Title: "x", Content: "y"}, ImageUpload{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArticleDeleteRemovesEntityAndAsset(t *testing.T) {
	svc, _, images := newArticleFixture()

	a, err := svc.Create(context.Background(), &domain.Article{
		Title: "bye", Content: "c", IsPublished: true,
	}, nil, ImageUpload{Data: []byte("a"), Filename: "bye.png"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), a.ID))

	got, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, []string{a.FeaturedImage}, images.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), a.ID), ErrNotFound)
}

func TestArticleDeleteSwallowsAssetFailure(t *testing.T) {
	svc, _, images := newArticleFixture()

	a, err := svc.Create(context.Background(), &domain.Article{
		Title: "sticky", Content: "c", IsPublished: true,
	}, nil, ImageUpload{Data: []byte("a"), Filename: "sticky.png"})
	require.NoError(t, err)

	images.failDelete = true
	require.NoError(t, svc.Delete(context.Background(), a.ID))

	got, err := svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestArticleListPublishedPagination(t *testing.T) {
	svc, articles, _ := newArticleFixture()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, articles.Create(context.Background(), &domain.Article{
			Title: fmt.Sprintf("pub-%02d", i), Content: "c",
			IsPublished: true, PublishedAt: &ts,
		}))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, articles.Create(context.Background(), &domain.Article{
			Title: fmt.Sprintf("draft-%d", i), Content: "c", IsPublished: false,
		}))
	}

	got, total, err := svc.ListPublished(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	require.Len(t, got, 10)
	for i := range got {
		assert.True(t, got[i].IsPublished)
		if i > 0 {
			assert.False(t, got[i].PublishedAt.After(*got[i-1].PublishedAt),
				"expected publish-time descending order")
		}
	}

	rest, _, err := svc.ListPublished(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Len(t, rest, 5)
}
