package services

import (
	"testing"

	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, calculateTotalPages(0, 10))
	assert.Equal(t, 1, calculateTotalPages(1, 10))
	assert.Equal(t, 1, calculateTotalPages(10, 10))
	assert.Equal(t, 2, calculateTotalPages(11, 10))
	assert.Equal(t, 3, calculateTotalPages(21, 10))
	assert.Equal(t, 0, calculateTotalPages(5, 0))
}

func TestDecodeDistribution(t *testing.T) {
	// Пустой кэш - нулевые корзины по всем звездам
	dist, err := decodeDistribution(nil)
	require.NoError(t, err)
	assert.Len(t, dist, 5)
	for star := 1; star <= 5; star++ {
		assert.Equal(t, int64(0), dist[star])
	}

	dist, err = decodeDistribution(datatypes.JSON(`{"1":2,"5":7}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), dist[1])
	assert.Equal(t, int64(0), dist[3])
	assert.Equal(t, int64(7), dist[5])

	_, err = decodeDistribution(datatypes.JSON(`not-json`))
	assert.Error(t, err)
}

func TestNormalizeListQuery(t *testing.T) {
	page, pageSize, sort := normalizeListQuery(nil)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)
	assert.Equal(t, repositories.ReviewSortNewest, sort)

	page, pageSize, sort = normalizeListQuery(&dto.ListReviewsQuery{Page: 3, PageSize: 25, Sort: "most-helpful"})
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, pageSize)
	assert.Equal(t, repositories.ReviewSortMostHelpful, sort)
}

func TestBuildReviewResponse_AnonymousRedaction(t *testing.T) {
	svc := &reviewService{}

	review := &models.Review{
		CompanyID:   "company-1",
		Rating:      4,
		Title:       "Title",
		Content:     "Content",
		IsAnonymous: true,
		Status:      models.ReviewStatusApproved,
		Author: models.User{
			BaseModel: models.BaseModel{ID: "author-1"},
			Name:      "Real Name",
			Avatar:    "https://cdn.example.com/a.png",
		},
	}

	resp := svc.buildReviewResponse(review, 3, true)

	require.NotNil(t, resp.Author)
	assert.Equal(t, AnonymousAuthorName, resp.Author.Name)
	assert.Empty(t, resp.Author.ID)
	assert.Empty(t, resp.Author.Avatar)
	assert.Equal(t, int64(3), resp.HelpfulCount)
	assert.True(t, resp.IsHelpful)

	// Модераторская проекция раскрывает автора даже для анонимного отзыва
	modResp := svc.buildModerationResponse(review)
	require.NotNil(t, modResp.Author)
	assert.Equal(t, "Real Name", modResp.Author.Name)
	assert.Equal(t, "author-1", modResp.Author.ID)
}

func TestBuildReviewResponse_NamedAuthor(t *testing.T) {
	svc := &reviewService{}

	review := &models.Review{
		Rating:  5,
		Title:   "Title",
		Content: "Content",
		Status:  models.ReviewStatusApproved,
		Author: models.User{
			BaseModel:  models.BaseModel{ID: "author-2"},
			Name:       "Jane Doe",
			Title:      "QA Engineer",
			IsVerified: true,
		},
	}

	resp := svc.buildReviewResponse(review, 0, false)

	require.NotNil(t, resp.Author)
	assert.Equal(t, "Jane Doe", resp.Author.Name)
	assert.Equal(t, "author-2", resp.Author.ID)
	assert.Equal(t, "QA Engineer", resp.Author.Title)
	assert.True(t, resp.Author.IsVerified)
}
