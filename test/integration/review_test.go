package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"worklink_backend/internal/models"
	"worklink_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReview_Submit_VerifiedAuthor - отзыв верифицированного автора публикуется сразу
func TestReview_Submit_VerifiedAuthor(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateVerifiedUser(t, tx)
	company := helpers.CreateCompany(t, tx, "Acme Software")

	reviewBody := map[string]interface{}{
		"company_id": company.ID,
		"rating":     5,
		"title":      "Great place to work",
		"content":    "Supportive team, clear growth path, honest management.",
		"pros":       "Flexible hours",
		"cons":       "Open space is noisy",
	}
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, reviewBody)

	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var submitResp struct {
		Review struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"review"`
		Published bool   `json:"published"`
		Message   string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &submitResp))

	assert.True(t, submitResp.Published)
	assert.Equal(t, "Review submitted successfully", submitResp.Message)
	assert.Equal(t, "approved", submitResp.Review.Status)

	// Кэш рейтинга компании пересчитан синхронно
	res, bodyStr = ts.SendRequest(t, tx, "GET", fmt.Sprintf("/api/v1/companies/%s/rating", company.ID), "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"average":5`)
	assert.Contains(t, bodyStr, `"count":1`)
}

// TestReview_Submit_UnverifiedAuthor - уходит на модерацию и не виден публично
func TestReview_Submit_UnverifiedAuthor(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateUnverifiedUser(t, tx)
	company := helpers.CreateCompany(t, tx, "Beta Logistics")

	reviewBody := map[string]interface{}{
		"company_id": company.ID,
		"rating":     2,
		"title":      "Mixed feelings",
		"content":    "Long hours and management rarely listens to feedback.",
	}
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, reviewBody)

	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, `"published":false`)
	assert.Contains(t, bodyStr, "Review submitted and pending approval")

	// Кэш рейтинга не тронут
	res, bodyStr = ts.SendRequest(t, tx, "GET", fmt.Sprintf("/api/v1/companies/%s/rating", company.ID), "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":0`)

	// И в публичном списке отзыв не появился
	res, bodyStr = ts.SendRequest(t, tx, "GET", fmt.Sprintf("/api/v1/companies/%s/reviews", company.ID), "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"total":0`)
}

// TestReview_Submit_Validation - граничные значения полей
func TestReview_Submit_Validation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateVerifiedUser(t, tx)
	company := helpers.CreateCompany(t, tx, "Gamma Retail")

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"rating above range", map[string]interface{}{
			"company_id": company.ID, "rating": 6, "title": "Valid title", "content": "Valid content, definitely long enough.",
		}},
		{"rating below range", map[string]interface{}{
			"company_id": company.ID, "rating": 0, "title": "Valid title", "content": "Valid content, definitely long enough.",
		}},
		{"title too short", map[string]interface{}{
			"company_id": company.ID, "rating": 4, "title": "ab", "content": "Valid content, definitely long enough.",
		}},
		{"content too short", map[string]interface{}{
			"company_id": company.ID, "rating": 4, "title": "Valid title", "content": "short",
		}},
		{"missing company", map[string]interface{}{
			"rating": 4, "title": "Valid title", "content": "Valid content, definitely long enough.",
		}},
	}

	for _, tc := range cases {
		res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, tc.body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "%s: ответ: %s", tc.name, bodyStr)
	}
}

// TestReview_Submit_Duplicate - один отзыв на пару (компания, автор)
func TestReview_Submit_Duplicate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateVerifiedUser(t, tx)
	company := helpers.CreateCompany(t, tx, "Delta Finance")

	reviewBody := map[string]interface{}{
		"company_id": company.ID,
		"rating":     4,
		"title":      "Solid employer",
		"content":    "Decent pay, decent conditions, nothing extraordinary.",
	}
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, reviewBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	// Повторная попытка того же автора
	res, bodyStr = ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, reviewBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, "already reviewed")

	// Для другой компании - можно
	company2 := helpers.CreateCompany(t, tx, "Delta Finance KZ")
	reviewBody["company_id"] = company2.ID
	res, bodyStr = ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, reviewBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)
}

// TestReview_Submit_CompanyNotFound
func TestReview_Submit_CompanyNotFound(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateVerifiedUser(t, tx)

	reviewBody := map[string]interface{}{
		"company_id": "7b9e6c9e-0000-0000-0000-000000000000",
		"rating":     4,
		"title":      "Valid title",
		"content":    "Valid content, definitely long enough.",
	}
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, reviewBody)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, "Ответ: "+bodyStr)
}

// TestReview_List_AnonymousRedaction - анонимный отзыв не раскрывает автора
func TestReview_List_AnonymousRedaction(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateVerifiedUser(t, tx)
	company := helpers.CreateCompany(t, tx, "Epsilon Media")

	reviewBody := map[string]interface{}{
		"company_id":   company.ID,
		"rating":       3,
		"title":        "Honest but anonymous",
		"content":      "Writing this anonymously for obvious reasons.",
		"is_anonymous": true,
	}
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, reviewBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, "GET", fmt.Sprintf("/api/v1/companies/%s/reviews", company.ID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var listResp struct {
		Reviews []struct {
			IsAnonymous bool `json:"is_anonymous"`
			Author      *struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"author"`
		} `json:"reviews"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &listResp))
	require.Equal(t, int64(1), listResp.Total)

	review := listResp.Reviews[0]
	assert.True(t, review.IsAnonymous)
	require.NotNil(t, review.Author)
	assert.Equal(t, "Anonymous User", review.Author.Name)
	assert.Empty(t, review.Author.ID)
	assert.NotContains(t, bodyStr, user.Name)
}

// TestReview_List_SortAndPagination
func TestReview_List_SortAndPagination(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	company := helpers.CreateCompany(t, tx, "Zeta Consulting")

	// Три отзыва от разных авторов с разными оценками
	ratings := []int{2, 5, 4}
	for _, rating := range ratings {
		_, author := helpers.CreateVerifiedUser(t, tx)
		helpers.CreateReview(t, tx, company.ID, author.ID, rating, models.ReviewStatusApproved)
	}
	// И один pending - в выдачу попасть не должен
	_, pendingAuthor := helpers.CreateUnverifiedUser(t, tx)
	helpers.CreateReview(t, tx, company.ID, pendingAuthor.ID, 1, models.ReviewStatusPending)

	res, bodyStr := ts.SendRequest(t, tx, "GET", fmt.Sprintf("/api/v1/companies/%s/reviews?sort=highest-rating", company.ID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var listResp struct {
		Reviews []struct {
			Rating int `json:"rating"`
		} `json:"reviews"`
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &listResp))

	require.Equal(t, int64(3), listResp.Total)
	require.Len(t, listResp.Reviews, 3)
	assert.Equal(t, 5, listResp.Reviews[0].Rating)
	assert.Equal(t, 4, listResp.Reviews[1].Rating)
	assert.Equal(t, 2, listResp.Reviews[2].Rating)

	// Пагинация: страница из одного элемента
	res, bodyStr = ts.SendRequest(t, tx, "GET", fmt.Sprintf("/api/v1/companies/%s/reviews?sort=lowest-rating&page=1&page_size=1", company.ID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &listResp))

	require.Len(t, listResp.Reviews, 1)
	assert.Equal(t, 2, listResp.Reviews[0].Rating)
	assert.Equal(t, 3, listResp.TotalPages)

	// Невалидная сортировка отбивается валидатором
	res, bodyStr = ts.SendRequest(t, tx, "GET", fmt.Sprintf("/api/v1/companies/%s/reviews?sort=bogus", company.ID), "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)
}

// TestReview_Submit_Unauthorized
func TestReview_Submit_Unauthorized(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	company := helpers.CreateCompany(t, tx, "NoAuth Inc")

	reviewBody := map[string]interface{}{
		"company_id": company.ID,
		"rating":     4,
		"title":      "Valid title",
		"content":    "Valid content, definitely long enough.",
	}
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", "", reviewBody)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
