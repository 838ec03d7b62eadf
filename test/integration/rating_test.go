package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"worklink_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRating_LifecycleScenario - полный цикл: публикация, модерация, пересчет
func TestRating_LifecycleScenario(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	company := helpers.CreateCompany(t, tx, "Lifecycle Systems")
	ratingURL := fmt.Sprintf("/api/v1/companies/%s/rating", company.ID)

	// 1. Верифицированный автор: 5 звезд публикуются сразу
	verifiedToken, _ := helpers.CreateVerifiedUser(t, tx)
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", verifiedToken, map[string]interface{}{
		"company_id": company.ID,
		"rating":     5,
		"title":      "Best employer in town",
		"content":    "Everything from onboarding to compensation is handled well.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var rating struct {
		Average      float64          `json:"average"`
		Count        int64            `json:"count"`
		Distribution map[string]int64 `json:"distribution"`
	}
	res, bodyStr = ts.SendRequest(t, tx, "GET", ratingURL, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &rating))
	assert.Equal(t, 5.0, rating.Average)
	assert.Equal(t, int64(1), rating.Count)
	assert.Equal(t, int64(1), rating.Distribution["5"])

	// 2. Неверифицированный автор: 1 звезда уходит на модерацию, агрегат не меняется
	unverifiedToken, _ := helpers.CreateUnverifiedUser(t, tx)
	res, bodyStr = ts.SendRequest(t, tx, "POST", "/api/v1/reviews", unverifiedToken, map[string]interface{}{
		"company_id": company.ID,
		"rating":     1,
		"title":      "Not my experience",
		"content":    "Toxic atmosphere and constant unpaid overtime, avoid.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var submitResp struct {
		Review struct {
			ID string `json:"id"`
		} `json:"review"`
		Published bool `json:"published"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &submitResp))
	assert.False(t, submitResp.Published)
	pendingReviewID := submitResp.Review.ID

	res, bodyStr = ts.SendRequest(t, tx, "GET", ratingURL, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &rating))
	assert.Equal(t, 5.0, rating.Average)
	assert.Equal(t, int64(1), rating.Count)

	// 3. Админ видит отзыв в очереди и утверждает его
	adminToken, _ := helpers.CreateAdmin(t, tx)

	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/admin/reviews", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, pendingReviewID)

	res, bodyStr = ts.SendRequest(t, tx, "PATCH", fmt.Sprintf("/api/v1/admin/reviews/%s/status", pendingReviewID), adminToken, map[string]interface{}{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, `"status":"approved"`)

	// 4. Агрегат пересчитан: (5 + 1) / 2 = 3.0
	res, bodyStr = ts.SendRequest(t, tx, "GET", ratingURL, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &rating))
	assert.Equal(t, 3.0, rating.Average)
	assert.Equal(t, int64(2), rating.Count)
	assert.Equal(t, int64(1), rating.Distribution["1"])
	assert.Equal(t, int64(1), rating.Distribution["5"])
}

// TestRating_ModerationRules - модерируются только pending отзывы
func TestRating_ModerationRules(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	company := helpers.CreateCompany(t, tx, "Moderation Kft")

	unverifiedToken, _ := helpers.CreateUnverifiedUser(t, tx)
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", unverifiedToken, map[string]interface{}{
		"company_id": company.ID,
		"rating":     2,
		"title":      "Waiting for the moderator",
		"content":    "This review will go through the moderation queue.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var submitResp struct {
		Review struct {
			ID string `json:"id"`
		} `json:"review"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &submitResp))
	statusURL := fmt.Sprintf("/api/v1/admin/reviews/%s/status", submitResp.Review.ID)

	// Не-админ не допускается
	jobseekerToken, _ := helpers.CreateVerifiedUser(t, tx)
	res, bodyStr = ts.SendRequest(t, tx, "PATCH", statusURL, jobseekerToken, map[string]interface{}{"status": "rejected"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "Ответ: "+bodyStr)

	// Невалидный целевой статус
	adminToken, _ := helpers.CreateAdmin(t, tx)
	res, bodyStr = ts.SendRequest(t, tx, "PATCH", statusURL, adminToken, map[string]interface{}{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)

	// Отклонение
	res, bodyStr = ts.SendRequest(t, tx, "PATCH", statusURL, adminToken, map[string]interface{}{"status": "rejected"})
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, `"status":"rejected"`)

	// Отклоненный отзыв - терминальное состояние
	res, bodyStr = ts.SendRequest(t, tx, "PATCH", statusURL, adminToken, map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Ответ: "+bodyStr)

	// Фильтр очереди по статусу
	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/admin/reviews?status=rejected", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, submitResp.Review.ID)

	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/admin/reviews?status=bogus", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)

	// Несуществующий отзыв
	res, bodyStr = ts.SendRequest(t, tx, "PATCH", "/api/v1/admin/reviews/9c1e6c9e-0000-0000-0000-000000000000/status", adminToken, map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode, "Ответ: "+bodyStr)
}

// TestRating_CompanyProfileCarriesCache - профиль компании отдает кэш рейтинга
func TestRating_CompanyProfileCarriesCache(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	company := helpers.CreateCompany(t, tx, "Profile Cache SA")

	token, _ := helpers.CreateVerifiedUser(t, tx)
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/reviews", token, map[string]interface{}{
		"company_id": company.ID,
		"rating":     4,
		"title":      "Good, not perfect",
		"content":    "Solid engineering culture with some process overhead.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, "GET", fmt.Sprintf("/api/v1/companies/%s", company.ID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var companyResp struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Rating struct {
			Average float64          `json:"average"`
			Count   int64            `json:"count"`
			Dist    map[string]int64 `json:"distribution"`
		} `json:"rating"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &companyResp))
	assert.Equal(t, company.ID, companyResp.ID)
	assert.Equal(t, "Profile Cache SA", companyResp.Name)
	assert.Equal(t, 4.0, companyResp.Rating.Average)
	assert.Equal(t, int64(1), companyResp.Rating.Count)
	assert.Equal(t, int64(1), companyResp.Rating.Dist["4"])

	// Несуществующая компания
	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/companies/1c1e6c9e-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, "Ответ: "+bodyStr)
}
