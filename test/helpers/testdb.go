package helpers

import (
	"fmt"
	"log"
	"testing"
	"time"

	"worklink_backend/internal/auth"
	"worklink_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateUser создает пользователя в транзакции с автоматическим хешированием пароля
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash == "" {
		hashed, err := auth.HashPassword("password123")
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = hashed
	}

	// По умолчанию - активный
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateUserWithToken создает пользователя и выписывает ему JWT
func CreateUserWithToken(t *testing.T, tx *gorm.DB, name string, role models.UserRole, verified bool) (string, *models.User) {
	email := fmt.Sprintf("%s_%d@test.com", role, time.Now().UnixNano())
	user := &models.User{
		Name:       name,
		Email:      email,
		Role:       role,
		IsVerified: verified,
	}
	err := CreateUser(t, tx, user)
	require.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err, "Не удалось сгенерировать JWT")

	log.Printf("✅ [Helper] Создан пользователь %s (Role: %s, Verified: %v)", email, role, verified)
	return token, user
}

// CreateVerifiedUser - верифицированный соискатель (отзывы публикуются сразу)
func CreateVerifiedUser(t *testing.T, tx *gorm.DB) (string, *models.User) {
	return CreateUserWithToken(t, tx, "Verified Jobseeker", models.UserRoleJobseeker, true)
}

// CreateUnverifiedUser - неверифицированный (отзывы уходят на модерацию)
func CreateUnverifiedUser(t *testing.T, tx *gorm.DB) (string, *models.User) {
	return CreateUserWithToken(t, tx, "Unverified Jobseeker", models.UserRoleJobseeker, false)
}

// CreateAdmin - администратор для модераторских сценариев
func CreateAdmin(t *testing.T, tx *gorm.DB) (string, *models.User) {
	return CreateUserWithToken(t, tx, "Admin", models.UserRoleAdmin, true)
}

// CreateCompany создает компанию в транзакции
func CreateCompany(t *testing.T, tx *gorm.DB, name string) *models.Company {
	company := &models.Company{
		Name:     name,
		Industry: "IT",
		City:     "Almaty",
	}
	if err := tx.Create(company).Error; err != nil {
		t.Fatalf("Failed to create test company: %v", err)
	}
	return company
}

// CreateReview вставляет отзыв напрямую, минуя сервис (для подготовки данных)
func CreateReview(t *testing.T, tx *gorm.DB, companyID, authorID string, rating int, status models.ReviewStatus) *models.Review {
	review := &models.Review{
		CompanyID: companyID,
		AuthorID:  authorID,
		Rating:    rating,
		Title:     "Seeded review title",
		Content:   "Seeded review content, long enough to pass validation.",
		Status:    status,
	}
	if err := tx.Create(review).Error; err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}
	return review
}
