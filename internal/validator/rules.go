package validator

import (
	"log"

	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - критическая ошибка запуска
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-review-sort': ключ сортировки списка отзывов
	mustRegister("is-review-sort", validateReviewSort)

	// 'is-review-status': статус отзыва (фильтры модераторских выборок)
	mustRegister("is-review-status", validateReviewStatus)
}

// --- Функции валидации ---

func validateReviewSort(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch repositories.ReviewSort(value) {
	case repositories.ReviewSortNewest, repositories.ReviewSortMostHelpful,
		repositories.ReviewSortHighestRating, repositories.ReviewSortLowestRating:
		return true
	default:
		return false
	}
}

func validateReviewStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ReviewStatus(value) {
	case models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected:
		return true
	default:
		return false
	}
}
