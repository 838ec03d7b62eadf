package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок
подсистемы отзывов и рейтингов.
*/

// ErrCompanyNotFound - компания не найдена (404)
func ErrCompanyNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "company", "Company not found", http.StatusNotFound)
}

// ErrReviewNotFound - отзыв не найден (404)
func ErrReviewNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "review", "Review not found", http.StatusNotFound)
}

// ErrAlreadyReviewed - пользователь уже оставил отзыв этой компании (409)
func ErrAlreadyReviewed(err error) *AppError {
	return Wrap(err, CodeConflict, "review", "You have already reviewed this company", http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусных переходов (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// ErrSelfVote - голос за собственный отзыв запрещен
var ErrSelfVote = New(
	CodeInvalidOperation,
	"review",
	"You cannot vote on your own review",
	http.StatusBadRequest,
)

// ErrAlreadyReported - повторная жалоба на тот же отзыв
var ErrAlreadyReported = New(
	CodeInvalidOperation,
	"review",
	"You have already reported this review",
	http.StatusBadRequest,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
