package services

import (
	"worklink_backend/internal/repositories"

	"gorm.io/gorm"
)

// RatingSummary is the {average, count, distribution} aggregate over the
// approved reviews of a company.
type RatingSummary struct {
	Average      float64
	Count        int64
	Distribution map[int]int64
}

// RatingAggregator is the single source of truth for a company's rating.
// Recompute derives the summary from durable review rows (full scan, not a
// delta) and writes it onto the company row. Callers never derive the rating
// any other way; they run Recompute inside the transaction that changed the
// approved-review set, so a failed cache write fails the whole operation.
type RatingAggregator interface {
	Recompute(db *gorm.DB, companyID string) (*RatingSummary, error)
}

type ratingAggregator struct {
	reviewRepo  repositories.ReviewRepository
	companyRepo repositories.CompanyRepository
}

func NewRatingAggregator(
	reviewRepo repositories.ReviewRepository,
	companyRepo repositories.CompanyRepository,
) RatingAggregator {
	return &ratingAggregator{
		reviewRepo:  reviewRepo,
		companyRepo: companyRepo,
	}
}

func (a *ratingAggregator) Recompute(db *gorm.DB, companyID string) (*RatingSummary, error) {
	average, count, distribution, err := a.reviewRepo.AggregateCompanyRating(db, companyID)
	if err != nil {
		return nil, err
	}

	if err := a.companyRepo.UpdateRating(db, companyID, average, count, distribution); err != nil {
		return nil, err
	}

	return &RatingSummary{
		Average:      average,
		Count:        count,
		Distribution: distribution,
	}, nil
}
