package repositories

import (
	"errors"

	"worklink_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this company")
	ErrAlreadyReported     = errors.New("review already reported by this user")
)

// ReviewSort is the listing order. Ties are always broken by created_at DESC
// so pagination stays stable.
type ReviewSort string

const (
	ReviewSortNewest        ReviewSort = "newest"
	ReviewSortMostHelpful   ReviewSort = "most-helpful"
	ReviewSortHighestRating ReviewSort = "highest-rating"
	ReviewSortLowestRating  ReviewSort = "lowest-rating"
)

type ReviewRepository interface {
	// Review operations
	CreateReview(db *gorm.DB, review *models.Review) error
	FindReviewByID(db *gorm.DB, id string) (*models.Review, error)
	HasReviewed(db *gorm.DB, companyID, authorID string) (bool, error)
	FindApprovedByCompany(db *gorm.DB, companyID string, page, pageSize int, sort ReviewSort) ([]models.Review, int64, error)
	FindByStatus(db *gorm.DB, status models.ReviewStatus, page, pageSize int) ([]models.Review, int64, error)
	UpdateStatus(db *gorm.DB, reviewID string, status models.ReviewStatus) error

	// Helpful-vote ledger
	ToggleHelpfulVote(db *gorm.DB, reviewID, userID string) (bool, error)
	CountHelpfulVotes(db *gorm.DB, reviewID string) (int64, error)
	HelpfulVoteCounts(db *gorm.DB, reviewIDs []string) (map[string]int64, error)
	HelpfulVotesByUser(db *gorm.DB, reviewIDs []string, userID string) (map[string]bool, error)

	// Report ledger
	InsertReport(db *gorm.DB, reviewID, userID string) error
	IncrementReportCount(db *gorm.DB, reviewID string) (int, error)

	// Rating aggregation
	AggregateCompanyRating(db *gorm.DB, companyID string) (float64, int64, map[int]int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// ---------------- Review operations ----------------

// CreateReview inserts the review. The (company_id, author_id) unique index
// is the authority on duplicates: the loser of a concurrent double-submit
// gets ErrReviewAlreadyExists, never a silent second row.
func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindReviewByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("Author").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) HasReviewed(db *gorm.DB, companyID, authorID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("company_id = ? AND author_id = ?", companyID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) FindApprovedByCompany(db *gorm.DB, companyID string, page, pageSize int, sort ReviewSort) ([]models.Review, int64, error) {
	query := db.Model(&models.Review{}).
		Where("company_id = ? AND status = ?", companyID, models.ReviewStatusApproved)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var order string
	switch sort {
	case ReviewSortMostHelpful:
		// Vote counts live in the ledger table, so ordering needs a subselect.
		order = "(SELECT COUNT(*) FROM review_helpful_votes v WHERE v.review_id = reviews.id) DESC, created_at DESC"
	case ReviewSortHighestRating:
		order = "rating DESC, created_at DESC"
	case ReviewSortLowestRating:
		order = "rating ASC, created_at DESC"
	default: // ReviewSortNewest
		order = "created_at DESC"
	}

	var reviews []models.Review
	offset := (page - 1) * pageSize
	err := db.Preload("Author").
		Where("company_id = ? AND status = ?", companyID, models.ReviewStatusApproved).
		Order(order).
		Limit(pageSize).Offset(offset).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *ReviewRepositoryImpl) FindByStatus(db *gorm.DB, status models.ReviewStatus, page, pageSize int) ([]models.Review, int64, error) {
	var total int64
	if err := db.Model(&models.Review{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	offset := (page - 1) * pageSize
	err := db.Preload("Author").Preload("Company").
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *ReviewRepositoryImpl) UpdateStatus(db *gorm.DB, reviewID string, status models.ReviewStatus) error {
	result := db.Model(&models.Review{}).Where("id = ?", reviewID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// ---------------- Helpful-vote ledger ----------------

// ToggleHelpfulVote flips the user's membership in the helpful-vote set.
// The flip is a single keyed insert (ON CONFLICT DO NOTHING) or a keyed
// delete, never a read-modify-write of a vote list, so concurrent votes
// from different users cannot lose each other.
func (r *ReviewRepositoryImpl) ToggleHelpfulVote(db *gorm.DB, reviewID, userID string) (bool, error) {
	vote := models.ReviewHelpfulVote{ReviewID: reviewID, UserID: userID}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Already a member: this call removes the vote.
	if err := db.Delete(&models.ReviewHelpfulVote{}, "review_id = ? AND user_id = ?", reviewID, userID).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (r *ReviewRepositoryImpl) CountHelpfulVotes(db *gorm.DB, reviewID string) (int64, error) {
	var count int64
	err := db.Model(&models.ReviewHelpfulVote{}).Where("review_id = ?", reviewID).Count(&count).Error
	return count, err
}

func (r *ReviewRepositoryImpl) HelpfulVoteCounts(db *gorm.DB, reviewIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ReviewID string
		Count    int64
	}
	err := db.Model(&models.ReviewHelpfulVote{}).
		Select("review_id, COUNT(*) as count").
		Where("review_id IN ?", reviewIDs).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ReviewID] = row.Count
	}
	return counts, nil
}

func (r *ReviewRepositoryImpl) HelpfulVotesByUser(db *gorm.DB, reviewIDs []string, userID string) (map[string]bool, error) {
	voted := make(map[string]bool, len(reviewIDs))
	if len(reviewIDs) == 0 || userID == "" {
		return voted, nil
	}

	var ids []string
	err := db.Model(&models.ReviewHelpfulVote{}).
		Where("review_id IN ? AND user_id = ?", reviewIDs, userID).
		Pluck("review_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		voted[id] = true
	}
	return voted, nil
}

// ---------------- Report ledger ----------------

// InsertReport records (review, user) in the report ledger. The composite
// primary key makes the "one report per user per review" rule hold under
// concurrent reports; a duplicate comes back as ErrAlreadyReported.
func (r *ReviewRepositoryImpl) InsertReport(db *gorm.DB, reviewID, userID string) error {
	report := models.ReviewReport{ReviewID: reviewID, UserID: userID}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&report)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyReported
	}
	return nil
}

// IncrementReportCount bumps the counter with an SQL expression (atomic,
// no read-modify-write) and returns the new value.
func (r *ReviewRepositoryImpl) IncrementReportCount(db *gorm.DB, reviewID string) (int, error) {
	result := db.Model(&models.Review{}).Where("id = ?", reviewID).
		UpdateColumn("report_count", gorm.Expr("report_count + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrReviewNotFound
	}

	var count int
	err := db.Model(&models.Review{}).Where("id = ?", reviewID).
		Pluck("report_count", &count).Error
	return count, err
}

// ---------------- Rating aggregation ----------------

// AggregateCompanyRating scans the approved reviews of a company in one
// GROUP BY query and derives average, count and the per-star distribution
// from the same snapshot.
func (r *ReviewRepositoryImpl) AggregateCompanyRating(db *gorm.DB, companyID string) (float64, int64, map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := db.Model(&models.Review{}).
		Select("rating, COUNT(*) as count").
		Where("company_id = ? AND status = ?", companyID, models.ReviewStatusApproved).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, nil, err
	}

	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var total, sum int64
	for _, row := range rows {
		distribution[row.Rating] = row.Count
		total += row.Count
		sum += int64(row.Rating) * row.Count
	}

	average := 0.0
	if total > 0 {
		average = float64(sum) / float64(total)
	}
	return average, total, distribution, nil
}
