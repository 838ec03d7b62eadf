package services

import (
	"encoding/json"

	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnonymousAuthorName replaces author identity in read paths for anonymous
// reviews. Redaction happens here, at the read boundary; the stored author
// reference is never destroyed.
const AnonymousAuthorName = "Anonymous User"

type ReviewService interface {
	// Review operations
	Submit(db *gorm.DB, authorID string, req *dto.CreateReviewRequest) (*dto.SubmitReviewResponse, error)
	ListByCompany(db *gorm.DB, companyID, viewerID string, query *dto.ListReviewsQuery) (*dto.ReviewListResponse, error)
	CompanyRating(db *gorm.DB, companyID string) (*dto.RatingResponse, error)

	// Voting
	ToggleHelpful(db *gorm.DB, reviewID, userID string) (*dto.HelpfulVoteResponse, error)
	Report(db *gorm.DB, reviewID, userID string) (*dto.ReportResponse, error)

	// Moderation
	Moderate(db *gorm.DB, reviewID string, status models.ReviewStatus) (*dto.ReviewResponse, error)
	ModerationQueue(db *gorm.DB, status models.ReviewStatus, page, pageSize int) (*dto.ReviewListResponse, error)
}

type reviewService struct {
	reviewRepo      repositories.ReviewRepository
	companyRepo     repositories.CompanyRepository
	userRepo        repositories.UserRepository
	aggregator      RatingAggregator
	reportThreshold int
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	aggregator RatingAggregator,
	reportThreshold int,
) ReviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		aggregator:      aggregator,
		reportThreshold: reportThreshold,
	}
}

// ---------------- Review Operations ----------------

// Submit creates a review for a company. Verified authors publish
// immediately (status approved, rating cache recomputed in the same
// transaction); everyone else lands in the moderation queue.
func (s *reviewService) Submit(db *gorm.DB, authorID string, req *dto.CreateReviewRequest) (*dto.SubmitReviewResponse, error) {
	var review *models.Review

	err := db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.companyRepo.Exists(tx, req.CompanyID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrCompanyNotFound(repositories.ErrCompanyNotFound)
		}

		author, err := s.userRepo.FindByID(tx, authorID)
		if err != nil {
			if err == repositories.ErrUserNotFound {
				return apperrors.NewUnauthorizedError("Author account not found")
			}
			return err
		}

		status := models.ReviewStatusPending
		if author.IsVerified {
			status = models.ReviewStatusApproved
		}

		review = &models.Review{
			CompanyID:   req.CompanyID,
			AuthorID:    authorID,
			Rating:      req.Rating,
			Title:       req.Title,
			Content:     req.Content,
			Pros:        req.Pros,
			Cons:        req.Cons,
			IsAnonymous: req.IsAnonymous,
			IsVerified:  author.IsVerified,
			Status:      status,
		}

		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			if err == repositories.ErrReviewAlreadyExists {
				return apperrors.ErrAlreadyReviewed(err)
			}
			return err
		}
		review.Author = *author

		// Only approved reviews count toward the aggregate.
		if status == models.ReviewStatusApproved {
			if _, err := s.aggregator.Recompute(tx, req.CompanyID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	published := review.Status == models.ReviewStatusApproved
	message := "Review submitted and pending approval"
	if published {
		message = "Review submitted successfully"
	}

	return &dto.SubmitReviewResponse{
		Review:    s.buildReviewResponse(review, 0, false),
		Published: published,
		Message:   message,
	}, nil
}

// ListByCompany returns one page of approved reviews. viewerID may be empty
// (anonymous request); when present it marks the reviews the viewer voted
// helpful. Pure read, no side effects.
func (s *reviewService) ListByCompany(db *gorm.DB, companyID, viewerID string, query *dto.ListReviewsQuery) (*dto.ReviewListResponse, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if err == repositories.ErrCompanyNotFound {
			return nil, apperrors.ErrCompanyNotFound(err)
		}
		return nil, err
	}

	page, pageSize, sort := normalizeListQuery(query)

	reviews, total, err := s.reviewRepo.FindApprovedByCompany(db, companyID, page, pageSize, sort)
	if err != nil {
		return nil, err
	}

	reviewIDs := make([]string, len(reviews))
	for i := range reviews {
		reviewIDs[i] = reviews[i].ID
	}

	voteCounts, err := s.reviewRepo.HelpfulVoteCounts(db, reviewIDs)
	if err != nil {
		return nil, err
	}
	viewerVotes, err := s.reviewRepo.HelpfulVotesByUser(db, reviewIDs, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		responses = append(responses, s.buildReviewResponse(review, voteCounts[review.ID], viewerVotes[review.ID]))
	}

	return &dto.ReviewListResponse{
		Reviews:       responses,
		AverageRating: company.RatingAverage, // cache, kept in sync by the aggregator
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    calculateTotalPages(total, pageSize),
	}, nil
}

func (s *reviewService) CompanyRating(db *gorm.DB, companyID string) (*dto.RatingResponse, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if err == repositories.ErrCompanyNotFound {
			return nil, apperrors.ErrCompanyNotFound(err)
		}
		return nil, err
	}

	distribution, err := decodeDistribution(company.RatingDistribution)
	if err != nil {
		return nil, err
	}

	return &dto.RatingResponse{
		Average:      company.RatingAverage,
		Count:        company.RatingCount,
		Distribution: distribution,
	}, nil
}

// ---------------- Voting ----------------

// ToggleHelpful flips the caller's helpful vote on a review. Idempotent in
// pairs: two calls return to the original state. Helpfulness never touches
// the rating aggregate.
func (s *reviewService) ToggleHelpful(db *gorm.DB, reviewID, userID string) (*dto.HelpfulVoteResponse, error) {
	var resp *dto.HelpfulVoteResponse

	err := db.Transaction(func(tx *gorm.DB) error {
		review, err := s.reviewRepo.FindReviewByID(tx, reviewID)
		if err != nil {
			if err == repositories.ErrReviewNotFound {
				return apperrors.ErrReviewNotFound(err)
			}
			return err
		}

		if review.AuthorID == userID {
			return apperrors.ErrSelfVote
		}

		isHelpful, err := s.reviewRepo.ToggleHelpfulVote(tx, reviewID, userID)
		if err != nil {
			return err
		}

		count, err := s.reviewRepo.CountHelpfulVotes(tx, reviewID)
		if err != nil {
			return err
		}

		message := "Removed helpful mark"
		if isHelpful {
			message = "Marked review as helpful"
		}
		resp = &dto.HelpfulVoteResponse{
			HelpfulCount: count,
			IsHelpful:    isHelpful,
			Message:      message,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Report files a report against a review, once per user. Crossing the
// threshold rejects the review outright; if it was approved, its
// contribution is removed from the company aggregate in the same
// transaction.
func (s *reviewService) Report(db *gorm.DB, reviewID, userID string) (*dto.ReportResponse, error) {
	var resp *dto.ReportResponse

	err := db.Transaction(func(tx *gorm.DB) error {
		review, err := s.reviewRepo.FindReviewByID(tx, reviewID)
		if err != nil {
			if err == repositories.ErrReviewNotFound {
				return apperrors.ErrReviewNotFound(err)
			}
			return err
		}

		if review.AuthorID == userID {
			return apperrors.ErrSelfVote
		}

		if err := s.reviewRepo.InsertReport(tx, reviewID, userID); err != nil {
			if err == repositories.ErrAlreadyReported {
				return apperrors.ErrAlreadyReported
			}
			return err
		}

		count, err := s.reviewRepo.IncrementReportCount(tx, reviewID)
		if err != nil {
			return err
		}

		status := review.Status
		if count >= s.reportThreshold && status != models.ReviewStatusRejected {
			if err := s.reviewRepo.UpdateStatus(tx, reviewID, models.ReviewStatusRejected); err != nil {
				return err
			}
			// Pulling an approved review out of the public set changes the
			// aggregate; a rejected pending review never contributed.
			if status == models.ReviewStatusApproved {
				if _, err := s.aggregator.Recompute(tx, review.CompanyID); err != nil {
					return err
				}
			}
			status = models.ReviewStatusRejected
		}

		resp = &dto.ReportResponse{
			ReportCount: count,
			Status:      string(status),
			Message:     "Review reported successfully",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ---------------- Moderation ----------------

// Moderate resolves a pending review. Approved and rejected are terminal
// for this subsystem: only pending reviews transition.
func (s *reviewService) Moderate(db *gorm.DB, reviewID string, status models.ReviewStatus) (*dto.ReviewResponse, error) {
	var moderated *models.Review

	err := db.Transaction(func(tx *gorm.DB) error {
		review, err := s.reviewRepo.FindReviewByID(tx, reviewID)
		if err != nil {
			if err == repositories.ErrReviewNotFound {
				return apperrors.ErrReviewNotFound(err)
			}
			return err
		}

		if review.Status != models.ReviewStatusPending {
			return apperrors.ErrInvalidStatus("review", "Only pending reviews can be moderated")
		}
		if status != models.ReviewStatusApproved && status != models.ReviewStatusRejected {
			return apperrors.ErrInvalidStatus("review", "Moderation status must be approved or rejected")
		}

		if err := s.reviewRepo.UpdateStatus(tx, reviewID, status); err != nil {
			return err
		}
		review.Status = status

		if status == models.ReviewStatusApproved {
			if _, err := s.aggregator.Recompute(tx, review.CompanyID); err != nil {
				return err
			}
		}

		moderated = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	count, err := s.reviewRepo.CountHelpfulVotes(db, reviewID)
	if err != nil {
		return nil, err
	}
	return s.buildReviewResponse(moderated, count, false), nil
}

// ModerationQueue lists reviews in one status, pending by default.
func (s *reviewService) ModerationQueue(db *gorm.DB, status models.ReviewStatus, page, pageSize int) (*dto.ReviewListResponse, error) {
	if status == "" {
		status = models.ReviewStatusPending
	}
	reviews, total, err := s.reviewRepo.FindByStatus(db, status, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		// The moderation queue never redacts: moderators see the author.
		responses = append(responses, s.buildModerationResponse(&reviews[i]))
	}

	return &dto.ReviewListResponse{
		Reviews:    responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

// ---------------- Helper Methods ----------------

func (s *reviewService) buildReviewResponse(review *models.Review, helpfulCount int64, isHelpful bool) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:           review.ID,
		CompanyID:    review.CompanyID,
		Rating:       review.Rating,
		Title:        review.Title,
		Content:      review.Content,
		Pros:         review.Pros,
		Cons:         review.Cons,
		IsAnonymous:  review.IsAnonymous,
		IsVerified:   review.IsVerified,
		Status:       string(review.Status),
		HelpfulCount: helpfulCount,
		IsHelpful:    isHelpful,
		CreatedAt:    review.CreatedAt,
	}

	if review.IsAnonymous {
		resp.Author = &dto.AuthorInfo{Name: AnonymousAuthorName}
	} else if review.Author.ID != "" {
		resp.Author = &dto.AuthorInfo{
			ID:         review.Author.ID,
			Name:       review.Author.Name,
			Avatar:     review.Author.Avatar,
			Title:      review.Author.Title,
			IsVerified: review.Author.IsVerified,
		}
	}

	return resp
}

func (s *reviewService) buildModerationResponse(review *models.Review) *dto.ReviewResponse {
	resp := s.buildReviewResponse(review, 0, false)
	if review.Author.ID != "" {
		resp.Author = &dto.AuthorInfo{
			ID:         review.Author.ID,
			Name:       review.Author.Name,
			Avatar:     review.Author.Avatar,
			Title:      review.Author.Title,
			IsVerified: review.Author.IsVerified,
		}
	}
	return resp
}

func normalizeListQuery(query *dto.ListReviewsQuery) (page, pageSize int, sort repositories.ReviewSort) {
	page = 1
	pageSize = 10
	sort = repositories.ReviewSortNewest

	if query == nil {
		return
	}
	if query.Page > 0 {
		page = query.Page
	}
	if query.PageSize > 0 {
		pageSize = query.PageSize
	}
	if query.Sort != "" {
		sort = repositories.ReviewSort(query.Sort)
	}
	return
}

// decodeDistribution reads the per-star counts stored on the company row.
// An empty cache decodes to all-zero counts.
func decodeDistribution(data datatypes.JSON) (map[int]int64, error) {
	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	if len(data) == 0 {
		return distribution, nil
	}

	var stored map[int]int64
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	for star, count := range stored {
		distribution[star] = count
	}
	return distribution, nil
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
