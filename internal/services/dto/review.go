package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateReviewRequest struct {
	CompanyID   string `json:"company_id" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Content     string `json:"content" validate:"required,min=10,max=2000"`
	Pros        string `json:"pros,omitempty" validate:"omitempty,max=500"`
	Cons        string `json:"cons,omitempty" validate:"omitempty,max=500"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
}

type ListReviewsQuery struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	Sort     string `form:"sort" validate:"omitempty,is-review-sort"`
}

type VoteRequest struct {
	Action string `json:"action" validate:"required,oneof=helpful report"`
}

const (
	VoteActionHelpful = "helpful"
	VoteActionReport  = "report"
)

type ModerateReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type ModerationListQuery struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	Status   string `form:"status" validate:"omitempty,is-review-status"`
}

// ======================
// Response DTOs
// ======================

// AuthorInfo carries the display fields attached to a review. For anonymous
// reviews it is replaced with a fixed placeholder at the read boundary; the
// real author reference stays in the database untouched.
type AuthorInfo struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	Title      string `json:"title,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

type ReviewResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Pros         string    `json:"pros,omitempty"`
	Cons         string    `json:"cons,omitempty"`
	IsAnonymous  bool      `json:"is_anonymous"`
	IsVerified   bool      `json:"is_verified"`
	Status       string    `json:"status"`
	HelpfulCount int64     `json:"helpful_count"`
	IsHelpful    bool      `json:"is_helpful"`
	CreatedAt    time.Time `json:"created_at"`

	Author *AuthorInfo `json:"author,omitempty"`
}

type SubmitReviewResponse struct {
	Review    *ReviewResponse `json:"review"`
	Published bool            `json:"published"`
	Message   string          `json:"message"`
}

type ReviewListResponse struct {
	Reviews       []*ReviewResponse `json:"reviews"`
	AverageRating float64           `json:"average_rating"`
	Total         int64             `json:"total"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	TotalPages    int               `json:"total_pages"`
}

type HelpfulVoteResponse struct {
	HelpfulCount int64  `json:"helpful_count"`
	IsHelpful    bool   `json:"is_helpful"`
	Message      string `json:"message"`
}

type ReportResponse struct {
	ReportCount int    `json:"report_count"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

type RatingResponse struct {
	Average      float64       `json:"average"`
	Count        int64         `json:"count"`
	Distribution map[int]int64 `json:"distribution"`
}
