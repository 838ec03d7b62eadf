package handlers

import (
	"net/http"

	"worklink_backend/internal/middleware"
	"worklink_backend/internal/models"
	"worklink_backend/internal/services"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes. OptionalAuth lets us personalize is_helpful for
	// logged-in viewers without requiring a token.
	companies := r.Group("/companies")
	companies.Use(middleware.OptionalAuthMiddleware())
	{
		companies.GET("/:companyId/reviews", h.ListCompanyReviews)
		companies.GET("/:companyId/rating", h.GetCompanyRating)
	}

	// Protected routes - any authenticated user
	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("", h.SubmitReview)
		reviews.POST("/:reviewId/vote", h.Vote)
	}

	// Admin routes - moderation queue
	admin := r.Group("/admin/reviews")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.ListPendingReviews)
		admin.PATCH("/:reviewId/status", h.ModerateReview)
	}
}

// --- Public handlers ---

// ListCompanyReviews godoc
// @Summary      List approved reviews for a company
// @Tags         reviews
// @Produce      json
// @Param        companyId  path   string  true   "Company ID"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Param        sort       query  string  false  "newest | most-helpful | highest-rating | lowest-rating"
// @Success      200  {object}  dto.ReviewListResponse
// @Router       /companies/{companyId}/reviews [get]
func (h *ReviewHandler) ListCompanyReviews(c *gin.Context) {
	companyID := c.Param("companyId")

	var query dto.ListReviewsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	viewerID := middleware.GetUserID(c)

	db := h.GetDB(c)
	resp, err := h.reviewService.ListByCompany(db, companyID, viewerID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCompanyRating godoc
// @Summary      Get the aggregated rating of a company
// @Tags         reviews
// @Produce      json
// @Param        companyId  path  string  true  "Company ID"
// @Success      200  {object}  dto.RatingResponse
// @Router       /companies/{companyId}/rating [get]
func (h *ReviewHandler) GetCompanyRating(c *gin.Context) {
	companyID := c.Param("companyId")

	db := h.GetDB(c)
	rating, err := h.reviewService.CompanyRating(db, companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

// --- Protected handlers ---

// SubmitReview godoc
// @Summary      Submit a review for a company
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CreateReviewRequest  true  "Review payload"
// @Success      201  {object}  dto.SubmitReviewResponse
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	authorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	resp, err := h.reviewService.Submit(db, authorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Vote godoc
// @Summary      Toggle a helpful vote or report a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        reviewId  path  string           true  "Review ID"
// @Param        request   body  dto.VoteRequest  true  "action: helpful | report"
// @Success      200  {object}  dto.HelpfulVoteResponse
// @Security     BearerAuth
// @Router       /reviews/{reviewId}/vote [post]
func (h *ReviewHandler) Vote(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reviewID := c.Param("reviewId")

	var req dto.VoteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	switch req.Action {
	case dto.VoteActionHelpful:
		resp, err := h.reviewService.ToggleHelpful(db, reviewID, userID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	case dto.VoteActionReport:
		resp, err := h.reviewService.Report(db, reviewID, userID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)

	default:
		// validator already rejects anything else, but keep the guard
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unknown vote action: "+req.Action))
	}
}

// --- Admin handlers ---

// ListPendingReviews godoc
// @Summary      List the moderation queue
// @Tags         admin
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Param        status     query  string  false  "pending (default) | approved | rejected"
// @Success      200  {object}  dto.ReviewListResponse
// @Security     BearerAuth
// @Router       /admin/reviews [get]
func (h *ReviewHandler) ListPendingReviews(c *gin.Context) {
	var query dto.ModerationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, pageSize := ParsePagination(c)

	db := h.GetDB(c)
	resp, err := h.reviewService.ModerationQueue(db, models.ReviewStatus(query.Status), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ModerateReview godoc
// @Summary      Approve or reject a pending review
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        reviewId  path  string                     true  "Review ID"
// @Param        request   body  dto.ModerateReviewRequest  true  "Target status"
// @Success      200  {object}  dto.ReviewResponse
// @Security     BearerAuth
// @Router       /admin/reviews/{reviewId}/status [patch]
func (h *ReviewHandler) ModerateReview(c *gin.Context) {
	reviewID := c.Param("reviewId")

	var req dto.ModerateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	review, err := h.reviewService.Moderate(db, reviewID, models.ReviewStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
