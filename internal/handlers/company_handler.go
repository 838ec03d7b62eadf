package handlers

import (
	"net/http"

	"worklink_backend/internal/middleware"
	"worklink_backend/internal/models"
	"worklink_backend/internal/services"
	"worklink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	companies := r.Group("/companies")
	{
		companies.GET("/:companyId", h.GetCompany)
	}

	// Admin routes
	admin := r.Group("/admin/companies")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("", h.CreateCompany)
	}
}

// GetCompany godoc
// @Summary      Get a company profile with its rating cache
// @Tags         companies
// @Produce      json
// @Param        companyId  path  string  true  "Company ID"
// @Success      200  {object}  dto.CompanyResponse
// @Router       /companies/{companyId} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID := c.Param("companyId")

	db := h.GetDB(c)
	company, err := h.companyService.Get(db, companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// CreateCompany godoc
// @Summary      Create a company
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CreateCompanyRequest  true  "Company payload"
// @Success      201  {object}  dto.CompanyResponse
// @Security     BearerAuth
// @Router       /admin/companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	company, err := h.companyService.Create(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}
