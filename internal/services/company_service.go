package services

import (
	"net/http"

	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/services/dto"
	"worklink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CompanyService interface {
	Create(db *gorm.DB, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	Get(db *gorm.DB, companyID string) (*dto.CompanyResponse, error)
}

type companyService struct {
	companyRepo repositories.CompanyRepository
}

func NewCompanyService(companyRepo repositories.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) Create(db *gorm.DB, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	company := &models.Company{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Logo:        req.Logo,
		Industry:    req.Industry,
		City:        req.City,
	}

	if err := s.companyRepo.Create(db, company); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "company", "Failed to create company", http.StatusInternalServerError)
	}

	return buildCompanyResponse(company)
}

func (s *companyService) Get(db *gorm.DB, companyID string) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if err == repositories.ErrCompanyNotFound {
			return nil, apperrors.ErrCompanyNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return buildCompanyResponse(company)
}

func buildCompanyResponse(company *models.Company) (*dto.CompanyResponse, error) {
	distribution, err := decodeDistribution(company.RatingDistribution)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Website:     company.Website,
		Logo:        company.Logo,
		Industry:    company.Industry,
		City:        company.City,
		IsVerified:  company.IsVerified,
		CreatedAt:   company.CreatedAt,
		Rating: &dto.RatingResponse{
			Average:      company.RatingAverage,
			Count:        company.RatingCount,
			Distribution: distribution,
		},
	}, nil
}
