package repositories

import (
	"encoding/json"
	"errors"

	"worklink_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	Create(db *gorm.DB, company *models.Company) error
	FindByID(db *gorm.DB, id string) (*models.Company, error)
	Exists(db *gorm.DB, id string) (bool, error)
	UpdateRating(db *gorm.DB, id string, average float64, count int64, distribution map[int]int64) error
}

type CompanyRepositoryImpl struct{}

func NewCompanyRepository() CompanyRepository {
	return &CompanyRepositoryImpl{}
}

func (r *CompanyRepositoryImpl) Create(db *gorm.DB, company *models.Company) error {
	return db.Create(company).Error
}

func (r *CompanyRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	err := db.First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) Exists(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&models.Company{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateRating rewrites the denormalized rating cache on the company row.
// Called only with freshly aggregated values; the write shares the caller's
// transaction so a failure aborts the whole operation.
func (r *CompanyRepositoryImpl) UpdateRating(db *gorm.DB, id string, average float64, count int64, distribution map[int]int64) error {
	distJSON, err := json.Marshal(distribution)
	if err != nil {
		return err
	}

	result := db.Model(&models.Company{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating_average":      average,
		"rating_count":        count,
		"rating_distribution": datatypes.JSON(distJSON),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
