package models

import "gorm.io/datatypes"

// Company carries the denormalized rating cache. The cache is owned by the
// rating aggregator: after any mutation that changes the approved-review set
// it is rewritten synchronously, in the same transaction as the mutation.
type Company struct {
	BaseModel
	Name        string `gorm:"not null;index"`
	Description string
	Website     string
	Logo        string
	Industry    string
	City        string
	IsVerified  bool `gorm:"default:false"`

	// Rating cache: must always equal the aggregate over approved reviews.
	RatingAverage      float64        `gorm:"default:0"`
	RatingCount        int64          `gorm:"default:0"`
	RatingDistribution datatypes.JSON // {"1":n, ... "5":n}, counts per star

	// Relations
	Reviews []Review `gorm:"foreignKey:CompanyID"`
}
