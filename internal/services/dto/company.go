package dto

import "time"

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	Logo        string `json:"logo,omitempty" validate:"omitempty,url"`
	Industry    string `json:"industry,omitempty" validate:"omitempty,max=100"`
	City        string `json:"city,omitempty" validate:"omitempty,max=100"`
}

type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	City        string    `json:"city,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`

	Rating *RatingResponse `json:"rating"`
}
