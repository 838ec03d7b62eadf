package services

// ServiceContainer groups the wired services for handler construction.
type ServiceContainer struct {
	ReviewService    ReviewService
	CompanyService   CompanyService
	RatingAggregator RatingAggregator
}
