package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	ReviewHandler  *ReviewHandler
	CompanyHandler *CompanyHandler
}
