// @title           worklink API
// @version         1.0
// @description     API подсистемы отзывов и рейтингов компаний (документация Swagger).
// @contact.name    WorkLink
// @contact.email   support@worklink.dev
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "worklink_backend/internal/app"

func main() {
	app.Run()
}
