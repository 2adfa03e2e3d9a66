package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print-shop-system/internal/controllers"
	"print-shop-system/internal/repositories"
	"print-shop-system/internal/services"
)

func runCustomerRouter(api *echo.Group, dbConn *pgxpool.Pool, logger *zap.Logger) {
	customerRepo := repositories.NewCustomerRepository(dbConn)
	customerService := services.NewCustomerService(customerRepo, logger)
	customerCtrl := controllers.NewCustomerController(customerService, logger)
	{
		api.GET("/customers", customerCtrl.GetCustomers)
		api.GET("/customers/search", customerCtrl.SearchCustomers)
		api.GET("/customers/cust_id/:cust_id", customerCtrl.FindCustomerByCustID)
		api.GET("/customers/:id", customerCtrl.FindCustomer)
	}
}
