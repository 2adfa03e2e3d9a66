package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print-shop-system/internal/controllers"
	"print-shop-system/internal/repositories"
	"print-shop-system/internal/services"
	"print-shop-system/pkg/config"
)

func runOrderRouter(api *echo.Group, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	orderRepo := repositories.NewOrderRepository(dbConn)
	var cacheRepo repositories.CacheRepositoryInterface
	if redisClient != nil {
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	}
	orderService := services.NewOrderService(orderRepo, cacheRepo, logger, cfg.Cache.DueoutsTTL)
	orderCtrl := controllers.NewOrderController(orderService, logger)
	{
		// grid endpoints, raw shape for the table frontend
		api.GET("/data", orderCtrl.GetData)
		api.POST("/data", orderCtrl.UpdateData)

		api.GET("/orders", orderCtrl.GetOrders)
		api.POST("/orders", orderCtrl.CreateOrder)
		api.GET("/orders/dueouts", orderCtrl.GetDueouts)
		api.GET("/orders/export", orderCtrl.ExportData)
		api.GET("/orders/log/:log", orderCtrl.FindOrderByLog)
		api.GET("/orders/:id", orderCtrl.FindOrder)
		api.PUT("/orders/:id", orderCtrl.UpdateOrder)
		api.DELETE("/orders/:id", orderCtrl.DeleteOrder)
	}
}
