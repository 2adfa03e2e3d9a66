package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print-shop-system/pkg/config"
)

// InitRouter wires every endpoint group under /api.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	runOrderRouter(api, dbConn, redisClient, logger, cfg)
	runCustomerRouter(api, dbConn, logger)
}
