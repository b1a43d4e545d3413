package stubapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(store *Store, tokens *TokenService, catalogHandler *CatalogHandler, logger *zap.Logger) (*Router, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	authHandler := NewAuthHandler(store, tokens, logger.Named("Auth"))
	orderHandler := NewOrderHandler(store, logger.Named("Orders"))
	notificationHandler := NewNotificationHandler(store, logger.Named("Notifications"))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login/", authHandler.Login)
			auth.POST("/refresh/", authHandler.Refresh)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokens))
			orders.GET("/", orderHandler.List)
			orders.GET("/:number/", orderHandler.Get)
			orders.PATCH("/:number/", orderHandler.Update)
		}

		notifications := api.Group("/notifications")
		{
			notifications.Use(authCheck(tokens))
			notifications.GET("/", notificationHandler.List)
			notifications.GET("/unread-count/", notificationHandler.UnreadCount)
			notifications.POST("/:id/read/", notificationHandler.MarkRead)
			notifications.POST("/read-all/", notificationHandler.MarkAllRead)
			notifications.DELETE("/all/", notificationHandler.DeleteAll)
			notifications.DELETE("/:id/", notificationHandler.Delete)
		}

		catalog := api.Group("")
		{
			catalog.Use(authCheck(tokens))
			catalog.GET("/products/", catalogHandler.Products)
			catalog.GET("/brands/", catalogHandler.Brands)
			catalog.GET("/categories/", catalogHandler.Categories)
			catalog.GET("/services/", catalogHandler.Services)
		}
	}

	return &Router{router}, nil
}

// Serve starts the stub HTTP server.
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
