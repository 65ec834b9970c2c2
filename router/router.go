package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/controllers"
	"github.com/aryaseta/resto-order-api/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	// 100 request per menit per IP untuk seluruh API
	rateLimiter := middlewares.NewRateLimiter(100, 60)
	r.Use(rateLimiter.RateLimit())

	orderCtrl := controllers.NewOrderController(db)
	scheduleCtrl := controllers.NewScheduleController(db)
	menuCtrl := controllers.NewMenuController(db)
	userCtrl := controllers.NewUserController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Endpoint publik, tanpa autentikasi
	r.GET("/status", scheduleCtrl.GetOperatingStatus)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.POST("/register", middlewares.NewStrictRateLimiter(), userCtrl.Register)
	r.POST("/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)

	authorized := r.Group("/")
	authorized.Use(middlewares.AuthMiddleware())
	{
		authorized.GET("/profile", userCtrl.GetProfile)

		authorized.POST("/orders", orderCtrl.CreateOrder)
		authorized.GET("/orders", orderCtrl.GetMyOrders)
		authorized.GET("/orders/statistics", orderCtrl.GetMyStatistics)
		authorized.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		authorized.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("staff", "admin"))
	{
		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/statistics", orderCtrl.GetOrderStatistics)
		admin.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		admin.GET("/schedule", scheduleCtrl.GetSchedule)
		admin.PUT("/schedule", middlewares.RequireRoles("admin"), scheduleCtrl.UpdateSchedule)
	}

	return r
}
