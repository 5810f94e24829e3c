package routes

import (
	"qrmenu/configs"
	"qrmenu/controllers"
	"qrmenu/middlewares"
	"qrmenu/repository"
	"qrmenu/services"
	"qrmenu/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.OrderHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Services. The hub is the realtime bridge every committed row
	// change is mirrored to.
	notifSvc := services.NewNotificationService(db, notifRepo, hub)
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo, tableRepo, notifSvc)
	menuSvc := services.NewMenuService(menuRepo, tableRepo)
	tableSvc := services.NewTableService(db, tableRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg)
	orderCtrl := controllers.NewOrderController(orderSvc)
	menuCtrl := controllers.NewMenuController(menuSvc, orderSvc, tableSvc)
	tableCtrl := controllers.NewTableController(tableSvc)
	notifCtrl := controllers.NewNotificationController(notifSvc, tableSvc)

	// Auth (staff token issuing only)
	r.POST("/auth/login", authCtrl.Login)

	// Customer surface: the scanned QR token is the credential.
	r.GET("/menu/:token", menuCtrl.ByToken)
	r.GET("/menu/:token/orders", menuCtrl.OrdersForTable)
	r.GET("/menu/:token/notifications", notifCtrl.ListForTable)
	r.PATCH("/menu/:token/notifications/:id/read", notifCtrl.MarkReadForTable)
	r.POST("/orders", orderCtrl.Submit)

	// Staff surface
	staff := r.Group("/staff", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		staff.GET("/orders", orderCtrl.List)
		staff.GET("/orders/:id", orderCtrl.Detail)
		staff.GET("/orders/:id/history", orderCtrl.History)
		staff.GET("/notifications", notifCtrl.ListForStaff)
		staff.PATCH("/notifications/:id/read", notifCtrl.MarkRead)
	}

	kitchen := r.Group("/staff", middlewares.AuthMiddleware(cfg.JWTSecret, "kitchen", "owner"))
	{
		kitchen.PATCH("/orders/:id/accept", orderCtrl.Accept)
		kitchen.PATCH("/orders/:id/refuse", orderCtrl.Refuse)
		kitchen.PATCH("/orders/:id/ready", orderCtrl.Ready)
	}

	// Generic advance: kitchen board steps and the waiter's delivered.
	transitions := r.Group("/staff", middlewares.AuthMiddleware(cfg.JWTSecret, "kitchen", "waiter", "owner"))
	{
		transitions.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)
		transitions.PATCH("/orders/:id/reopen", orderCtrl.Reopen)
	}

	owner := r.Group("/staff", middlewares.AuthMiddleware(cfg.JWTSecret, "owner"))
	{
		owner.DELETE("/orders/:id", orderCtrl.Delete)
		owner.POST("/tables", tableCtrl.Create)
		owner.GET("/tables", tableCtrl.List)
		owner.POST("/tables/:id/regenerate", tableCtrl.RegenerateToken)
	}

	// Realtime bridge
	r.GET("/ws/board", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleBoard)
	r.GET("/ws/table/:token", hub.HandleTable)
}
