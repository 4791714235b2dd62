package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rahat/tastybites-backend/config"
	"github.com/rahat/tastybites-backend/internal/app/controller"
	"github.com/rahat/tastybites-backend/internal/app/model"
	"github.com/rahat/tastybites-backend/internal/middleware"
)

// Controllers bundles everything the router wires up
type Controllers struct {
	Auth    *controller.AuthController
	Address *controller.AddressController
	Menu    *controller.MenuController
	Cart    *controller.CartController
	Order   *controller.OrderController
	Staff   *controller.StaffController
	Expense *controller.ExpenseController
	Report  *controller.ReportController
	Upload  *controller.UploadController
}

// Setup builds the gin engine with all routes and middleware
func Setup(cfg *config.Config, ctrls Controllers) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrls.Auth.Register)
		auth.POST("/login", ctrls.Auth.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.Authenticate(cfg.JWT.Secret))
	{
		authed.POST("/auth/logout", ctrls.Auth.Logout)
		authed.GET("/auth/me", ctrls.Auth.GetMe)
		authed.PUT("/auth/me", ctrls.Auth.UpdateMe)

		addresses := authed.Group("/addresses")
		{
			addresses.GET("", ctrls.Address.List)
			addresses.POST("", ctrls.Address.Create)
			addresses.PUT("/:id", ctrls.Address.Update)
			addresses.DELETE("/:id", ctrls.Address.Delete)
		}

		cart := authed.Group("/cart")
		{
			cart.GET("", ctrls.Cart.GetCart)
			cart.DELETE("", ctrls.Cart.Clear)
			cart.POST("/items", ctrls.Cart.AddItem)
			cart.PUT("/items/:id", ctrls.Cart.UpdateItem)
			cart.DELETE("/items/:id", ctrls.Cart.RemoveItem)
		}

		orders := authed.Group("/orders")
		{
			orders.POST("", ctrls.Order.Checkout)
			orders.GET("", ctrls.Order.ListOrders)
			orders.GET("/:number", ctrls.Order.GetOrder)
			orders.POST("/:number/cancel", ctrls.Order.CancelOrder)
		}
	}

	// Public catalog reads
	menu := api.Group("/menu")
	{
		menu.GET("/categories", ctrls.Menu.ListCategories)
		menu.GET("/items", ctrls.Menu.ListItems)
		menu.GET("/items/:slug", ctrls.Menu.GetItem)
	}

	// Catalog management requires a managing role
	menuAdmin := api.Group("/menu")
	menuAdmin.Use(
		middleware.Authenticate(cfg.JWT.Secret),
		middleware.RequireRole(string(model.RoleAdmin), string(model.RoleManager)),
	)
	{
		menuAdmin.POST("/categories", ctrls.Menu.CreateCategory)
		menuAdmin.PUT("/categories/:id", ctrls.Menu.UpdateCategory)
		menuAdmin.DELETE("/categories/:id", ctrls.Menu.DeleteCategory)
		menuAdmin.POST("/items", ctrls.Menu.CreateItem)
		menuAdmin.PUT("/items/:id", ctrls.Menu.UpdateItem)
		menuAdmin.PATCH("/items/:id/availability", ctrls.Menu.SetAvailability)
		menuAdmin.DELETE("/items/:id", ctrls.Menu.DeleteItem)
	}

	// Kitchen queue is open to all staff roles
	staff := api.Group("/staff")
	staff.Use(
		middleware.Authenticate(cfg.JWT.Secret),
		middleware.RequireRole(
			string(model.RoleAdmin), string(model.RoleManager),
			string(model.RoleStaff), string(model.RoleDelivery),
		),
	)
	{
		staff.GET("/orders", ctrls.Staff.ListOrders)
		staff.GET("/assigned", ctrls.Staff.ListMine)
		staff.GET("/orders/:id", ctrls.Staff.GetOrder)
		staff.PATCH("/orders/:id/status", ctrls.Staff.UpdateStatus)
		staff.PATCH("/orders/:id/paid", ctrls.Staff.MarkPaid)
		staff.GET("/dashboard", ctrls.Staff.Dashboard)
	}

	// Assignment and staff listing are manager actions
	staffAdmin := api.Group("/staff")
	staffAdmin.Use(
		middleware.Authenticate(cfg.JWT.Secret),
		middleware.RequireRole(string(model.RoleAdmin), string(model.RoleManager)),
	)
	{
		staffAdmin.PATCH("/orders/:id/assign", ctrls.Staff.Assign)
		staffAdmin.GET("/members", ctrls.Staff.ListStaff)
	}

	manager := api.Group("")
	manager.Use(
		middleware.Authenticate(cfg.JWT.Secret),
		middleware.RequireRole(string(model.RoleAdmin), string(model.RoleManager)),
	)
	{
		expenses := manager.Group("/expenses")
		{
			expenses.POST("", ctrls.Expense.Create)
			expenses.GET("", ctrls.Expense.List)
			expenses.GET("/:id", ctrls.Expense.Get)
			expenses.PUT("/:id", ctrls.Expense.Update)
			expenses.DELETE("/:id", ctrls.Expense.Delete)
		}

		reports := manager.Group("/reports")
		{
			reports.GET("/daily", ctrls.Report.Daily)
			reports.GET("/weekly", ctrls.Report.Weekly)
			reports.GET("/monthly", ctrls.Report.Monthly)
			reports.GET("/export", ctrls.Report.Export)
		}

		manager.POST("/uploads/presign", ctrls.Upload.Presign)
	}

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origins[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
