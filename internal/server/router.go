// Package server assembles the HTTP router from the application services.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ledgerly/internal/docs" // Import swagger docs
	"ledgerly/internal/handlers"
	"ledgerly/internal/middleware"
	"ledgerly/internal/services"
)

// Services are the dependencies the router dispatches to.
type Services struct {
	Transactions services.TransactionServicer
	Budgets      services.BudgetServicer
	Profile      services.ProfileServicer
	Analytics    services.AnalyticsServicer
	Cards        services.CardServicer
	Export       services.ExportServicer
	Activity     services.ActivityServicer
}

// NewRouter builds the Gin engine with middleware, swagger, health check and
// the /api/v1 routes.
func NewRouter(svc Services) *gin.Engine {
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Activity)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Activity)
	profileHandler := handlers.NewProfileHandler(svc.Profile, svc.Export, svc.Activity)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics)
	cardHandler := handlers.NewCardHandler(svc.Cards)
	activityHandler := handlers.NewActivityHandler(svc.Activity)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.GET("/summary", transactionHandler.GetSummary)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/categories", transactionHandler.ListCategories)
	transactions.GET("/export", transactionHandler.ExportCSV)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.ReplaceTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.GET("/palette", budgetHandler.GetPalette)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PATCH("/:id", budgetHandler.UpdateBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	profile := v1.Group("/profile")
	profile.GET("", profileHandler.GetProfile)
	profile.PATCH("", profileHandler.UpdateProfile)
	profile.PATCH("/preferences", profileHandler.UpdatePreferences)
	profile.PUT("/password", profileHandler.ChangePassword)
	profile.POST("/export", profileHandler.ExportData)

	v1.GET("/analytics", analyticsHandler.GetOverview)

	cards := v1.Group("/cards")
	cards.GET("", cardHandler.ListCards)
	cards.GET("/credit/summary", cardHandler.GetCreditSummary)
	cards.GET("/:id", cardHandler.GetCard)

	v1.GET("/activity", activityHandler.ListActivity)

	return router
}
