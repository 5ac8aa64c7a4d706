package FiberConfig

import (
	"Meghna/Controllers"
	"Meghna/Models"
	"Meghna/middleware"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	requestController := Controllers.NewRequestController(db)
	budgetController := Controllers.NewBudgetController(db)
	configController := Controllers.NewConfigController(db)
	trackerController := Controllers.NewTrackerController(db)
	indentController := Controllers.NewIndentController(db)
	logController := Controllers.NewLogController(db)
	dashboardController := Controllers.NewDashboardController(db)

	app.Post("/api/Login", Controllers.Login)
	app.Post("/api/Logout", Controllers.Logout)
	app.Get("/api/User", middleware.Verify(""), Controllers.User)

	// User management, administrators only
	app.Post("/api/RegisterUser", middleware.Verify(Models.RoleAdministrator), Controllers.RegisterUser)
	app.Get("/api/FetchUsers", middleware.Verify(Models.RoleAdministrator), Controllers.FetchUsers)
	app.Patch("/api/UpdateUser", middleware.Verify(Models.RoleAdministrator), Controllers.UpdateUser)
	app.Delete("/api/DeleteUser", middleware.Verify(Models.RoleAdministrator), Controllers.DeleteUser)

	// MN requests
	requests := app.Group("/api/requests", middleware.Verify(Models.RoleUser))
	requests.Get("/", requestController.GetRequests)
	requests.Get("/statuses", requestController.GetStatuses)
	requests.Post("/", requestController.CreateRequest)
	requests.Post("/preview-cost", requestController.PreviewCost)
	requests.Get("/:id", requestController.GetRequest)
	requests.Put("/:id", middleware.Verify(Models.RoleAdministrator), requestController.UpdateRequest)
	requests.Patch("/:id/status", middleware.Verify(Models.RoleAdministrator), requestController.UpdateStatus)

	// Budget heads and ledger
	budgets := app.Group("/api/budgets", middleware.Verify(Models.RoleUser))
	budgets.Get("/ledger", budgetController.GetLedger)
	budgets.Get("/ledger/export", budgetController.ExportLedger)
	budgets.Get("/", budgetController.GetBudgetHeads)
	budgets.Post("/", middleware.Verify(Models.RoleAdministrator), budgetController.UpsertBudgetHead)
	budgets.Post("/import", middleware.Verify(Models.RoleAdministrator), budgetController.ImportBudgetFile)
	budgets.Put("/:id", middleware.Verify(Models.RoleAdministrator), budgetController.UpdateBudgetHead)
	budgets.Delete("/", middleware.Verify(Models.RoleAdministrator), budgetController.ClearBudgetHeads)

	// Financial configuration
	config := app.Group("/api/config", middleware.Verify(Models.RoleUser))
	config.Get("/", configController.GetConfig)
	config.Get("/currencies", configController.GetCurrencies)
	config.Put("/", middleware.Verify(Models.RoleAdministrator), configController.SaveConfig)

	// LC/PO tracker
	trackers := app.Group("/api/trackers", middleware.Verify(Models.RoleUser))
	trackers.Get("/", trackerController.GetTrackers)
	trackers.Get("/:mn_number", trackerController.GetTracker)
	trackers.Put("/:mn_number", trackerController.UpsertTracker)

	// Indent purchase bills
	indents := app.Group("/api/indents", middleware.Verify(Models.RoleUser))
	indents.Get("/", indentController.GetBills)
	indents.Get("/payment-modes", indentController.GetPaymentModes)
	indents.Post("/", indentController.CreateBill)
	indents.Get("/:bill_no", indentController.GetBill)
	indents.Put("/:bill_no", middleware.Verify(Models.RoleAdministrator), indentController.UpdateBill)
	indents.Post("/:bill_no/items", indentController.AddItem)
	indents.Delete("/items/:id", middleware.Verify(Models.RoleAdministrator), indentController.DeleteItem)

	// Dashboard and audit log
	app.Get("/api/dashboard", middleware.Verify(Models.RoleUser), dashboardController.GetDashboard)
	app.Get("/api/logs", middleware.Verify(Models.RoleAdministrator), logController.GetLogs)
	app.Get("/api/logs/stats", middleware.Verify(Models.RoleAdministrator), logController.GetLogStats)
}

func FiberConfig() {
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)

	addr := ":3001"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logrus.WithField("addr", addr).Info("server up")
	if err := app.Listen(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
