package routes

import (
	"ordergrab/controllers/admin"
	"ordergrab/controllers/auth"
	"ordergrab/controllers/user"
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(app *fiber.App, limiter *middlewares.RateLimiter) {
	app.Get("/health", health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	authroutes := api.Group("/auth")
	if limiter != nil {
		authroutes.Post("/register", limiter.Middleware(), auth.Register)
		authroutes.Post("/login", limiter.Middleware(), auth.Login)
	} else {
		authroutes.Post("/register", auth.Register)
		authroutes.Post("/login", auth.Login)
	}
	authroutes.Post("/logout", middlewares.RequireAuth, auth.Logout)
	authroutes.Get("/me", middlewares.RequireAuth, auth.Me)

	orderroutes := api.Group("/orders", middlewares.RequireAuth)
	orderroutes.Get("/", user.ListOrders)
	orderroutes.Get("/:id", user.GetOrder)
	orderroutes.Post("/:id/grab", user.GrabOrder)

	api.Get("/commissions", middlewares.RequireAuth, user.ListCommissions)

	walletroutes := api.Group("/wallet", middlewares.RequireAuth)
	walletroutes.Get("/balance", user.Balance)
	walletroutes.Post("/recharge", user.RequestRecharge)
	walletroutes.Post("/withdraw", user.RequestWithdraw)
	walletroutes.Get("/transactions", user.ListMyTransactions)

	profileroutes := api.Group("/profile", middlewares.RequireAuth)
	profileroutes.Get("/address", user.GetAddress)
	profileroutes.Put("/address", user.UpsertAddress)
	profileroutes.Get("/bank", user.GetBank)
	profileroutes.Put("/bank", user.UpsertBank)
	profileroutes.Get("/team", user.Team)

	paymentroutes := api.Group("/payment-settings", middlewares.RequireAuth)
	paymentroutes.Get("/", user.GetPaymentSettings)
	paymentroutes.Get("/qrcode", user.PaymentQRCode)

	adminroutes := api.Group("/admin", middlewares.RequireAuth, middlewares.AdminOnly())
	adminroutes.Get("/dashboard", admin.Dashboard)

	adminroutes.Get("/orders", admin.ListOrders)
	adminroutes.Post("/orders", admin.CreateOrder)
	adminroutes.Put("/orders/:id", admin.UpdateOrder)
	adminroutes.Delete("/orders/:id", admin.DeleteOrder)

	adminroutes.Get("/users", admin.ListUsers)
	adminroutes.Get("/users/:id", admin.GetUser)
	adminroutes.Patch("/users/:id/block", admin.SetBlocked)
	adminroutes.Post("/users/:id/release", admin.ReleaseFrozen)
	adminroutes.Post("/users/:id/adjust", admin.AdjustBalance)

	adminroutes.Get("/transactions", admin.ListTransactions)
	adminroutes.Patch("/transactions/:id", admin.UpdateTransactionStatus)

	adminroutes.Put("/payment-settings", admin.UpdatePaymentSettings)
}

func health(c *fiber.Ctx) error {
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return helpers.JSONStatus(c, fiber.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", err.Error())
	}
	return helpers.JSONSuccess(c, "ok", fiber.Map{"database": "up"})
}
