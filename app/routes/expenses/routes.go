package expenses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

type handler struct {
	*web.Deps
}

func SetupExpensesRoutes(app *fiber.App, d *web.Deps) {
	h := &handler{d}

	expenses := app.Group("/expenses", auth.AuthMiddleware, auth.RoleMiddleware(auth.Admins...))
	expenses.Get("/", h.ExpensesPage)
	expenses.Get("/:id/delete", h.ConfirmDeletePage)
	expenses.Post("/", h.CreateExpenseAPI)
	expenses.Post("/:id", h.UpdateExpenseAPI)
	expenses.Post("/:id/delete", h.DeleteExpenseAPI)
}
