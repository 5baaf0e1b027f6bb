package expenses

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

var timeNow = time.Now

func (h *handler) ExpensesPage(c *fiber.Ctx) error {
	m := h.Month(c)
	page, err := h.Data.Expenses(web.Ctx(c), m.String())

	return h.Render(c, "expenses/index", "Xarajatlar", "expenses", fiber.Map{
		"expenses":   page.Rows,
		"Total":      page.Total,
		"LoadError":  web.QueryError(err),
		"EditID":     web.FormID(c, "edit"),
		"Today":      timeNow().In(h.Config.Location()).Format("2006-01-02"),
		"Month":      m.String(),
		"MonthName":  m.Label(),
		"PrevMonth":  m.Prev().String(),
		"NextMonth":  m.Next().String(),
		"EmptyState": err == nil && len(page.Rows) == 0,
	})
}

func (h *handler) ConfirmDeletePage(c *fiber.Ctx) error {
	if _, err := web.ParamID(c, "id"); err != nil {
		return err
	}
	return h.Render(c, "shared/confirm", "Xarajatni o'chirish", "expenses", fiber.Map{
		"Heading": "Xarajatni o'chirish",
		"Message": "Xarajat o'chirilsinmi? Bu amalni qaytarib bo'lmaydi.",
		"Action":  c.Path() + "?month=" + h.Month(c).String(),
		"Cancel":  h.listURL(c),
	})
}

func (h *handler) listURL(c *fiber.Ctx) string {
	return "/expenses?month=" + h.Month(c).String()
}

func expenseInput(c *fiber.Ctx) models.ExpenseInput {
	return models.ExpenseInput{
		Reason: strings.TrimSpace(c.FormValue("reason")),
		Amount: web.FormFloat(c, "amount"),
		Date:   c.FormValue("date"),
	}
}

func (h *handler) CreateExpenseAPI(c *fiber.Ctx) error {
	if err := h.Data.CreateExpense(web.Ctx(c), expenseInput(c)); err != nil {
		return h.Fail(c, err, h.listURL(c))
	}
	return h.Done(c, "Xarajat qo'shildi", h.listURL(c))
}

func (h *handler) UpdateExpenseAPI(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Data.UpdateExpense(web.Ctx(c), id, expenseInput(c)); err != nil {
		return h.Fail(c, err, h.listURL(c))
	}
	return h.Done(c, "Xarajat yangilandi", h.listURL(c))
}

func (h *handler) DeleteExpenseAPI(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect(h.listURL(c), fiber.StatusSeeOther)
	}
	if err := h.Data.DeleteExpense(web.Ctx(c), id); err != nil {
		return h.Fail(c, err, h.listURL(c))
	}
	return h.Done(c, "Xarajat o'chirildi", h.listURL(c))
}
