package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/month"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

func monthOf(s string) (month.Month, error) {
	return month.Parse(s)
}

func (h *handler) back(c *fiber.Ctx) string {
	return "/payments?month=" + h.Month(c).String()
}

func (h *handler) MakePaymentAPI(c *fiber.Ctx) error {
	in := models.PaymentInput{
		StudentID:     web.FormID(c, "student_id"),
		GroupID:       web.FormID(c, "group_id"),
		Month:         h.Month(c).String(),
		Amount:        web.FormFloat(c, "amount"),
		PaymentMethod: models.PaymentMethod(c.FormValue("payment_method")),
		Description:   c.FormValue("description"),
	}
	if err := h.Data.MakePayment(web.Ctx(c), in); err != nil {
		return h.Fail(c, err, h.back(c))
	}
	return h.Done(c, "To'lov qabul qilindi", web.BackURL(c, h.back(c)))
}

func (h *handler) DiscountAPI(c *fiber.Ctx) error {
	in := models.DiscountInput{
		StudentID:     web.FormID(c, "student_id"),
		GroupID:       web.FormID(c, "group_id"),
		DiscountType:  models.DiscountType(c.FormValue("discount_type")),
		DiscountValue: web.FormFloat(c, "discount_value"),
		Month:         c.FormValue("target_month"),
		Description:   c.FormValue("description"),
	}
	if err := h.Data.Discount(web.Ctx(c), in); err != nil {
		return h.Fail(c, err, h.back(c))
	}
	return h.Done(c, "Chegirma qo'llandi", web.BackURL(c, h.back(c)))
}

func (h *handler) ResetPaymentAPI(c *fiber.Ctx) error {
	if c.FormValue("confirm") != "yes" {
		h.Sessions.Flash(c, web.FlashError, "Bekor qilishni tasdiqlang")
		return c.Redirect(h.back(c), fiber.StatusSeeOther)
	}
	in := models.ResetPaymentInput{
		StudentID: web.FormID(c, "student_id"),
		GroupID:   web.FormID(c, "group_id"),
		Month:     h.Month(c).String(),
	}
	if err := h.Data.ResetPayment(web.Ctx(c), in); err != nil {
		return h.Fail(c, err, h.back(c))
	}
	return h.Done(c, "To'lov bekor qilindi", h.back(c))
}

func (h *handler) GenerateAPI(c *fiber.Ctx) error {
	if err := h.Data.GenerateSnapshots(web.Ctx(c), h.Month(c).String()); err != nil {
		return h.Fail(c, err, h.back(c))
	}
	return h.Done(c, "Oylik to'lovlar yaratildi", h.back(c))
}

func (h *handler) GenerateForNewAPI(c *fiber.Ctx) error {
	if err := h.Data.SnapshotsForNew(web.Ctx(c), h.Month(c).String()); err != nil {
		return h.Fail(c, err, h.back(c))
	}
	return h.Done(c, "Yangi o'quvchilar qo'shildi", h.back(c))
}

func (h *handler) ExportAPI(c *fiber.Ctx) error {
	blob, err := h.Data.ExportSnapshots(web.Ctx(c), h.filter(c))
	if err != nil {
		h.Sessions.Flash(c, web.FlashError, data.UserMessage(err, "Eksport qilib bo'lmadi"))
		return c.Redirect(h.back(c), fiber.StatusSeeOther)
	}
	return web.SendBlob(c, blob)
}

// StudentAttendanceAPI returns one student's month for the payments modal.
func (h *handler) StudentAttendanceAPI(c *fiber.Ctx) error {
	studentID := web.FormID(c, "student_id")
	groupID := web.FormID(c, "group_id")
	if studentID == 0 || groupID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "student_id va group_id kerak")
	}
	res, err := h.Data.StudentMonthly(web.Ctx(c), studentID, groupID, h.Month(c).String())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   data.UserMessage(err, web.GenericError),
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": res})
}
