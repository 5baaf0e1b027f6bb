package salary

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

func (h *handler) detailURL(teacherID int64, m string) string {
	return fmt.Sprintf("/salary/%d?month=%s", teacherID, m)
}

func (h *handler) PercentageAPI(c *fiber.Ctx) error {
	teacherID, err := web.ParamID(c, "teacherId")
	if err != nil {
		return err
	}
	m := h.Month(c).String()
	in := models.PercentageInput{TeacherID: teacherID, Percentage: web.FormFloat(c, "percentage")}
	if err := h.Data.UpdatePercentage(web.Ctx(c), m, in); err != nil {
		return h.Fail(c, err, h.detailURL(teacherID, m))
	}
	return h.Done(c, "Foiz yangilandi", h.detailURL(teacherID, m))
}

func (h *handler) AdvanceAPI(c *fiber.Ctx) error {
	teacherID, err := web.ParamID(c, "teacherId")
	if err != nil {
		return err
	}
	m := h.Month(c).String()
	in := models.AdvanceInput{
		TeacherID: teacherID,
		Month:     m,
		Amount:    web.FormFloat(c, "amount"),
		Note:      c.FormValue("note"),
	}
	if err := h.Data.AddAdvance(web.Ctx(c), in); err != nil {
		return h.Fail(c, err, h.detailURL(teacherID, m))
	}
	return h.Done(c, "Avans qo'shildi", h.detailURL(teacherID, m))
}

func (h *handler) CloseMonthAPI(c *fiber.Ctx) error {
	teacherID, err := web.ParamID(c, "teacherId")
	if err != nil {
		return err
	}
	m := h.Month(c).String()
	if c.FormValue("confirm") != "yes" {
		h.Sessions.Flash(c, web.FlashError, "Oyni yopishni tasdiqlang")
		return c.Redirect(h.detailURL(teacherID, m), fiber.StatusSeeOther)
	}
	in := models.CloseMonthInput{TeacherID: teacherID, Month: m}
	if err := h.Data.CloseMonth(web.Ctx(c), in); err != nil {
		return h.Fail(c, err, h.detailURL(teacherID, m))
	}
	return h.Done(c, "Oy yopildi", "/salary?month="+m)
}
