package attendance

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/attendance"
	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

var timeNow = time.Now

func draftName(lessonID int64) string {
	return "attendance:" + strconv.FormatInt(lessonID, 10)
}

func (h *handler) draft(c *fiber.Ctx, lessonID int64) *attendance.Sheet {
	raw, ok := h.Sessions.Draft(c, draftName(lessonID))
	if !ok {
		return nil
	}
	sheet, err := attendance.DecodeSheet(raw)
	if err != nil {
		h.Sessions.DropDraft(c, draftName(lessonID))
		return nil
	}
	return sheet
}

// sheet returns the edit buffer of a lesson on the current roster, with the
// stored draft's edits applied.
func (h *handler) sheet(c *fiber.Ctx, lessonID int64) (*attendance.Sheet, error) {
	return h.onRoster(c, lessonID, h.draft(c, lessonID))
}

// onRoster rebuilds draft on the roster the backend holds now. Students who
// left drop out and new ones start from their saved status.
func (h *handler) onRoster(c *fiber.Ctx, lessonID int64, draft *attendance.Sheet) (*attendance.Sheet, error) {
	roster, err := h.Data.Roster(web.Ctx(c), lessonID)
	if err != nil {
		return nil, err
	}
	s := attendance.NewSheet(lessonID, roster)
	s.Rebase(draft)
	return s, nil
}

func (h *handler) store(c *fiber.Ctx, s *attendance.Sheet) error {
	raw, err := s.Encode()
	if err != nil {
		return err
	}
	return h.Sessions.SetDraft(c, draftName(s.LessonID), raw)
}

func (h *handler) markURL(c *fiber.Ctx, lessonID int64) string {
	q := url.Values{}
	if g := c.FormValue("group", c.Query("group")); g != "" {
		q.Set("group", g)
	}
	if m := c.FormValue("month", c.Query("month")); m != "" {
		q.Set("month", m)
	}
	u := fmt.Sprintf("%s/lessons/%d", h.prefix, lessonID)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (h *handler) ToggleAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	studentID, err := web.ParamID(c, "studentId")
	if err != nil {
		return err
	}
	back := h.markURL(c, lessonID)

	s, err := h.sheet(c, lessonID)
	if err != nil {
		return h.Fail(c, err, back)
	}
	if err := s.Toggle(studentID); err != nil {
		h.Sessions.Flash(c, web.FlashError, toggleMessage(err))
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	if err := h.store(c, s); err != nil {
		return h.Fail(c, err, back)
	}
	return c.Redirect(back, fiber.StatusSeeOther)
}

// MarkAllAPI sets every student to ?status=.
func (h *handler) MarkAllAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	back := h.markURL(c, lessonID)

	s, err := h.sheet(c, lessonID)
	if err != nil {
		return h.Fail(c, err, back)
	}
	if err := s.SetAll(models.AttendanceStatus(c.FormValue("status"))); err != nil {
		h.Sessions.Flash(c, web.FlashError, toggleMessage(err))
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	if err := h.store(c, s); err != nil {
		return h.Fail(c, err, back)
	}
	return c.Redirect(back, fiber.StatusSeeOther)
}

func toggleMessage(err error) string {
	switch err {
	case attendance.ErrSaveInProgress:
		return "Saqlanmoqda, biroz kuting"
	case attendance.ErrUnknownStudent:
		return "O'quvchi bu darsda yo'q"
	}
	return "Noto'g'ri holat"
}

// SaveAPI sends the whole buffer as one batch.
func (h *handler) SaveAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	back := h.markURL(c, lessonID)

	key := web.Scope(c) + ":" + strconv.FormatInt(lessonID, 10)
	if _, busy := h.saving.LoadOrStore(key, struct{}{}); busy {
		h.Sessions.Flash(c, web.FlashInfo, "Saqlanmoqda, biroz kuting")
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	defer h.saving.Delete(key)

	draft := h.draft(c, lessonID)
	if draft == nil {
		h.Sessions.Flash(c, web.FlashInfo, "O'zgarishlar yo'q")
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	s, err := h.onRoster(c, lessonID, draft)
	if err != nil {
		return h.Fail(c, err, back)
	}

	req, err := s.BeginSave()
	switch err {
	case nil:
	case attendance.ErrNoChanges:
		h.Sessions.DropDraft(c, draftName(lessonID))
		h.Sessions.Flash(c, web.FlashInfo, "O'zgarishlar yo'q")
		return c.Redirect(back, fiber.StatusSeeOther)
	default:
		h.Sessions.Flash(c, web.FlashInfo, toggleMessage(err))
		return c.Redirect(back, fiber.StatusSeeOther)
	}

	if err := h.Data.Mark(web.Ctx(c), req); err != nil {
		msg := data.UserMessage(err, web.GenericError)
		h.Log.Warn("attendance save failed", zap.Int64("lesson_id", lessonID), zap.Error(err))
		s.Fail(msg)
		_ = h.store(c, s)
		h.Sessions.Flash(c, web.FlashError, msg)
		return c.Redirect(back, fiber.StatusSeeOther)
	}

	s.Saved()
	h.Sessions.DropDraft(c, draftName(lessonID))
	return h.Done(c, "Davomat saqlandi", back)
}

func (h *handler) DiscardAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	h.Sessions.DropDraft(c, draftName(lessonID))
	return c.Redirect(h.markURL(c, lessonID), fiber.StatusSeeOther)
}

func (h *handler) lessonsURL(groupID int64, m string) string {
	return fmt.Sprintf("%s/groups/%d?month=%s", h.prefix, groupID, m)
}

func (h *handler) CreateLessonAPI(c *fiber.Ctx) error {
	g, err := h.group(c)
	if err != nil {
		return err
	}
	m := h.Month(c).String()
	back := h.lessonsURL(g.ID, m)

	if g.Status == models.GroupBlocked {
		h.Sessions.Flash(c, web.FlashError, "Guruh bloklangan, dars qo'shib bo'lmaydi")
		return c.Redirect(back, fiber.StatusSeeOther)
	}

	req := models.CreateLessonRequest{GroupID: g.ID, Date: c.FormValue("date")}
	if err := h.Data.CreateLesson(web.Ctx(c), req); err != nil {
		return h.Fail(c, err, back)
	}
	return h.Done(c, "Dars qo'shildi", back)
}

func (h *handler) DeleteLessonAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	back := h.prefix
	if groupID := web.FormID(c, "group"); groupID > 0 {
		back = h.lessonsURL(groupID, h.Month(c).String())
	}

	if c.FormValue("confirm") != "yes" {
		h.Sessions.Flash(c, web.FlashError, "O'chirishni tasdiqlang")
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	if err := h.Data.DeleteLesson(web.Ctx(c), lessonID); err != nil {
		return h.Fail(c, err, back)
	}
	h.Sessions.DropDraft(c, draftName(lessonID))
	return h.Done(c, "Dars o'chirildi", back)
}

// ExportAPI streams the monthly sheet. A failed export never sends a body.
func (h *handler) ExportAPI(c *fiber.Ctx) error {
	groupID, err := web.ParamID(c, "groupId")
	if err != nil {
		return err
	}
	m := h.Month(c).String()

	blob, err := h.Data.ExportMonthly(web.Ctx(c), groupID, m)
	if err != nil {
		h.Sessions.Flash(c, web.FlashError, data.UserMessage(err, "Eksport qilib bo'lmadi"))
		return c.Redirect(fmt.Sprintf("%s/groups/%d/monthly?month=%s", h.prefix, groupID, m), fiber.StatusSeeOther)
	}
	return web.SendBlob(c, blob)
}

func (h *handler) MonthlyStatusAPI(c *fiber.Ctx) error {
	groupID, err := web.ParamID(c, "groupId")
	if err != nil {
		return err
	}
	studentID, err := web.ParamID(c, "studentId")
	if err != nil {
		return err
	}
	m := h.Month(c).String()
	back := fmt.Sprintf("%s/groups/%d/monthly?month=%s", h.prefix, groupID, m)

	var months []string
	for _, v := range c.Request().PostArgs().PeekMulti("months") {
		months = append(months, string(v))
	}
	change := attendance.StatusChange{
		StudentID: studentID,
		GroupID:   groupID,
		Status:    models.MonthlyStatus(c.FormValue("monthly_status")),
		Scope:     attendance.Scope(c.FormValue("scope", string(attendance.ScopeCurrent))),
		Current:   m,
		Months:    months,
	}
	req, err := change.Request()
	if err != nil {
		h.Sessions.Flash(c, web.FlashError, statusMessage(err))
		return c.Redirect(back, fiber.StatusSeeOther)
	}
	if err := h.Data.SetMonthlyStatus(web.Ctx(c), req); err != nil {
		return h.Fail(c, err, back)
	}
	return h.Done(c, "Oylik holat yangilandi", back)
}

func statusMessage(err error) string {
	switch err {
	case attendance.ErrNoMonths:
		return "Kamida bitta oyni tanlang"
	case attendance.ErrInvalidMonthly:
		return "Holat noto'g'ri"
	}
	return client.Message(err, "Ma'lumotlar noto'g'ri")
}
