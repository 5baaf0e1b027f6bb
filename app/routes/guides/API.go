package guides

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/reorder"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

func (h *handler) levelURL(levelID int64) string {
	return fmt.Sprintf("%s/levels/%d", h.prefix, levelID)
}

func (h *handler) lessonURL(lessonID int64) string {
	return fmt.Sprintf("%s/lessons/%d", h.prefix, lessonID)
}

func levelInput(c *fiber.Ctx) models.GuideLevelInput {
	return models.GuideLevelInput{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
}

func lessonInput(c *fiber.Ctx) models.GuideLessonInput {
	return models.GuideLessonInput{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
}

func (h *handler) CreateLevelAPI(c *fiber.Ctx) error {
	if err := h.guides(c).CreateLevel(web.Ctx(c), levelInput(c)); err != nil {
		return h.Fail(c, err, h.prefix)
	}
	return h.Done(c, "Bosqich qo'shildi", h.prefix)
}

func (h *handler) UpdateLevelAPI(c *fiber.Ctx) error {
	levelID, err := web.ParamID(c, "levelId")
	if err != nil {
		return err
	}
	if err := h.guides(c).UpdateLevel(web.Ctx(c), levelID, levelInput(c)); err != nil {
		return h.Fail(c, err, h.prefix)
	}
	return h.Done(c, "Bosqich yangilandi", web.BackURL(c, h.prefix))
}

func (h *handler) DeleteLevelAPI(c *fiber.Ctx) error {
	levelID, err := web.ParamID(c, "levelId")
	if err != nil {
		return err
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect(h.prefix, fiber.StatusSeeOther)
	}
	if err := h.guides(c).DeleteLevel(web.Ctx(c), levelID); err != nil {
		return h.Fail(c, err, h.prefix)
	}
	h.Sessions.DropDraft(c, orderDraft(levelID))
	return h.Done(c, "Bosqich o'chirildi", h.prefix)
}

func (h *handler) CreateLessonAPI(c *fiber.Ctx) error {
	levelID, err := web.ParamID(c, "levelId")
	if err != nil {
		return err
	}
	if err := h.guides(c).CreateLesson(web.Ctx(c), levelID, lessonInput(c)); err != nil {
		return h.Fail(c, err, h.levelURL(levelID))
	}
	// the lesson set changed; a staged order is stale now
	h.Sessions.DropDraft(c, orderDraft(levelID))
	return h.Done(c, "Dars qo'shildi", h.levelURL(levelID))
}

func (h *handler) UpdateLessonAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	if err := h.guides(c).UpdateLesson(web.Ctx(c), lessonID, lessonInput(c)); err != nil {
		return h.Fail(c, err, h.lessonURL(lessonID))
	}
	return h.Done(c, "Dars yangilandi", web.BackURL(c, h.lessonURL(lessonID)))
}

func (h *handler) DeleteLessonAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	back := h.prefix
	if level := web.FormID(c, "level"); level > 0 {
		back = h.levelURL(level)
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect(h.lessonURL(lessonID), fiber.StatusSeeOther)
	}
	ctx := web.Ctx(c)
	if err := h.guides(c).DeleteLesson(ctx, lessonID); err != nil {
		return h.Fail(c, err, h.lessonURL(lessonID))
	}
	h.Blobs.Close(h.viewer(c, lessonID))
	return h.Done(c, "Dars o'chirildi", back)
}

// Lesson order

func orderDraft(levelID int64) string {
	return "guides:order:" + strconv.FormatInt(levelID, 10)
}

func lessonIDs(lessons []models.GuideLesson) []int64 {
	ids := make([]int64, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	return ids
}

// staged returns the staged order of a level. A draft whose lessons no
// longer match the backend is dropped.
func (h *handler) staged(c *fiber.Ctx, levelID int64, lessons []models.GuideLesson) *reorder.Staged[int64] {
	ids := lessonIDs(lessons)
	var s reorder.Staged[int64]
	if web.DraftJSON(h.Sessions, c, orderDraft(levelID), &s) {
		if s.Matches(ids) {
			return &s
		}
		h.Sessions.DropDraft(c, orderDraft(levelID))
	}
	return reorder.NewStaged(ids)
}

// arrange returns lessons in the order of ids.
func arrange(lessons []models.GuideLesson, ids []int64) []models.GuideLesson {
	byID := make(map[int64]models.GuideLesson, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}
	out := make([]models.GuideLesson, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (h *handler) loadStaged(c *fiber.Ctx, levelID int64) (*reorder.Staged[int64], error) {
	lessons, err := h.guides(c).Lessons(web.Ctx(c), levelID)
	if err != nil {
		return nil, err
	}
	sortLessons(lessons)
	return h.staged(c, levelID, lessons), nil
}

// MoveLessonAPI moves lesson_id one step (dir=up|down) or to index to.
func (h *handler) MoveLessonAPI(c *fiber.Ctx) error {
	levelID, err := web.ParamID(c, "levelId")
	if err != nil {
		return err
	}
	s, err := h.loadStaged(c, levelID)
	if err != nil {
		return h.Fail(c, err, h.levelURL(levelID))
	}

	i := slices.Index(s.Current, web.FormID(c, "lesson_id"))
	if i < 0 {
		return fiber.NewError(fiber.StatusNotFound, "Dars topilmadi")
	}
	switch c.FormValue("dir") {
	case "up":
		s.MoveUp(i)
	case "down":
		s.MoveDown(i)
	default:
		to, err := strconv.Atoi(c.FormValue("to"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Noto'g'ri joy")
		}
		s.Move(i, to)
	}

	if err := web.SetDraftJSON(h.Sessions, c, orderDraft(levelID), s); err != nil {
		return h.Fail(c, err, h.levelURL(levelID))
	}
	return c.Redirect(h.levelURL(levelID), fiber.StatusSeeOther)
}

func (h *handler) SaveOrderAPI(c *fiber.Ctx) error {
	levelID, err := web.ParamID(c, "levelId")
	if err != nil {
		return err
	}
	s, err := h.loadStaged(c, levelID)
	if err != nil {
		return h.Fail(c, err, h.levelURL(levelID))
	}
	if !s.Changed() {
		h.Sessions.Flash(c, web.FlashInfo, "O'zgarishlar yo'q")
		return c.Redirect(h.levelURL(levelID), fiber.StatusSeeOther)
	}
	if err := h.guides(c).ReorderLessons(web.Ctx(c), levelID, s.Order()); err != nil {
		return h.Fail(c, err, h.levelURL(levelID))
	}
	h.Sessions.DropDraft(c, orderDraft(levelID))
	return h.Done(c, "Tartib saqlandi", h.levelURL(levelID))
}

func (h *handler) ResetOrderAPI(c *fiber.Ctx) error {
	levelID, err := web.ParamID(c, "levelId")
	if err != nil {
		return err
	}
	h.Sessions.DropDraft(c, orderDraft(levelID))
	return c.Redirect(h.levelURL(levelID), fiber.StatusSeeOther)
}
