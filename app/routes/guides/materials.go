package guides

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/blobs"
	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

var kindLabels = map[models.MaterialKind]string{
	models.KindNote:               "Izohlar",
	models.KindPDF:                "PDF fayllar",
	models.KindAssignment:         "Topshiriqlar",
	models.KindVocabulary:         "Lug'at",
	models.KindVocabularyImage:    "Lug'at rasmlari",
	models.KindVocabularyPDF:      "Lug'at PDF",
	models.KindVocabularyMarkdown: "Lug'at matni",
	models.KindVideo:              "Videolar",
}

type kindView struct {
	Kind    models.MaterialKind
	Label   string
	HasFile bool
}

func kindViews() []kindView {
	out := make([]kindView, 0, len(models.MaterialKinds))
	for _, k := range models.MaterialKinds {
		out = append(out, kindView{Kind: k, Label: kindLabels[k], HasFile: k.HasFile()})
	}
	return out
}

func kindParam(c *fiber.Ctx) (models.MaterialKind, error) {
	k := models.MaterialKind(c.Params("kind", c.FormValue("kind")))
	if !k.Valid() {
		return k, fiber.NewError(fiber.StatusNotFound, "Bunday material turi yo'q")
	}
	return k, nil
}

// materialInput reads a material form. The returned func closes the
// uploaded file, if any.
func materialInput(c *fiber.Ctx) (models.MaterialInput, func(), error) {
	in := models.MaterialInput{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Content:     c.FormValue("content"),
		Word:        strings.TrimSpace(c.FormValue("word")),
		Translation: strings.TrimSpace(c.FormValue("translation")),
		URL:         strings.TrimSpace(c.FormValue("url")),
	}
	done := func() {}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return in, done, nil
	}
	f, err := fh.Open()
	if err != nil {
		return in, done, err
	}
	in.File = &models.FileUpload{Name: fh.Filename, Reader: f}
	return in, func() { _ = f.Close() }, nil
}

func (h *handler) CreateMaterialAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	k, err := kindParam(c)
	if err != nil {
		return err
	}
	in, done, err := materialInput(c)
	if err != nil {
		return h.Fail(c, err, h.lessonURL(lessonID))
	}
	defer done()

	if err := h.guides(c).CreateMaterial(web.Ctx(c), lessonID, k, in); err != nil {
		return h.Fail(c, err, h.lessonURL(lessonID))
	}
	return h.Done(c, kindLabels[k]+": qo'shildi", h.lessonURL(lessonID))
}

func (h *handler) UpdateMaterialAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	k, err := kindParam(c)
	if err != nil {
		return err
	}
	materialID, err := web.ParamID(c, "materialId")
	if err != nil {
		return err
	}
	in, done, err := materialInput(c)
	if err != nil {
		return h.Fail(c, err, h.lessonURL(lessonID))
	}
	defer done()

	if err := h.guides(c).UpdateMaterial(web.Ctx(c), k, materialID, in); err != nil {
		return h.Fail(c, err, h.lessonURL(lessonID))
	}
	// a replaced file must not keep showing the old bytes
	if k.HasFile() {
		if handle, ok := h.Blobs.Handle(h.viewer(c, lessonID), string(k)); ok {
			h.Blobs.Revoke(handle)
		}
	}
	return h.Done(c, kindLabels[k]+": yangilandi", h.lessonURL(lessonID))
}

func (h *handler) DeleteMaterialAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	k, err := kindParam(c)
	if err != nil {
		return err
	}
	materialID, err := web.ParamID(c, "materialId")
	if err != nil {
		return err
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect(h.lessonURL(lessonID), fiber.StatusSeeOther)
	}
	if err := h.guides(c).DeleteMaterial(web.Ctx(c), k, materialID); err != nil {
		return h.Fail(c, err, h.lessonURL(lessonID))
	}
	if k.HasFile() {
		if handle, ok := h.Blobs.Handle(h.viewer(c, lessonID), string(k)); ok {
			h.Blobs.Revoke(handle)
		}
	}
	return h.Done(c, kindLabels[k]+": o'chirildi", h.lessonURL(lessonID))
}

// Viewer

func (h *handler) viewer(c *fiber.Ctx, lessonID int64) blobs.Viewer {
	return blobs.Viewer{Owner: web.Scope(c), Lesson: lessonID}
}

// openHandles maps each file kind with an open viewer slot to its URL.
func (h *handler) openHandles(c *fiber.Ctx, lessonID int64) map[string]string {
	v := h.viewer(c, lessonID)
	out := map[string]string{}
	for _, k := range models.MaterialKinds {
		if !k.HasFile() {
			continue
		}
		if handle, ok := h.Blobs.Handle(v, string(k)); ok {
			out[string(k)] = "/blobs/" + handle
		}
	}
	return out
}

// OpenFileAPI fetches a protected file of the lesson with the user's token
// and opens it in the viewer slot of its kind.
func (h *handler) OpenFileAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	k, err := kindParam(c)
	if err != nil {
		return err
	}
	back := h.lessonURL(lessonID)
	ctx := web.Ctx(c)
	g := h.guides(c)

	lesson, err := g.Lesson(ctx, lessonID)
	if err != nil {
		return h.Fail(c, err, back)
	}
	f, ok := lesson.FindFile(k, web.FormID(c, "file_id"))
	if !ok {
		return h.Fail(c, data.ErrNotFound, back)
	}
	blob, err := g.FetchFile(ctx, f)
	if err != nil {
		return h.Fail(c, err, back)
	}
	h.Blobs.Open(h.viewer(c, lessonID), string(k), blob)
	return c.Redirect(fmt.Sprintf("%s#viewer-%s", back, k), fiber.StatusSeeOther)
}

func (h *handler) CloseViewerAPI(c *fiber.Ctx) error {
	lessonID, err := web.ParamID(c, "lessonId")
	if err != nil {
		return err
	}
	v := h.viewer(c, lessonID)
	if slot := c.FormValue("kind"); slot != "" {
		if handle, ok := h.Blobs.Handle(v, slot); ok {
			h.Blobs.Revoke(handle)
		}
	} else {
		h.Blobs.Close(v)
	}
	return c.Redirect(h.lessonURL(lessonID), fiber.StatusSeeOther)
}

// BlobAPI serves an open handle to the user who opened it.
func (h *handler) BlobAPI(c *fiber.Ctx) error {
	blob, ok := h.Blobs.Get(c.Params("handle"), web.Scope(c))
	if !ok {
		h.Log.Debug("blob handle not live", zap.String("handle", c.Params("handle")))
		return fiber.NewError(fiber.StatusNotFound, "Fayl yopilgan yoki muddati o'tgan")
	}
	return web.SendInline(c, blob)
}
