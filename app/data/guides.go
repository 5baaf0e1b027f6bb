package data

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/models"
)

const (
	adminGuides   = "/api/admin/guides"
	teacherGuides = "/api/teacher/guides"
)

// Guides is the course content tree as seen by one role. Teachers get a
// read-only mirror.
type Guides struct {
	s        *Store
	base     string
	readOnly bool
}

func (s *Store) Guides(role models.Role) *Guides {
	if role == models.RoleTeacher {
		return &Guides{s: s, base: teacherGuides, readOnly: true}
	}
	return &Guides{s: s, base: adminGuides}
}

func (g *Guides) ReadOnly() bool { return g.readOnly }

func (g *Guides) Levels(ctx context.Context) ([]models.GuideLevel, error) {
	return list[models.GuideLevel](ctx, g.s, g.base+"/levels", nil)
}

func (g *Guides) Level(ctx context.Context, levelID int64) (models.GuideLevel, error) {
	return object[models.GuideLevel](ctx, g.s, g.base+"/levels/"+id(levelID), nil)
}

func (g *Guides) Lessons(ctx context.Context, levelID int64) ([]models.GuideLesson, error) {
	return list[models.GuideLesson](ctx, g.s, g.base+"/levels/"+id(levelID)+"/lessons", nil)
}

func (g *Guides) Lesson(ctx context.Context, lessonID int64) (models.GuideLessonDetail, error) {
	return object[models.GuideLessonDetail](ctx, g.s, g.base+"/lessons/"+id(lessonID), nil)
}

func (g *Guides) write(ctx context.Context, method, path string, body any) error {
	if g.readOnly {
		return ErrReadOnly
	}
	return g.s.mutate(ctx, method, path, body, nil, adminGuides, teacherGuides)
}

func (g *Guides) CreateLevel(ctx context.Context, in models.GuideLevelInput) error {
	if err := g.s.check(in); err != nil {
		return err
	}
	return g.write(ctx, http.MethodPost, g.base+"/levels", in)
}

func (g *Guides) UpdateLevel(ctx context.Context, levelID int64, in models.GuideLevelInput) error {
	if err := g.s.check(in); err != nil {
		return err
	}
	return g.write(ctx, http.MethodPut, g.base+"/levels/"+id(levelID), in)
}

func (g *Guides) DeleteLevel(ctx context.Context, levelID int64) error {
	return g.write(ctx, http.MethodDelete, g.base+"/levels/"+id(levelID), nil)
}

func (g *Guides) CreateLesson(ctx context.Context, levelID int64, in models.GuideLessonInput) error {
	if err := g.s.check(in); err != nil {
		return err
	}
	return g.write(ctx, http.MethodPost, g.base+"/levels/"+id(levelID)+"/lessons", in)
}

func (g *Guides) UpdateLesson(ctx context.Context, lessonID int64, in models.GuideLessonInput) error {
	if err := g.s.check(in); err != nil {
		return err
	}
	return g.write(ctx, http.MethodPut, g.base+"/lessons/"+id(lessonID), in)
}

func (g *Guides) DeleteLesson(ctx context.Context, lessonID int64) error {
	return g.write(ctx, http.MethodDelete, g.base+"/lessons/"+id(lessonID), nil)
}

type reorderBody struct {
	LessonIDs []int64 `json:"lesson_ids"`
}

// ReorderLessons saves the full ordered id list of a level.
func (g *Guides) ReorderLessons(ctx context.Context, levelID int64, ids []int64) error {
	if len(ids) == 0 {
		return invalid("lesson_ids")
	}
	return g.write(ctx, http.MethodPut, g.base+"/levels/"+id(levelID)+"/lessons/reorder", reorderBody{LessonIDs: ids})
}

func (g *Guides) checkMaterial(k models.MaterialKind, in models.MaterialInput, creating bool) error {
	if !k.Valid() {
		return invalid("kind")
	}
	if missing := in.Missing(k, creating); len(missing) > 0 {
		return invalid(missing...)
	}
	return nil
}

// CreateMaterial adds a material to a lesson. File kinds go up as
// multipart, the rest as JSON.
func (g *Guides) CreateMaterial(ctx context.Context, lessonID int64, k models.MaterialKind, in models.MaterialInput) error {
	if err := g.checkMaterial(k, in, true); err != nil {
		return err
	}
	return g.send(ctx, http.MethodPost, g.base+"/lessons/"+id(lessonID)+"/"+string(k), k, in)
}

// UpdateMaterial replaces a material. A file kind keeps its file when no
// new one is given.
func (g *Guides) UpdateMaterial(ctx context.Context, k models.MaterialKind, materialID int64, in models.MaterialInput) error {
	if err := g.checkMaterial(k, in, false); err != nil {
		return err
	}
	return g.send(ctx, http.MethodPut, g.base+"/"+string(k)+"/"+id(materialID), k, in)
}

func (g *Guides) DeleteMaterial(ctx context.Context, k models.MaterialKind, materialID int64) error {
	if !k.Valid() {
		return invalid("kind")
	}
	return g.write(ctx, http.MethodDelete, g.base+"/"+string(k)+"/"+id(materialID), nil)
}

func (g *Guides) send(ctx context.Context, method, path string, k models.MaterialKind, in models.MaterialInput) error {
	if g.readOnly {
		return ErrReadOnly
	}
	if !k.HasFile() {
		return g.write(ctx, method, path, in)
	}
	var (
		name string
		r    io.Reader
	)
	if in.File != nil {
		name, r = in.File.Name, in.File.Reader
	}
	err := g.s.api.Upload(ctx, method, path, "file", name, r, in.Fields(), nil)
	if err != nil {
		return err
	}
	g.s.cache.Invalidate(ctx, adminGuides, teacherGuides)
	return nil
}

// FetchFile downloads a protected lesson file. The host of an absolute
// file URL is dropped so the token only ever goes to the backend.
func (g *Guides) FetchFile(ctx context.Context, f models.GuideFile) (*client.Blob, error) {
	p := f.FileURL
	if i := strings.Index(p, "://"); i >= 0 {
		rest := p[i+3:]
		p = ""
		if j := strings.Index(rest, "/"); j >= 0 {
			p = rest[j:]
		}
	}
	if p == "" {
		return nil, ErrNotFound
	}
	b, err := g.s.api.GetBlob(ctx, p, nil)
	if err != nil {
		return nil, err
	}
	if f.FileName != "" {
		b.Filename = f.FileName
	}
	return b, nil
}
