package models

import (
	"io"
	"strings"
)

// GuideLevel is the top of the course content tree.
type GuideLevel struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LessonCount int    `json:"lesson_count"`
}

type GuideLevelInput struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"max=2000"`
}

// GuideLesson is a lesson inside a level, ordered by Order.
type GuideLesson struct {
	ID          int64  `json:"id"`
	LevelID     int64  `json:"level_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type GuideLessonInput struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"max=2000"`
}

// GuideLessonDetail is a lesson with every material attached to it.
type GuideLessonDetail struct {
	GuideLesson
	Notes              []GuideNote       `json:"notes"`
	PDFs               []GuideFile       `json:"pdfs"`
	Assignments        []GuideNote       `json:"assignments"`
	Vocabulary         []VocabularyEntry `json:"vocabulary"`
	VocabularyImages   []GuideFile       `json:"vocabulary_images"`
	VocabularyPDFs     []GuideFile       `json:"vocabulary_pdfs"`
	VocabularyMarkdown []GuideNote       `json:"vocabulary_markdown"`
	Videos             []GuideVideo      `json:"videos"`
}

// GuideNote carries notes, assignments and markdown documents.
type GuideNote struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GuideFile is a protected binary; FileURL is a backend path that needs the
// bearer token.
type GuideFile struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
}

type VocabularyEntry struct {
	ID          int64  `json:"id"`
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

type GuideVideo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MaterialKind names a leaf collection of a guide lesson. The value is the
// path segment the backend uses.
type MaterialKind string

const (
	KindNote               MaterialKind = "notes"
	KindPDF                MaterialKind = "pdfs"
	KindAssignment         MaterialKind = "assignments"
	KindVocabulary         MaterialKind = "vocabulary"
	KindVocabularyImage    MaterialKind = "vocabulary-images"
	KindVocabularyPDF      MaterialKind = "vocabulary-pdfs"
	KindVocabularyMarkdown MaterialKind = "vocabulary-markdown"
	KindVideo              MaterialKind = "videos"
)

var MaterialKinds = []MaterialKind{
	KindNote, KindPDF, KindAssignment, KindVocabulary,
	KindVocabularyImage, KindVocabularyPDF, KindVocabularyMarkdown, KindVideo,
}

func (k MaterialKind) Valid() bool {
	for _, known := range MaterialKinds {
		if k == known {
			return true
		}
	}
	return false
}

// HasFile reports whether the kind is uploaded as multipart.
func (k MaterialKind) HasFile() bool {
	return k == KindPDF || k == KindVocabularyImage || k == KindVocabularyPDF
}

// Files returns the file list of the kind, nil for non-file kinds.
func (d *GuideLessonDetail) Files(k MaterialKind) []GuideFile {
	switch k {
	case KindPDF:
		return d.PDFs
	case KindVocabularyImage:
		return d.VocabularyImages
	case KindVocabularyPDF:
		return d.VocabularyPDFs
	}
	return nil
}

// FindFile looks up a protected file of the lesson.
func (d *GuideLessonDetail) FindFile(k MaterialKind, id int64) (GuideFile, bool) {
	for _, f := range d.Files(k) {
		if f.ID == id {
			return f, true
		}
	}
	return GuideFile{}, false
}

// FileUpload is a file posted through a material form.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// MaterialInput is the union of every material form. Which fields are
// required depends on the kind.
type MaterialInput struct {
	Title       string      `json:"title,omitempty" form:"title"`
	Content     string      `json:"content,omitempty" form:"content"`
	Word        string      `json:"word,omitempty" form:"word"`
	Translation string      `json:"translation,omitempty" form:"translation"`
	URL         string      `json:"url,omitempty" form:"url"`
	File        *FileUpload `json:"-" form:"-"`
}

// Missing returns the names of required fields that are blank. creating
// decides whether file kinds need a file.
func (in MaterialInput) Missing(k MaterialKind, creating bool) []string {
	var missing []string
	need := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	switch k {
	case KindNote, KindAssignment, KindVocabularyMarkdown:
		need("title", in.Title)
		need("content", in.Content)
	case KindVocabulary:
		need("word", in.Word)
		need("translation", in.Translation)
	case KindVideo:
		need("title", in.Title)
		need("url", in.URL)
	case KindPDF, KindVocabularyImage, KindVocabularyPDF:
		need("title", in.Title)
		if creating && in.File == nil {
			missing = append(missing, "file")
		}
	}
	return missing
}

// Fields returns the form fields sent along with a multipart upload.
func (in MaterialInput) Fields() map[string]string {
	out := map[string]string{}
	if in.Title != "" {
		out["title"] = in.Title
	}
	return out
}
