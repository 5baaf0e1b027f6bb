// Package attendance holds the marking-screen edit buffer and the monthly
// status payload builder.
package attendance

import (
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

// State is the lifecycle of one marking screen.
type State string

const (
	Idle    State = "idle"
	Editing State = "editing"
	Saving  State = "saving"
	Failed  State = "error"
)

var (
	ErrNoChanges      = errors.New("attendance: no changes to save")
	ErrSaveInProgress = errors.New("attendance: save already in progress")
	ErrUnknownStudent = errors.New("attendance: student is not on this roster")
	ErrInvalidStatus  = errors.New("attendance: invalid status")
)

// DefaultStatus is what an unmarked student is saved as.
const DefaultStatus = models.Absent

// Sheet is the edit buffer of one lesson: the statuses the backend holds
// (initial) and the statuses on screen (buffer).
type Sheet struct {
	LessonID int64                             `json:"lesson_id"`
	Order    []int64                           `json:"order"`
	Initial  map[int64]models.AttendanceStatus `json:"initial"`
	Buffer   map[int64]models.AttendanceStatus `json:"buffer"`
	State    State                             `json:"state"`
	Error    string                            `json:"error,omitempty"`
}

func NewSheet(lessonID int64, roster []models.RosterEntry) *Sheet {
	s := &Sheet{
		LessonID: lessonID,
		Order:    make([]int64, 0, len(roster)),
		Initial:  make(map[int64]models.AttendanceStatus, len(roster)),
		Buffer:   make(map[int64]models.AttendanceStatus, len(roster)),
		State:    Idle,
	}
	for _, e := range roster {
		st := e.Status
		if !st.Valid() {
			st = DefaultStatus
		}
		s.Order = append(s.Order, e.StudentID)
		s.Initial[e.StudentID] = st
		s.Buffer[e.StudentID] = st
	}
	return s
}

func (s *Sheet) Status(studentID int64) models.AttendanceStatus {
	return s.Buffer[studentID]
}

// Toggle flips one student between present and absent.
func (s *Sheet) Toggle(studentID int64) error {
	cur, ok := s.Buffer[studentID]
	if !ok {
		return ErrUnknownStudent
	}
	return s.Set(studentID, cur.Opposite())
}

func (s *Sheet) Set(studentID int64, status models.AttendanceStatus) error {
	if s.State == Saving {
		return ErrSaveInProgress
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if _, ok := s.Buffer[studentID]; !ok {
		return ErrUnknownStudent
	}
	s.Buffer[studentID] = status
	s.State = Editing
	if !s.Dirty() {
		s.State = Idle
	}
	return nil
}

// SetAll marks every student with the same status.
func (s *Sheet) SetAll(status models.AttendanceStatus) error {
	for _, id := range s.Order {
		if err := s.Set(id, status); err != nil {
			return err
		}
	}
	return nil
}

// Dirty reports whether the buffer differs from what the backend holds.
func (s *Sheet) Dirty() bool {
	for id, st := range s.Buffer {
		if s.Initial[id] != st {
			return true
		}
	}
	return false
}

// Changed counts students whose status differs from the initial one.
func (s *Sheet) Changed() int {
	n := 0
	for id, st := range s.Buffer {
		if s.Initial[id] != st {
			n++
		}
	}
	return n
}

// BeginSave moves to saving and returns the batch with every roster
// student in roster order.
func (s *Sheet) BeginSave() (models.MarkRequest, error) {
	if s.State == Saving {
		return models.MarkRequest{}, ErrSaveInProgress
	}
	if !s.Dirty() {
		return models.MarkRequest{}, ErrNoChanges
	}
	req := models.MarkRequest{
		LessonID:       s.LessonID,
		AttendanceData: make([]models.AttendanceMark, 0, len(s.Order)),
	}
	for _, id := range s.Order {
		req.AttendanceData = append(req.AttendanceData, models.AttendanceMark{StudentID: id, Status: s.Buffer[id]})
	}
	s.State = Saving
	s.Error = ""
	return req, nil
}

// Saved commits the buffer as the new baseline.
func (s *Sheet) Saved() {
	for id, st := range s.Buffer {
		s.Initial[id] = st
	}
	s.State = Idle
	s.Error = ""
}

// Fail keeps the buffer so the user can retry.
func (s *Sheet) Fail(msg string) {
	s.State = Failed
	s.Error = msg
}

// Discard drops unsaved edits.
func (s *Sheet) Discard() {
	for id, st := range s.Initial {
		s.Buffer[id] = st
	}
	s.State = Idle
	s.Error = ""
}

// Encode serializes the sheet for the session draft store.
func (s *Sheet) Encode() (string, error) {
	b, err := sonic.Marshal(s)
	return string(b), err
}

func DecodeSheet(raw string) (*Sheet, error) {
	var s Sheet
	if err := sonic.UnmarshalString(raw, &s); err != nil {
		return nil, errors.Wrap(err, "attendance: decode draft")
	}
	if s.Initial == nil || s.Buffer == nil {
		return nil, errors.New("attendance: empty draft")
	}
	return &s, nil
}

// Rebase applies a stored draft onto a fresh roster: edits for students
// still on the roster survive, the baseline comes from the backend.
func (s *Sheet) Rebase(draft *Sheet) {
	if draft == nil || draft.LessonID != s.LessonID {
		return
	}
	for id, st := range draft.Buffer {
		if _, ok := s.Buffer[id]; ok && st.Valid() {
			s.Buffer[id] = st
		}
	}
	if draft.State == Failed {
		s.State = Failed
		s.Error = draft.Error
	}
	if s.Dirty() && s.State != Failed {
		s.State = Editing
	}
}
