package models

// Lesson is one taught session of a group.
type Lesson struct {
	ID           int64  `json:"id"`
	GroupID      int64  `json:"group_id"`
	Date         string `json:"date"`
	PresentCount int    `json:"present_count"`
	AbsentCount  int    `json:"absent_count"`
	TotalCount   int    `json:"total_count"`
}

// RosterEntry is a student on the marking screen with the status currently
// stored by the backend. Status is empty when the lesson is not marked yet.
type RosterEntry struct {
	StudentID int64            `json:"student_id"`
	Name      string           `json:"name"`
	Surname   string           `json:"surname"`
	Phone     string           `json:"phone"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceMark is one row of a batch save.
type AttendanceMark struct {
	StudentID int64            `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
}

// MarkRequest is posted to /api/attendance/mark.
type MarkRequest struct {
	LessonID       int64            `json:"lesson_id"`
	AttendanceData []AttendanceMark `json:"attendance_data"`
}

// CreateLessonRequest is posted to /api/attendance/lessons/create.
type CreateLessonRequest struct {
	GroupID int64  `json:"group_id" validate:"required"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
}

// MonthlyGrid is the students × lesson dates matrix of one group-month.
type MonthlyGrid struct {
	Group   Group        `json:"group"`
	Month   string       `json:"month"`
	Lessons []Lesson     `json:"lessons"`
	Rows    []MonthlyRow `json:"students"`
}

type MonthlyRow struct {
	StudentID     int64                `json:"student_id"`
	Name          string               `json:"name"`
	Surname       string               `json:"surname"`
	MonthlyStatus MonthlyStatus        `json:"monthly_status"`
	Cells         map[int64]CellStatus `json:"attendance"`
}

// Cell returns the status for a lesson, "not yet" when the backend sent none.
func (r MonthlyRow) Cell(lessonID int64) CellStatus {
	if s, ok := r.Cells[lessonID]; ok && s != "" {
		return s
	}
	return CellNotYet
}

// MonthlyStatusRequest is sent to /api/attendance/student/monthly-status.
// Exactly one of Month, Months and FromMonth is set.
type MonthlyStatusRequest struct {
	StudentID     int64         `json:"student_id"`
	GroupID       int64         `json:"group_id"`
	MonthlyStatus MonthlyStatus `json:"monthly_status"`
	Month         string        `json:"month,omitempty"`
	Months        []string      `json:"months,omitempty"`
	FromMonth     string        `json:"from_month,omitempty"`
}

// StudentMonthlyAttendance is the detail view opened from the payments table.
type StudentMonthlyAttendance struct {
	Student      Student          `json:"student"`
	Month        string           `json:"month"`
	Records      []LessonAttended `json:"records"`
	PresentCount int              `json:"present_count"`
	AbsentCount  int              `json:"absent_count"`
}

type LessonAttended struct {
	LessonID int64            `json:"lesson_id"`
	Date     string           `json:"date"`
	Status   AttendanceStatus `json:"status"`
}
