package models

// DashboardStats are card values keyed by card id, as the backend
// pre-aggregates them.
type DashboardStats struct {
	Month    string             `json:"month,omitempty"`
	Cards    map[string]float64 `json:"cards"`
	Subjects []SubjectBreakdown `json:"subjects,omitempty"`
}

type SubjectBreakdown struct {
	SubjectName  string  `json:"subject_name"`
	GroupCount   int     `json:"group_count"`
	StudentCount int     `json:"student_count"`
	Revenue      float64 `json:"revenue"`
	Debt         float64 `json:"debt"`
}

// TeacherGroupStats is one row of the teacher dashboard.
type TeacherGroupStats struct {
	GroupID        int64   `json:"group_id"`
	GroupName      string  `json:"group_name"`
	SubjectName    string  `json:"subject_name"`
	StudentCount   int     `json:"student_count"`
	LessonCount    int     `json:"lesson_count"`
	AttendanceRate float64 `json:"attendance_rate"`
	PaidCount      int     `json:"paid_count"`
	UnpaidCount    int     `json:"unpaid_count"`
}
