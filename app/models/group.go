package models

// Group is a class of students studying one subject with one teacher.
type Group struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	SubjectID    int64       `json:"subject_id"`
	SubjectName  string      `json:"subject_name"`
	TeacherID    int64       `json:"teacher_id"`
	TeacherName  string      `json:"teacher_name"`
	ScheduleDays []string    `json:"schedule_days"`
	ScheduleTime string      `json:"schedule_time"`
	RoomNumber   string      `json:"room_number"`
	Status       GroupStatus `json:"status"`
	StudentCount int         `json:"student_count"`
	Price        float64     `json:"price"`
}

// Student is a group member as listed by attendance and payment screens.
type Student struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Surname       string        `json:"surname"`
	Phone         string        `json:"phone"`
	Phone2        string        `json:"phone2,omitempty"`
	FatherName    string        `json:"father_name,omitempty"`
	FatherPhone   string        `json:"father_phone,omitempty"`
	GroupID       int64         `json:"group_id"`
	GroupName     string        `json:"group_name"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	MonthlyStatus MonthlyStatus `json:"monthly_status"`
}

func (s Student) FullName() string {
	return s.Name + " " + s.Surname
}
