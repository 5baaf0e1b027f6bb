package models

type Subject struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (s Subject) Active() bool {
	return s.Status == "" || s.Status == "active"
}

// SubjectInput is the create/update form.
type SubjectInput struct {
	Name   string `json:"name" form:"name" validate:"required,max=100"`
	Status string `json:"status,omitempty" form:"status" validate:"omitempty,oneof=active inactive"`
}

// Teacher is an account with the teacher role.
type Teacher struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Surname          string   `json:"surname"`
	Phone            string   `json:"phone"`
	Username         string   `json:"username,omitempty"`
	Subjects         []string `json:"subjects"`
	SalaryPercentage float64  `json:"salary_percentage"`
	Status           string   `json:"status"`
}

func (t Teacher) FullName() string {
	return t.Name + " " + t.Surname
}

func (t Teacher) Active() bool {
	return t.Status == "" || t.Status == "active"
}

// TeacherInput is the create/update form. Password is only sent on create.
type TeacherInput struct {
	Name      string `json:"name" form:"name" validate:"required"`
	Surname   string `json:"surname" form:"surname" validate:"required"`
	Phone     string `json:"phone" form:"phone" validate:"required"`
	Username  string `json:"username" form:"username" validate:"required"`
	Password  string `json:"password,omitempty" form:"password" validate:"omitempty,min=6"`
	SubjectID int64  `json:"subject_id,omitempty" form:"subject_id"`
	Status    string `json:"status,omitempty" form:"status" validate:"omitempty,oneof=active inactive"`
}
