package models

// TeacherSalary is one teacher's salary row for a month.
type TeacherSalary struct {
	TeacherID      int64     `json:"teacher_id"`
	TeacherName    string    `json:"teacher_name"`
	Month          string    `json:"month"`
	PaidCount      int       `json:"paid_students"`
	PartialCount   int       `json:"partial_students"`
	UnpaidCount    int       `json:"unpaid_students"`
	Revenue        float64   `json:"revenue"`
	Percentage     float64   `json:"percentage"`
	ExpectedSalary float64   `json:"expected_salary"`
	AdvancesTotal  float64   `json:"advances_total"`
	Advances       []Advance `json:"advances"`
	FinalSalary    float64   `json:"final_salary"`
	Closed         bool      `json:"is_closed"`
}

// Advance is an ad-hoc pre-payment against a month's salary.
type Advance struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
	CreatedAt string  `json:"created_at"`
}

type PercentageInput struct {
	TeacherID  int64   `json:"teacher_id" validate:"required"`
	Percentage float64 `json:"percentage" form:"percentage" validate:"gte=0,lte=100"`
}

type AdvanceInput struct {
	TeacherID int64   `json:"teacher_id" validate:"required"`
	Month     string  `json:"month" validate:"required,datetime=2006-01"`
	Amount    float64 `json:"amount" form:"amount" validate:"gt=0"`
	Note      string  `json:"note,omitempty" form:"note" validate:"max=500"`
}

type CloseMonthInput struct {
	TeacherID int64  `json:"teacher_id" validate:"required"`
	Month     string `json:"month" validate:"required,datetime=2006-01"`
}
