package models

// PaymentSnapshot is the per student per month payment record.
type PaymentSnapshot struct {
	ID                  int64         `json:"id"`
	StudentID           int64         `json:"student_id"`
	Name                string        `json:"name"`
	Surname             string        `json:"surname"`
	Phone               string        `json:"phone"`
	GroupID             int64         `json:"group_id"`
	GroupName           string        `json:"group_name"`
	TeacherName         string        `json:"teacher_name"`
	SubjectName         string        `json:"subject_name"`
	Month               string        `json:"month"`
	RequiredAmount      float64       `json:"required_amount"`
	PaidAmount          float64       `json:"paid_amount"`
	DiscountAmount      float64       `json:"discount_amount"`
	DiscountDescription string        `json:"discount_description"`
	Debt                float64       `json:"debt"`
	Status              PaymentStatus `json:"status"`
	ProcessedBy         string        `json:"processed_by"`
	LastPaymentDate     string        `json:"last_payment_date"`
	MonthlyStatus       MonthlyStatus `json:"monthly_status"`
}

func (p PaymentSnapshot) FullName() string {
	return p.Name + " " + p.Surname
}

// SnapshotSummary holds the aggregates the backend computes for a month.
type SnapshotSummary struct {
	TotalRequired float64 `json:"total_required"`
	TotalPaid     float64 `json:"total_paid"`
	TotalDebt     float64 `json:"total_debt"`
	TotalDiscount float64 `json:"total_discount"`
	PaidCount     int     `json:"paid_count"`
	PartialCount  int     `json:"partial_count"`
	UnpaidCount   int     `json:"unpaid_count"`
	StudentCount  int     `json:"student_count"`
}

// SnapshotPage is the decoded /api/snapshots response.
type SnapshotPage struct {
	Rows    []PaymentSnapshot `json:"data"`
	Summary SnapshotSummary   `json:"summary"`
}

// SnapshotFilter are the query parameters of the payments table.
type SnapshotFilter struct {
	Month     string        `query:"month" validate:"required,datetime=2006-01"`
	GroupID   int64         `query:"group_id"`
	TeacherID int64         `query:"teacher_id"`
	SubjectID int64         `query:"subject_id"`
	Status    PaymentStatus `query:"status" validate:"omitempty,oneof=paid partial unpaid"`
}

// PaymentInput is posted to /api/snapshots/make-payment.
type PaymentInput struct {
	StudentID     int64         `json:"student_id" validate:"required"`
	GroupID       int64         `json:"group_id" validate:"required"`
	Month         string        `json:"month" validate:"required,datetime=2006-01"`
	Amount        float64       `json:"amount" form:"amount" validate:"gt=0"`
	PaymentMethod PaymentMethod `json:"payment_method" form:"payment_method" validate:"required,oneof=cash card transfer"`
	Description   string        `json:"description,omitempty" form:"description" validate:"max=500"`
}

// DiscountInput is posted to /api/snapshots/discount.
type DiscountInput struct {
	StudentID     int64        `json:"student_id" validate:"required"`
	GroupID       int64        `json:"group_id" validate:"required"`
	DiscountType  DiscountType `json:"discount_type" form:"discount_type" validate:"required,oneof=percent amount"`
	DiscountValue float64      `json:"discount_value" form:"discount_value" validate:"gt=0"`
	Month         string       `json:"month,omitempty" form:"month" validate:"omitempty,datetime=2006-01"`
	Description   string       `json:"description,omitempty" form:"description" validate:"max=500"`
}

// ResetPaymentInput is posted to /api/snapshots/reset-payment.
type ResetPaymentInput struct {
	StudentID int64  `json:"student_id" validate:"required"`
	GroupID   int64  `json:"group_id" validate:"required"`
	Month     string `json:"month" validate:"required,datetime=2006-01"`
}
