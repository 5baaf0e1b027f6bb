package models

// Role defines who is signed in; it selects the navigation and route group.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleTeacher    Role = "teacher"
)

// AttendanceStatus defines the values the backend accepts for a lesson mark.
type AttendanceStatus string

const (
	Present AttendanceStatus = "keldi"
	Absent  AttendanceStatus = "kelmadi"
)

func (s AttendanceStatus) Valid() bool {
	return s == Present || s == Absent
}

// Opposite flips present and absent.
func (s AttendanceStatus) Opposite() AttendanceStatus {
	if s == Present {
		return Absent
	}
	return Present
}

// CellStatus is what the monthly grid shows in one student/lesson cell.
type CellStatus string

const (
	CellPresent   CellStatus = "keldi"
	CellAbsent    CellStatus = "kelmadi"
	CellGraduated CellStatus = "graduated"
	CellNotYet    CellStatus = "not_yet"
)

// PaymentStatus is the monthly payment state of a student.
type PaymentStatus string

const (
	Paid    PaymentStatus = "paid"
	Partial PaymentStatus = "partial"
	Unpaid  PaymentStatus = "unpaid"
)

// MonthlyStatus is the monthly activity state of a student in a group.
type MonthlyStatus string

const (
	MonthlyActive   MonthlyStatus = "active"
	MonthlyStopped  MonthlyStatus = "stopped"
	MonthlyFinished MonthlyStatus = "finished"
)

// GroupStatus defines whether a group accepts lessons.
type GroupStatus string

const (
	GroupActive  GroupStatus = "active"
	GroupBlocked GroupStatus = "blocked"
)

// DiscountType selects how a discount value is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// PaymentMethod defines how a student paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)
