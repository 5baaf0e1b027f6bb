package attendance

import (
	"github.com/pkg/errors"

	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/month"
)

// Scope selects which months a monthly status change applies to.
type Scope string

const (
	ScopeCurrent  Scope = "current"
	ScopeFromNext Scope = "from_next"
	ScopeMultiple Scope = "multiple"
)

var (
	ErrUnknownScope   = errors.New("attendance: unknown scope")
	ErrNoMonths       = errors.New("attendance: select at least one month")
	ErrInvalidMonthly = errors.New("attendance: monthly status must be active or stopped")
)

// StatusChange is the submitted monthly status form.
type StatusChange struct {
	StudentID int64
	GroupID   int64
	Status    models.MonthlyStatus
	Scope     Scope
	Current   string
	Months    []string
}

// Request builds the payload. current sends {month}, from_next sends
// {from_month} = the calendar month after Current, multiple sends {months}
// with the checked months in the order given.
func (sc StatusChange) Request() (models.MonthlyStatusRequest, error) {
	if sc.Status != models.MonthlyActive && sc.Status != models.MonthlyStopped {
		return models.MonthlyStatusRequest{}, ErrInvalidMonthly
	}
	req := models.MonthlyStatusRequest{
		StudentID:     sc.StudentID,
		GroupID:       sc.GroupID,
		MonthlyStatus: sc.Status,
	}

	switch sc.Scope {
	case ScopeCurrent:
		m, err := month.Parse(sc.Current)
		if err != nil {
			return models.MonthlyStatusRequest{}, err
		}
		req.Month = m.String()
	case ScopeFromNext:
		next, err := month.NextOf(sc.Current)
		if err != nil {
			return models.MonthlyStatusRequest{}, err
		}
		req.FromMonth = next
	case ScopeMultiple:
		seen := make(map[string]bool, len(sc.Months))
		for _, raw := range sc.Months {
			m, err := month.Parse(raw)
			if err != nil {
				return models.MonthlyStatusRequest{}, err
			}
			if seen[m.String()] {
				continue
			}
			seen[m.String()] = true
			req.Months = append(req.Months, m.String())
		}
		if len(req.Months) == 0 {
			return models.MonthlyStatusRequest{}, ErrNoMonths
		}
	default:
		return models.MonthlyStatusRequest{}, ErrUnknownScope
	}
	return req, nil
}
