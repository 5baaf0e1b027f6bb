package data

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/models"
)

var paymentPrefixes = []string{"/api/snapshots", "/api/dashboard", "/api/teacher-salary", "/api/attendance/student/"}

func snapshotQuery(f models.SnapshotFilter) url.Values {
	q := monthQuery(f.Month)
	if f.GroupID > 0 {
		q.Set("group_id", id(f.GroupID))
	}
	if f.TeacherID > 0 {
		q.Set("teacher_id", id(f.TeacherID))
	}
	if f.SubjectID > 0 {
		q.Set("subject_id", id(f.SubjectID))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	return q
}

// Snapshots is the payments table. Summary cards come from the backend
// aggregates only.
func (s *Store) Snapshots(ctx context.Context, f models.SnapshotFilter) (models.SnapshotPage, error) {
	if err := s.check(f); err != nil {
		return models.SnapshotPage{}, err
	}
	page, err := object[models.SnapshotPage](ctx, s, "/api/snapshots", snapshotQuery(f))
	if err != nil {
		return page, err
	}
	if page.Rows == nil {
		page.Rows = []models.PaymentSnapshot{}
	}
	return page, nil
}

type monthBody struct {
	Month string `json:"month" validate:"required,datetime=2006-01"`
}

// GenerateSnapshots creates the month's snapshots for every student.
func (s *Store) GenerateSnapshots(ctx context.Context, m string) error {
	body := monthBody{Month: m}
	if err := s.check(body); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/snapshots/create", body, nil, paymentPrefixes...)
}

// SnapshotsForNew adds snapshots for students who joined after generation.
func (s *Store) SnapshotsForNew(ctx context.Context, m string) error {
	body := monthBody{Month: m}
	if err := s.check(body); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/snapshots/create-for-new", body, nil, paymentPrefixes...)
}

func (s *Store) MakePayment(ctx context.Context, in models.PaymentInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/snapshots/make-payment", in, nil, paymentPrefixes...)
}

func (s *Store) Discount(ctx context.Context, in models.DiscountInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	if in.DiscountType == models.DiscountPercent && in.DiscountValue > 100 {
		return &InvalidError{Fields: map[string]string{"discount_value": "lte"}}
	}
	return s.mutate(ctx, http.MethodPost, "/api/snapshots/discount", in, nil, paymentPrefixes...)
}

func (s *Store) ResetPayment(ctx context.Context, in models.ResetPaymentInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/snapshots/reset-payment", in, nil, paymentPrefixes...)
}

func (s *Store) ExportSnapshots(ctx context.Context, f models.SnapshotFilter) (*client.Blob, error) {
	if err := s.check(f); err != nil {
		return nil, err
	}
	b, err := s.api.GetBlob(ctx, "/api/snapshots/export", snapshotQuery(f))
	if err != nil {
		return nil, err
	}
	b.Filename = "tolovlar_" + f.Month + ".xlsx"
	b.ContentType = client.ExcelContentType
	return b, nil
}
