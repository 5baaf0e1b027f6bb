package data

import (
	"context"
	"net/http"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

func (s *Store) Subjects(ctx context.Context) ([]models.Subject, error) {
	return list[models.Subject](ctx, s, "/api/subjects", nil)
}

// ActiveSubjects is the option list of subject selects.
func (s *Store) ActiveSubjects(ctx context.Context) ([]models.Subject, error) {
	all, err := s.Subjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Subject, 0, len(all))
	for _, sub := range all {
		if sub.Active() {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *Store) CreateSubject(ctx context.Context, in models.SubjectInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPost, "/api/subjects", in, nil, "/api/subjects")
}

func (s *Store) UpdateSubject(ctx context.Context, subjectID int64, in models.SubjectInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	return s.mutate(ctx, http.MethodPut, "/api/subjects/"+id(subjectID), in, nil, "/api/subjects", "/api/groups")
}

func (s *Store) DeleteSubject(ctx context.Context, subjectID int64) error {
	return s.mutate(ctx, http.MethodDelete, "/api/subjects/"+id(subjectID), nil, nil, "/api/subjects", "/api/groups")
}
