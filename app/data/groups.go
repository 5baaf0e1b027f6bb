package data

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

// Groups lists groups, optionally filtered by status.
func (s *Store) Groups(ctx context.Context, status models.GroupStatus) ([]models.Group, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	return list[models.Group](ctx, s, "/api/groups", q)
}

func (s *Store) TeacherGroups(ctx context.Context, teacherID int64) ([]models.Group, error) {
	return list[models.Group](ctx, s, "/api/groups/teacher/"+strconv.FormatInt(teacherID, 10), nil)
}

// GroupsFor returns the groups a user may mark attendance for: every
// active group for admins, the own groups for teachers.
func (s *Store) GroupsFor(ctx context.Context, u *models.User) ([]models.Group, error) {
	if u.Role == models.RoleTeacher {
		return s.TeacherGroups(ctx, u.ID)
	}
	return s.Groups(ctx, models.GroupActive)
}

// Group finds one group among those visible to u.
func (s *Store) Group(ctx context.Context, u *models.User, id int64) (*models.Group, error) {
	groups, err := s.GroupsFor(ctx, u)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i], nil
		}
	}
	return nil, ErrNotFound
}
