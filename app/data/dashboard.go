package data

import (
	"context"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

func (s *Store) SuperAdminMonthly(ctx context.Context, m string) (models.DashboardStats, error) {
	return object[models.DashboardStats](ctx, s, "/api/dashboard/super-admin/monthly", monthQuery(m))
}

func (s *Store) SuperAdminOverall(ctx context.Context) (models.DashboardStats, error) {
	return object[models.DashboardStats](ctx, s, "/api/dashboard/super-admin/overall", nil)
}

func (s *Store) AdminDashboard(ctx context.Context, m string) (models.DashboardStats, error) {
	return object[models.DashboardStats](ctx, s, "/api/dashboard/admin", monthQuery(m))
}

func (s *Store) TeacherDashboard(ctx context.Context, m string) ([]models.TeacherGroupStats, error) {
	return list[models.TeacherGroupStats](ctx, s, "/api/dashboard/teacher/groups", monthQuery(m))
}
