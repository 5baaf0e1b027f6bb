// Command add_teacher creates a teacher account through the backend API,
// signing in with an admin account first.
//
//	go run ./app/cmd/add_teacher -admin admin -password secret \
//		-name Ali -surname Valiyev -phone "+998901234567" -username ali -teacher-password 123456
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/cache"
	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/config"
	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

func main() {
	admin := flag.String("admin", "", "admin username")
	adminPass := flag.String("password", "", "admin password")
	in := models.TeacherInput{}
	flag.StringVar(&in.Name, "name", "", "teacher first name")
	flag.StringVar(&in.Surname, "surname", "", "teacher last name")
	flag.StringVar(&in.Phone, "phone", "", "teacher phone")
	flag.StringVar(&in.Username, "username", "", "teacher login")
	flag.StringVar(&in.Password, "teacher-password", "", "teacher password")
	flag.Int64Var(&in.SubjectID, "subject", 0, "subject id")
	flag.Parse()

	if err := run(*admin, *adminPass, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating teacher: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Teacher created successfully: %s %s (%s)\n", in.Name, in.Surname, in.Username)
}

func run(admin, password string, in models.TeacherInput) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := zap.NewNop()
	api := client.New(client.Options{BaseURL: cfg.BackendURL, Timeout: 15 * time.Second, Logger: log})
	store := data.New(api, cache.New(cache.NewMemory(), 0, log), log)

	ctx := context.Background()
	res, err := store.Login(ctx, models.LoginRequest{Username: admin, Password: password})
	if err != nil {
		return err
	}
	if role := loginRole(res); role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return errors.Errorf("%s is not an admin", admin)
	}
	if in.Password == "" {
		return errors.New("teacher password is required")
	}

	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	return store.CreateTeacher(client.WithToken(ctx, res.AccessToken), in)
}

// loginRole reads the role from the login response, or from the token's
// claims when the response carries no user.
func loginRole(res *models.LoginResult) models.Role {
	if res.User.Role != "" {
		return res.User.Role
	}
	if u, err := web.ParseToken(res.AccessToken); err == nil {
		return u.Role
	}
	return ""
}
