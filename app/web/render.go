package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/month"
)

const (
	AppName        = "New LMS"
	GenericError   = "Xatolik yuz berdi"
	fragmentPrefix = "/x/"
	FlashSuccess   = "success"
	FlashError     = "error"
	FlashInfo      = "info"
)

// Render renders a page inside the main layout with the values every page
// needs: title, current nav entry, user, nav and pending toasts.
func (d *Deps) Render(c *fiber.Ctx, view, title, current string, m fiber.Map) error {
	if m == nil {
		m = fiber.Map{}
	}
	u := User(c)
	m["Title"] = title + " - " + AppName
	m["CurrentPage"] = current
	m["user"] = u
	if u != nil {
		m["Nav"] = NavFor(u.Role)
	}
	m["Flashes"] = d.Sessions.TakeFlashes(c)
	return c.Render(view, m)
}

// QueryError is how a page shows a failed load: an inline panel, with the
// rest of the shell still rendered.
func QueryError(err error) string {
	if err == nil {
		return ""
	}
	return data.UserMessage(err, GenericError)
}

// Fail flashes the error of a mutation and sends the user back.
func (d *Deps) Fail(c *fiber.Ctx, err error, back string) error {
	d.Log.Info("mutation failed", zap.String("path", c.Path()), zap.Error(err))
	d.Sessions.Flash(c, FlashError, data.UserMessage(err, GenericError))
	return Back(c, back)
}

// Done flashes a success toast and redirects to to.
func (d *Deps) Done(c *fiber.Ctx, text, to string) error {
	d.Sessions.Flash(c, FlashSuccess, text)
	return c.Redirect(to, fiber.StatusSeeOther)
}

// Back redirects to the Referer when it points into this app.
func Back(c *fiber.Ctx, fallback string) error {
	return c.Redirect(BackURL(c, fallback), fiber.StatusSeeOther)
}

// BackURL is the local path and query of the Referer, or fallback.
func BackURL(c *fiber.Ctx, fallback string) string {
	ref := c.Get(fiber.HeaderReferer)
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Hostname()) || u.Path == "" {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// ParamID reads a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "noto'g'ri identifikator")
	}
	return id, nil
}

// FormID reads an optional numeric form or query value, 0 when absent.
func FormID(c *fiber.Ctx, name string) int64 {
	v := c.FormValue(name)
	if v == "" {
		v = c.Query(name)
	}
	id, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	return id
}

// FormFloat reads a decimal form value, accepting spaces and a comma as
// the decimal mark.
func FormFloat(c *fiber.Ctx, name string) float64 {
	v := strings.ReplaceAll(strings.TrimSpace(c.FormValue(name)), " ", "")
	v = strings.ReplaceAll(v, ",", ".")
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// Month reads ?month=, falling back to the current month.
func (d *Deps) Month(c *fiber.Ctx) month.Month {
	v := c.Query("month")
	if v == "" {
		v = c.FormValue("month")
	}
	return month.ParseOr(v, d.ThisMonth())
}

// SendBlob streams a download as an attachment.
func SendBlob(c *fiber.Ctx, b *client.Blob) error {
	c.Set(fiber.HeaderContentType, b.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, b.Filename))
	return c.Send(b.Data)
}

// SendInline serves a blob for an embedded viewer.
func SendInline(c *fiber.Ctx, b *client.Blob) error {
	c.Set(fiber.HeaderContentType, b.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, b.Filename))
	c.Set(fiber.HeaderCacheControl, "private, no-store")
	return c.Send(b.Data)
}

func IsFragment(path string) bool {
	return strings.HasPrefix(path, fragmentPrefix)
}

// NavItem is one sidebar link.
type NavItem struct {
	Key   string
	Label string
	Href  string
}

// NavFor returns the sidebar of a role.
func NavFor(role models.Role) []NavItem {
	switch role {
	case models.RoleTeacher:
		return []NavItem{
			{"dashboard", "Bosh sahifa", "/dashboard"},
			{"attendance", "Davomat", "/teacher/attendance"},
			{"payments", "To'lovlar", "/teacher/payments"},
			{"salary", "Maosh", "/teacher/salary"},
			{"guides", "Qo'llanmalar", "/teacher/guides"},
		}
	default:
		return []NavItem{
			{"dashboard", "Bosh sahifa", "/dashboard"},
			{"attendance", "Davomat", "/admin/attendance"},
			{"payments", "To'lovlar", "/payments"},
			{"salary", "O'qituvchi maoshi", "/salary"},
			{"subjects", "Fanlar", "/subjects"},
			{"teachers", "O'qituvchilar", "/teachers"},
			{"expenses", "Xarajatlar", "/expenses"},
			{"guides", "Qo'llanmalar", "/admin/guides"},
		}
	}
}
