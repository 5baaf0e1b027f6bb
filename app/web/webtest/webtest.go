// Package webtest wires route groups against a fake backend and a view
// engine that records what was rendered.
package webtest

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/blobs"
	"github.com/Rahmadjon0038/new-lms/app/cache"
	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/config"
	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/models"
	"github.com/Rahmadjon0038/new-lms/app/prefs"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

// Views records the last render instead of executing templates.
type Views struct {
	mu      sync.Mutex
	Name    string
	Binding fiber.Map
}

func (v *Views) Load() error { return nil }

func (v *Views) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Name = name
	v.Binding, _ = binding.(fiber.Map)
	_, err := fmt.Fprintf(w, "view:%s", name)
	return err
}

func (v *Views) Last() (string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Name, v.Binding
}

// Call is one request the fake backend received.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// Backend is a scripted REST backend keyed by "METHOD /path".
type Backend struct {
	mu     sync.Mutex
	Calls  []Call
	Routes map[string]http.HandlerFunc
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.Calls = append(b.Calls, Call{r.Method, r.URL.Path, r.URL.RawQuery, string(body)})
	h, ok := b.Routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"topilmadi"}`))
		return
	}
	h(w, r)
}

func (b *Backend) Count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.Calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) Last(method, path string) Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.Calls) - 1; i >= 0; i-- {
		if b.Calls[i].Method == method && b.Calls[i].Path == path {
			return b.Calls[i]
		}
	}
	return Call{}
}

// JSON replies with status and a literal body.
func JSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// Env is an app wired like main with fakes underneath.
type Env struct {
	App     *fiber.App
	Deps    *web.Deps
	Views   *Views
	Backend *Backend
	cookies map[string]string
}

// New builds an app; setup registers the route groups under test.
func New(t *testing.T, routes map[string]http.HandlerFunc, setup func(*fiber.App, *web.Deps)) *Env {
	t.Helper()
	if routes == nil {
		routes = map[string]http.HandlerFunc{}
	}
	b := &Backend{Routes: routes}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	cfg := &config.Config{BackendURL: srv.URL, Timezone: "Asia/Tashkent", BlobTTL: time.Minute, DraftTTL: time.Hour}
	api := client.New(client.Options{BaseURL: srv.URL})
	c := cache.New(cache.NewMemory(), time.Minute, nil)
	d := &web.Deps{
		Config:   cfg,
		Data:     data.New(api, c, nil),
		Cache:    c,
		Prefs:    prefs.NewStore(prefs.NewMemory(), nil),
		Blobs:    blobs.NewRegistry(cfg.BlobTTL),
		Sessions: web.NewSessions(nil, cfg.DraftTTL, false),
		Log:      zap.NewNop(),
	}

	views := &Views{}
	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: web.ErrorHandler(d.Log),
	})
	setup(app, d)
	return &Env{App: app, Deps: d, Views: views, Backend: b, cookies: map[string]string{}}
}

// Token signs a throwaway token; the app never verifies signatures.
func Token(id int64, role models.Role) string {
	return Sign(id, role, "test")
}

// Sign signs a token for id with key. Two keys give two tokens with the
// same claims.
func Sign(id int64, role models.Role, key string) string {
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   id,
		"name": "Test",
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(key))
	return tok
}

// Login sets the access token cookie for later requests.
func (e *Env) Login(id int64, role models.Role) {
	e.UseToken(Token(id, role))
}

// UseToken sends tok as the access token cookie from now on.
func (e *Env) UseToken(tok string) {
	e.cookies[web.TokenCookie] = tok
}

// Scope is the cache and blob scope of the current token.
func (e *Env) Scope() string {
	return web.TokenScope(e.cookies[web.TokenCookie])
}

// OnlyToken answers with next when the request carries tok and with 401
// otherwise, the way the backend treats a token it did not issue.
func OnlyToken(tok string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+tok {
			JSON(http.StatusUnauthorized, `{"message":"Token yaroqsiz"}`)(w, r)
			return
		}
		next(w, r)
	}
}

// Do sends a request with the env's cookies and keeps any it gets back.
func (e *Env) Do(t *testing.T, method, target string, form map[string]string) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		vals := make([]string, 0, len(form))
		for k, v := range form {
			vals = append(vals, url.QueryEscape(k)+"="+url.QueryEscape(v))
		}
		body = strings.NewReader(strings.Join(vals, "&"))
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return e.send(t, req)
}

// Upload posts a multipart form with one file.
func (e *Env) Upload(t *testing.T, target string, fields map[string]string, field, filename, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("multipart: %v", err)
	}
	_, _ = io.WriteString(fw, content)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return e.send(t, req)
}

func (e *Env) send(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	for k, v := range e.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := e.App.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", req.Method, req.URL, err)
	}
	for _, ck := range resp.Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(e.cookies, ck.Name)
			continue
		}
		e.cookies[ck.Name] = ck.Value
	}
	return resp
}

// Flashes returns the toasts queued for the next page, consuming them.
func (e *Env) Flashes(t *testing.T) []web.Flash {
	t.Helper()
	var got []web.Flash
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = e.Deps.Sessions.TakeFlashes(c)
		return nil
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range e.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	if _, err := app.Test(req, -1); err != nil {
		t.Fatalf("read flashes: %v", err)
	}
	return got
}
