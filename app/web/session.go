package web

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"
)

const flashKey = "flash"

// Flash is one toast shown on the next rendered page.
type Flash struct {
	Kind string `json:"kind"` // success | error | info
	Text string `json:"text"`
}

// Sessions keeps per-browser state between requests: toasts and edit
// drafts. Values are stored as JSON strings.
type Sessions struct {
	store *session.Store
}

// NewSessions builds the session store. storage may be nil for the
// in-process default.
func NewSessions(storage fiber.Storage, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{store: session.New(session.Config{
		Storage:        storage,
		Expiration:     ttl,
		KeyLookup:      "cookie:newlms_session",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
	})}
}

func (s *Sessions) get(c *fiber.Ctx) (*session.Session, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil, errors.Wrap(err, "web: load session")
	}
	return sess, nil
}

// Flash queues a toast.
func (s *Sessions) Flash(c *fiber.Ctx, kind, text string) {
	sess, err := s.get(c)
	if err != nil {
		return
	}
	var queue []Flash
	if raw, ok := sess.Get(flashKey).(string); ok {
		_ = sonic.UnmarshalString(raw, &queue)
	}
	queue = append(queue, Flash{Kind: kind, Text: text})
	raw, _ := sonic.MarshalString(queue)
	sess.Set(flashKey, raw)
	_ = sess.Save()
}

// TakeFlashes returns and clears the queued toasts.
func (s *Sessions) TakeFlashes(c *fiber.Ctx) []Flash {
	sess, err := s.get(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(flashKey).(string)
	if !ok {
		return nil
	}
	sess.Delete(flashKey)
	_ = sess.Save()

	var queue []Flash
	if err := sonic.UnmarshalString(raw, &queue); err != nil {
		return nil
	}
	return queue
}

func draftKey(name string) string { return "draft:" + name }

// Draft returns a stored draft.
func (s *Sessions) Draft(c *fiber.Ctx, name string) (string, bool) {
	sess, err := s.get(c)
	if err != nil {
		return "", false
	}
	raw, ok := sess.Get(draftKey(name)).(string)
	return raw, ok && raw != ""
}

func (s *Sessions) SetDraft(c *fiber.Ctx, name, raw string) error {
	sess, err := s.get(c)
	if err != nil {
		return err
	}
	sess.Set(draftKey(name), raw)
	return errors.Wrap(sess.Save(), "web: save draft")
}

func (s *Sessions) DropDraft(c *fiber.Ctx, name string) {
	sess, err := s.get(c)
	if err != nil {
		return
	}
	sess.Delete(draftKey(name))
	_ = sess.Save()
}

// Destroy ends the browser session, e.g. on logout.
func (s *Sessions) Destroy(c *fiber.Ctx) {
	if sess, err := s.get(c); err == nil {
		_ = sess.Destroy()
	}
}

// SetDraftJSON stores v as a draft.
func SetDraftJSON(s *Sessions, c *fiber.Ctx, name string, v any) error {
	raw, err := sonic.MarshalString(v)
	if err != nil {
		return errors.Wrap(err, "web: encode draft")
	}
	return s.SetDraft(c, name, raw)
}

// DraftJSON decodes a stored draft into v. A corrupt draft is dropped.
func DraftJSON(s *Sessions, c *fiber.Ctx, name string, v any) bool {
	raw, ok := s.Draft(c, name)
	if !ok {
		return false
	}
	if err := sonic.UnmarshalString(raw, v); err != nil {
		s.DropDraft(c, name)
		return false
	}
	return true
}
