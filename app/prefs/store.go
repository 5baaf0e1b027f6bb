package prefs

import (
	"context"
	"slices"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/reorder"
)

var ErrUnknownCard = errors.New("prefs: unknown card")

// Layout is the order and the hidden set of one board.
type Layout struct {
	Order  []string
	Hidden []string
}

func (l Layout) IsHidden(card string) bool {
	return slices.Contains(l.Hidden, card)
}

// Visible returns the ordered cards that are not hidden.
func (l Layout) Visible() []string {
	out := make([]string, 0, len(l.Order))
	for _, c := range l.Order {
		if !l.IsHidden(c) {
			out = append(out, c)
		}
	}
	return out
}

// Default is the layout used when nothing valid is stored.
func Default(b Board) Layout {
	return Layout{Order: slices.Clone(b.Cards), Hidden: []string{}}
}

type Store struct {
	backend Backend
	log     *zap.Logger
}

func NewStore(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log}
}

// Load reads a user's layout. Stored values are sanitized against the
// board's cards; read failures fall back to the default layout.
func (s *Store) Load(ctx context.Context, user string, b Board) Layout {
	l := Default(b)

	if raw, ok := s.get(ctx, user, b.OrderKey); ok {
		if ids, ok := decode(raw); ok && len(ids) > 0 {
			l.Order = SanitizeOrder(ids, b.Cards)
		}
	}
	if raw, ok := s.get(ctx, user, b.HiddenKey); ok {
		if ids, ok := decode(raw); ok {
			l.Hidden = SanitizeHidden(ids, b.Cards)
		}
	}
	return l
}

func (s *Store) Save(ctx context.Context, user string, b Board, l Layout) error {
	order, err := sonic.MarshalString(SanitizeOrder(l.Order, b.Cards))
	if err != nil {
		return errors.Wrap(err, "prefs: encode order")
	}
	hidden, err := sonic.MarshalString(SanitizeHidden(l.Hidden, b.Cards))
	if err != nil {
		return errors.Wrap(err, "prefs: encode hidden")
	}
	if err := s.backend.Set(ctx, user, b.OrderKey, order); err != nil {
		return err
	}
	return s.backend.Set(ctx, user, b.HiddenKey, hidden)
}

// Move places card at index to and stores the result.
func (s *Store) Move(ctx context.Context, user string, b Board, card string, to int) (Layout, error) {
	if !b.Allowed(card) {
		return Layout{}, ErrUnknownCard
	}
	l := s.Load(ctx, user, b)
	l.Order = reorder.Move(l.Order, slices.Index(l.Order, card), to)
	return l, s.Save(ctx, user, b, l)
}

// Shift moves card by delta positions.
func (s *Store) Shift(ctx context.Context, user string, b Board, card string, delta int) (Layout, error) {
	if !b.Allowed(card) {
		return Layout{}, ErrUnknownCard
	}
	l := s.Load(ctx, user, b)
	i := slices.Index(l.Order, card)
	l.Order = reorder.Move(l.Order, i, i+delta)
	return l, s.Save(ctx, user, b, l)
}

// Toggle hides a visible card or shows a hidden one.
func (s *Store) Toggle(ctx context.Context, user string, b Board, card string) (Layout, error) {
	if !b.Allowed(card) {
		return Layout{}, ErrUnknownCard
	}
	l := s.Load(ctx, user, b)
	if i := slices.Index(l.Hidden, card); i >= 0 {
		l.Hidden = slices.Delete(l.Hidden, i, i+1)
	} else {
		l.Hidden = append(l.Hidden, card)
	}
	return l, s.Save(ctx, user, b, l)
}

func (s *Store) Reset(ctx context.Context, user string, b Board) error {
	return s.backend.Delete(ctx, user, b.OrderKey, b.HiddenKey)
}

func (s *Store) get(ctx context.Context, user, key string) (string, bool) {
	raw, ok, err := s.backend.Get(ctx, user, key)
	if err != nil {
		s.log.Warn("prefs read failed, using defaults", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, ok
}

func decode(raw string) ([]string, bool) {
	var ids []string
	if err := sonic.UnmarshalString(raw, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// SanitizeOrder drops unknown and duplicate ids and appends the allowed
// ids that are missing, in default order.
func SanitizeOrder(ids, allowed []string) []string {
	out := SanitizeHidden(ids, allowed)
	for _, c := range allowed {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// SanitizeHidden drops unknown and duplicate ids.
func SanitizeHidden(ids, allowed []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(allowed, id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
