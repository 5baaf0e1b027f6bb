// Package data is the typed access layer over the REST backend: cached
// queries and mutations that invalidate what they change.
package data

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/cache"
	"github.com/Rahmadjon0038/new-lms/app/client"
)

type Store struct {
	api      *client.Client
	cache    *cache.Cache
	validate *validator.Validate
	log      *zap.Logger
}

func New(api *client.Client, c *cache.Cache, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Store{api: api, cache: c, validate: v, log: log}
}

// API exposes the client for binary downloads the pages stream directly.
func (s *Store) API() *client.Client { return s.api }

// InvalidError is a form that failed the local guards. Nothing was sent.
type InvalidError struct {
	Fields map[string]string
}

func (e *InvalidError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "Ma'lumotlar noto'g'ri: " + strings.Join(names, ", ")
}

func (s *Store) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &InvalidError{Fields: fields}
}

func invalid(fields ...string) error {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f] = "required"
	}
	return &InvalidError{Fields: m}
}

// mutate sends one write and, on success, drops the caller's cached queries
// under the given endpoint prefixes.
func (s *Store) mutate(ctx context.Context, method, path string, body, out any, prefixes ...string) error {
	if err := s.api.Do(ctx, method, path, nil, body, out); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, prefixes...)
	return nil
}

func list[T any](ctx context.Context, s *Store, path string, q url.Values) ([]T, error) {
	return cache.Query(ctx, s.cache, path, q, func(ctx context.Context) ([]T, error) {
		var raw json.RawMessage
		if err := s.api.Get(ctx, path, q, &raw); err != nil {
			return nil, err
		}
		return unwrapList[T](raw)
	})
}

func object[T any](ctx context.Context, s *Store, path string, q url.Values) (T, error) {
	return cache.Query(ctx, s.cache, path, q, func(ctx context.Context) (T, error) {
		var raw json.RawMessage
		if err := s.api.Get(ctx, path, q, &raw); err != nil {
			var zero T
			return zero, err
		}
		return unwrapObject[T](raw)
	})
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

var null = []byte("null")

// unwrapList accepts a bare array or {"data": [...]}.
func unwrapList[T any](raw []byte) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var env envelope
		if err := sonic.Unmarshal(raw, &env); err != nil {
			return nil, &client.ShapeError{Err: err}
		}
		raw = bytes.TrimSpace(env.Data)
	}
	out := []T{}
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return out, nil
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, &client.ShapeError{Err: err}
	}
	return out, nil
}

// unwrapObject accepts a bare object or {"data": {...}}.
func unwrapObject[T any](raw []byte) (T, error) {
	var out T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return out, &client.ShapeError{Err: errEmptyBody}
	}
	if raw[0] == '{' {
		var env envelope
		if sonic.Unmarshal(raw, &env) == nil {
			if d := bytes.TrimSpace(env.Data); len(d) > 0 && d[0] == '{' {
				raw = d
			}
		}
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return out, &client.ShapeError{Err: err}
	}
	return out, nil
}
