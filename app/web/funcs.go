package web

import (
	"bytes"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Rahmadjon0038/new-lms/app/month"
)

// raw HTML in markdown is escaped since WithUnsafe is not set
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var printer = message.NewPrinter(language.English)

// Number groups thousands with spaces: 1250000 -> "1 250 000".
func Number(v float64) string {
	return strings.ReplaceAll(printer.Sprintf("%d", int64(math.Round(v))), ",", " ")
}

// Money formats an amount in so'm.
func Money(v float64) string {
	return Number(v) + " so'm"
}

// Date renders a backend date or timestamp as dd.mm.yyyy.
func Date(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return s
}

func Markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// Funcs is registered on the template engine in main.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"json": func(v any) (string, error) {
			return sonic.MarshalString(v)
		},
		"money":  Money,
		"number": Number,
		"date":   Date,
		"monthLabel": func(s string) string {
			m, err := month.Parse(s)
			if err != nil {
				return s
			}
			return m.Label()
		},
		"pct": func(v float64) string {
			return strings.TrimSuffix(strings.TrimSuffix(printer.Sprintf("%.1f", v), "0"), ".") + "%"
		},
		"markdown": Markdown,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"eqs": func(a any, b string) bool {
			return strings.EqualFold(strings.TrimSpace(toString(a)), b)
		},
		"dict": dict,
	}
}

// dict builds the argument map of a nested template call.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	out := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, errors.Errorf("dict: key %v is not a string", kv[i])
		}
		out[k] = kv[i+1]
	}
	return out, nil
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case interface{ String() string }:
		return s.String()
	}
	b, _ := sonic.MarshalString(v)
	return strings.Trim(b, `"`)
}
