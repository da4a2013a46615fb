package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

const (
	French        = "fr"
	Arabic        = "ar"
	DefaultLocale = French
)

var ErrUnsupportedLocale = errors.New("unsupported locale")

// Params fills %{name} placeholders
type Params map[string]any

var placeholder = regexp.MustCompile(`%\{(\w+)\}`)

// Bundle holds one nested translation table per language
type Bundle struct {
	tables   map[string]map[string]any
	fallback string
}

// Load reads every <lang>.yaml file at the root of fsys
func Load(fsys fs.FS, fallback string) (*Bundle, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	b := &Bundle{tables: map[string]map[string]any{}, fallback: fallback}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		table := map[string]any{}
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		b.tables[strings.TrimSuffix(path.Base(name), ".yaml")] = table
	}
	if _, ok := b.tables[fallback]; !ok {
		return nil, fmt.Errorf("%w: no table for fallback %q", ErrUnsupportedLocale, fallback)
	}
	return b, nil
}

var std = mustLoadEmbedded()

func mustLoadEmbedded() *Bundle {
	sub, err := fs.Sub(locales, "locales")
	if err != nil {
		panic(err)
	}
	b, err := Load(sub, DefaultLocale)
	if err != nil {
		panic(err)
	}
	return b
}

// Default returns the bundle built from the shipped fr and ar tables
func Default() *Bundle { return std }

// Normalize keeps the lowercased language part: "fr-MA" and "FR_ma" become "fr"
func Normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i >= 0 {
		locale = locale[:i]
	}
	return locale
}

// IsRTL is true exactly for Arabic
func IsRTL(locale string) bool {
	return Normalize(locale) == Arabic
}

func (b *Bundle) Supports(locale string) bool {
	_, ok := b.tables[Normalize(locale)]
	return ok
}

func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.tables))
	for l := range b.tables {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Table returns the raw nested table of a locale
func (b *Bundle) Table(locale string) (map[string]any, error) {
	t, ok := b.tables[Normalize(locale)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocale, locale)
	}
	return t, nil
}

func lookup(table map[string]any, key string) (string, bool) {
	var node any = table
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		if node, ok = m[part]; !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	return s, ok
}

// Translate resolves a dotted key in the locale's table, then in the
// fallback table, and finally returns the key itself.
func (b *Bundle) Translate(key, locale string, params ...Params) string {
	msg, ok := lookup(b.tables[Normalize(locale)], key)
	if !ok {
		msg, ok = lookup(b.tables[b.fallback], key)
	}
	if !ok {
		return key
	}
	return interpolate(msg, params)
}

func interpolate(msg string, params []Params) string {
	if len(params) == 0 {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		for _, p := range params {
			if v, ok := p[name]; ok {
				return fmt.Sprint(v)
			}
		}
		return m
	})
}

func Translate(key, locale string, params ...Params) string {
	return std.Translate(key, locale, params...)
}

func Locales() []string { return std.Locales() }

func Supports(locale string) bool { return std.Supports(locale) }

func Table(locale string) (map[string]any, error) { return std.Table(locale) }
