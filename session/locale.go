package session

import (
	"fmt"
	"sync"

	"delivrya/i18n"

	"go.uber.org/zap"
)

// Locale is the application-wide language state. The RTL flag is derived
// from the current language and never stored on its own.
type Locale struct {
	mu        sync.RWMutex
	current   string
	bundle    *i18n.Bundle
	doc       Document
	listeners []func(locale string, rtl bool)
	log       *zap.Logger
}

type LocaleOption func(*Locale)

func WithBundle(b *i18n.Bundle) LocaleOption {
	return func(l *Locale) { l.bundle = b }
}

func WithDocument(d Document) LocaleOption {
	return func(l *Locale) { l.doc = d }
}

func WithLocaleLogger(log *zap.Logger) LocaleOption {
	return func(l *Locale) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLocale starts in initial, or in French when initial is empty. The
// document is set up for the starting language.
func NewLocale(initial string, opts ...LocaleOption) (*Locale, error) {
	l := &Locale{bundle: i18n.Default(), doc: nopDocument{}, log: zap.NewNop()}
	for _, o := range opts {
		o(l)
	}
	if initial == "" {
		initial = i18n.DefaultLocale
	}
	code := i18n.Normalize(initial)
	if !l.bundle.Supports(code) {
		return nil, fmt.Errorf("%w: %s", i18n.ErrUnsupportedLocale, initial)
	}
	l.current = code
	l.apply(code)
	return l, nil
}

func (l *Locale) Current() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

func (l *Locale) IsRTL() bool {
	return i18n.IsRTL(l.Current())
}

// T translates key in the current language
func (l *Locale) T(key string, params ...i18n.Params) string {
	return l.bundle.Translate(key, l.Current(), params...)
}

// Set switches language. The RTL flag follows, the document gets the new
// dir and lang, then listeners run. Nothing else changes.
func (l *Locale) Set(locale string) error {
	code := i18n.Normalize(locale)
	if !l.bundle.Supports(code) {
		return fmt.Errorf("%w: %s", i18n.ErrUnsupportedLocale, locale)
	}

	l.mu.Lock()
	l.current = code
	l.apply(code)
	ls := make([]func(string, bool), len(l.listeners))
	copy(ls, l.listeners)
	l.mu.Unlock()

	rtl := i18n.IsRTL(code)
	l.log.Info("locale changed", zap.String("locale", code), zap.Bool("rtl", rtl))
	for _, f := range ls {
		f(code, rtl)
	}
	return nil
}

// Toggle flips between French and Arabic and returns the new language
func (l *Locale) Toggle() string {
	next := i18n.Arabic
	if l.Current() == i18n.Arabic {
		next = i18n.French
	}
	// both languages ship with the bundle
	_ = l.Set(next)
	return next
}

func (l *Locale) OnChange(f func(locale string, rtl bool)) {
	l.mu.Lock()
	l.listeners = append(l.listeners, f)
	l.mu.Unlock()
}

func (l *Locale) apply(code string) {
	dir := "ltr"
	if i18n.IsRTL(code) {
		dir = "rtl"
	}
	l.doc.SetAttribute("dir", dir)
	l.doc.SetAttribute("lang", code)
}
