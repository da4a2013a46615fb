package session

import (
	"errors"
	"fmt"
	"sync"
)

type ThemeMode string

const (
	Light ThemeMode = "light"
	Dark  ThemeMode = "dark"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Palette is the colour set of one theme
type Palette struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
	Background    string `json:"background"`
	Card          string `json:"card"`
	CardAlt       string `json:"cardAlt"`
	Border        string `json:"border"`
}

var palettes = map[ThemeMode]Palette{
	Light: {
		Primary: "#E2725B", Secondary: "#3EB489", Accent: "#D4AF37",
		Text: "#111827", TextSecondary: "#4B5563",
		Background: "#FFFFFF", Card: "#FFFFFF", CardAlt: "#F9FAFB", Border: "#E5E7EB",
	},
	Dark: {
		Primary: "#E2725B", Secondary: "#3EB489", Accent: "#D4AF37",
		Text: "#FFFFFF", TextSecondary: "#D1D5DB",
		Background: "#111827", Card: "#1F2937", CardAlt: "#374151", Border: "#374151",
	},
}

type Theme struct {
	mu        sync.RWMutex
	mode      ThemeMode
	doc       Document
	listeners []func(ThemeMode)
}

func NewTheme(mode ThemeMode, doc Document) (*Theme, error) {
	if mode == "" {
		mode = Light
	}
	if _, ok := palettes[mode]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, mode)
	}
	if doc == nil {
		doc = nopDocument{}
	}
	t := &Theme{mode: mode, doc: doc}
	doc.SetAttribute("data-theme", string(mode))
	return t, nil
}

func (t *Theme) Mode() ThemeMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

func (t *Theme) IsDark() bool { return t.Mode() == Dark }

func (t *Theme) Colors() Palette { return palettes[t.Mode()] }

func (t *Theme) Set(mode ThemeMode) error {
	if _, ok := palettes[mode]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, mode)
	}
	t.mu.Lock()
	t.mode = mode
	t.doc.SetAttribute("data-theme", string(mode))
	ls := make([]func(ThemeMode), len(t.listeners))
	copy(ls, t.listeners)
	t.mu.Unlock()
	for _, f := range ls {
		f(mode)
	}
	return nil
}

func (t *Theme) Toggle() ThemeMode {
	next := Dark
	if t.Mode() == Dark {
		next = Light
	}
	_ = t.Set(next)
	return next
}

func (t *Theme) OnChange(f func(ThemeMode)) {
	t.mu.Lock()
	t.listeners = append(t.listeners, f)
	t.mu.Unlock()
}
