package session

import "sync"

// Document receives the root attributes a web target applies: dir and lang
// for the locale, data-theme for the theme.
type Document interface {
	SetAttribute(name, value string)
}

type nopDocument struct{}

func (nopDocument) SetAttribute(string, string) {}

// Attributes is an in-memory Document
type Attributes struct {
	mu sync.Mutex
	m  map[string]string
}

func NewAttributes() *Attributes {
	return &Attributes{m: map[string]string{}}
}

func (a *Attributes) SetAttribute(name, value string) {
	a.mu.Lock()
	a.m[name] = value
	a.mu.Unlock()
}

func (a *Attributes) Get(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.m[name]
}

// Snapshot copies every attribute set so far
func (a *Attributes) Snapshot() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]string, len(a.m))
	for k, v := range a.m {
		out[k] = v
	}
	return out
}
