package navigation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Screen is a path-like screen identifier. Segments starting with ':' are
// parameters.
type Screen string

const (
	Onboarding    Screen = "/onboarding"
	Login         Screen = "/(auth)/login"
	Signup        Screen = "/(auth)/signup"
	Verify        Screen = "/(auth)/verify"
	AppShell      Screen = "/(app)/(tabs)"
	Search        Screen = "/(app)/(tabs)/search"
	Cart          Screen = "/(app)/(tabs)/cart"
	Profile       Screen = "/(app)/(tabs)/profile"
	Restaurant    Screen = "/restaurant/:id"
	Checkout      Screen = "/checkout"
	OrderTracking Screen = "/orderTracking/:id"
)

var screens = []Screen{
	Onboarding, Login, Signup, Verify,
	AppShell, Search, Cart, Profile,
	Restaurant, Checkout, OrderTracking,
}

var (
	ErrUnknownScreen = errors.New("unknown screen")
	ErrMissingParam  = errors.New("missing route parameter")
	ErrNoHistory     = errors.New("nothing to go back to")
)

// Params carries primitive route parameters only
type Params map[string]string

func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens)
	return out
}

func known(s Screen) bool {
	for _, k := range screens {
		if k == s {
			return true
		}
	}
	return false
}

// Path fills the parameters of s. Extra parameters are ignored.
func Path(s Screen, p Params) (string, error) {
	if !known(s) {
		return "", fmt.Errorf("%w: %s", ErrUnknownScreen, s)
	}
	segs := strings.Split(string(s), "/")
	for i, seg := range segs {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		name := seg[1:]
		v := strings.TrimSpace(p[name])
		if v == "" {
			return "", fmt.Errorf("%w: %s needs %q", ErrMissingParam, s, name)
		}
		segs[i] = url.PathEscape(v)
	}
	return strings.Join(segs, "/"), nil
}

// Match resolves a concrete path back to its screen and parameters
func Match(path string) (Screen, Params, error) {
	got := strings.Split(path, "/")
	for _, s := range screens {
		want := strings.Split(string(s), "/")
		if len(want) != len(got) {
			continue
		}
		params := Params{}
		ok := true
		for i, seg := range want {
			if strings.HasPrefix(seg, ":") {
				v, err := url.PathUnescape(got[i])
				if err != nil || v == "" {
					ok = false
					break
				}
				params[seg[1:]] = v
				continue
			}
			if seg != got[i] {
				ok = false
				break
			}
		}
		if ok {
			return s, params, nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnknownScreen, path)
}

// Route is one entry of the navigation stack
type Route struct {
	Screen Screen
	Params Params
	Path   string
}

func newRoute(s Screen, p Params) (Route, error) {
	path, err := Path(s, p)
	if err != nil {
		return Route{}, err
	}
	cp := make(Params, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return Route{Screen: s, Params: cp, Path: path}, nil
}

// Navigator is an in-memory navigation stack
type Navigator struct {
	mu        sync.Mutex
	stack     []Route
	listeners []func(Route)
	log       *zap.Logger
}

func NewNavigator(initial Screen, log *zap.Logger) (*Navigator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r, err := newRoute(initial, nil)
	if err != nil {
		return nil, err
	}
	return &Navigator{stack: []Route{r}, log: log}, nil
}

func (n *Navigator) Push(s Screen, p Params) error {
	r, err := newRoute(s, p)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.stack = append(n.stack, r)
	n.mu.Unlock()
	n.changed("push", r)
	return nil
}

// Replace swaps the current route, so Back cannot return to it
func (n *Navigator) Replace(s Screen, p Params) error {
	r, err := newRoute(s, p)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.stack[len(n.stack)-1] = r
	n.mu.Unlock()
	n.changed("replace", r)
	return nil
}

func (n *Navigator) Back() error {
	n.mu.Lock()
	if len(n.stack) < 2 {
		n.mu.Unlock()
		return ErrNoHistory
	}
	n.stack = n.stack[:len(n.stack)-1]
	r := n.stack[len(n.stack)-1]
	n.mu.Unlock()
	n.changed("back", r)
	return nil
}

func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}

// OnChange registers f to run after every navigation
func (n *Navigator) OnChange(f func(Route)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, f)
	n.mu.Unlock()
}

func (n *Navigator) changed(op string, r Route) {
	n.log.Debug("navigate", zap.String("op", op), zap.String("path", r.Path))
	n.mu.Lock()
	ls := make([]func(Route), len(n.listeners))
	copy(ls, n.listeners)
	n.mu.Unlock()
	for _, f := range ls {
		f(r)
	}
}
