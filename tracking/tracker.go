package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"delivrya/models"
	"delivrya/statemachine"

	"go.uber.org/zap"
)

var ErrNotCancellable = errors.New("order can no longer be cancelled")

const (
	DefaultPreparingDelay = 10 * time.Second
	DefaultOnTheWayDelay  = 20 * time.Second
	publishTimeout        = 5 * time.Second
)

// Listener receives a snapshot of the order after each status change
type Listener func(models.Order)

type Option func(*Tracker)

func WithScheduler(s Scheduler) Option {
	return func(t *Tracker) { t.sched = s }
}

// WithDelays sets how long the order stays preparing and on the way
func WithDelays(preparing, onTheWay time.Duration) Option {
	return func(t *Tracker) {
		t.delays[models.StatusPreparing] = preparing
		t.delays[models.StatusOnTheWay] = onTheWay
	}
}

func WithPublisher(p Publisher) Option {
	return func(t *Tracker) { t.pub = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Tracker simulates the delivery of one order: preparing, then on the way
// with a courier, then delivered.
type Tracker struct {
	mu        sync.Mutex
	order     models.Order
	courier   models.Courier
	delays    map[models.OrderStatus]time.Duration
	timer     Timer
	started   bool
	stopped   bool
	listeners []Listener

	sched Scheduler
	pub   Publisher
	log   *zap.Logger
	now   func() time.Time
}

// NewTracker takes a freshly placed order. The courier joins the order when
// it leaves the restaurant.
func NewTracker(order models.Order, courier models.Courier, opts ...Option) (*Tracker, error) {
	if order.Status != models.StatusPreparing {
		return nil, fmt.Errorf("%w: tracking starts at %s, got %s", models.ErrInvalidOrder, models.StatusPreparing, order.Status)
	}
	t := &Tracker{
		order:   order,
		courier: courier,
		delays: map[models.OrderStatus]time.Duration{
			models.StatusPreparing: DefaultPreparingDelay,
			models.StatusOnTheWay:  DefaultOnTheWayDelay,
		},
		sched: RealScheduler,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	if t.pub == nil {
		t.pub = LogPublisher{Log: t.log}
	}
	return t, nil
}

// Start arms the timer of the current status. Calling it again is a no-op.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.stopped {
		return
	}
	t.started = true
	t.schedule()
}

// schedule must be called with t.mu held
func (t *Tracker) schedule() {
	if statemachine.IsTerminal(t.order.Status) {
		t.timer = nil
		return
	}
	from := t.order.Status
	t.timer = t.sched.AfterFunc(t.delays[from], func() { t.advance(from) })
}

func (t *Tracker) advance(from models.OrderStatus) {
	t.mu.Lock()
	if t.stopped || t.order.Status != from {
		t.mu.Unlock()
		return
	}
	to, ok := statemachine.Next(from)
	if !ok {
		t.mu.Unlock()
		return
	}
	if err := statemachine.CanTransition(from, to, statemachine.ActorTracker); err != nil {
		t.mu.Unlock()
		t.log.Error("tracking transition rejected", zap.String("order_id", t.order.ID), zap.Error(err))
		return
	}

	t.order.Status = to
	if to == models.StatusOnTheWay {
		c := t.courier
		t.order.Courier = &c
	}
	t.schedule()
	snapshot := t.snapshot()
	ls := make([]Listener, len(t.listeners))
	copy(ls, t.listeners)
	t.mu.Unlock()

	for _, l := range ls {
		l(snapshot)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	e := Event{OrderID: snapshot.ID, From: from, To: to, At: t.now()}
	if err := t.pub.Publish(ctx, e); err != nil {
		t.log.Warn("publish order status", zap.String("order_id", e.OrderID), zap.Error(err))
	}
}

// Stop cancels the pending timer. No transition happens afterwards.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Tracker) stopLocked() {
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tracker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *Tracker) CanCancel() bool {
	return statemachine.CanCancel(t.Status())
}

// Cancel stops tracking an order that has not been delivered yet. The check
// and the stop happen under one lock so a firing timer cannot slip between.
func (t *Tracker) Cancel() error {
	t.mu.Lock()
	status := t.order.Status
	if !statemachine.CanCancel(status) {
		t.mu.Unlock()
		return fmt.Errorf("%w: order is %s", ErrNotCancellable, status)
	}
	t.stopLocked()
	t.mu.Unlock()
	t.log.Info("order cancelled", zap.String("order_id", t.order.ID), zap.String("status", string(status)))
	return nil
}

// Subscribe registers l for every later status change
func (t *Tracker) Subscribe(l Listener) {
	t.mu.Lock()
	t.listeners = append(t.listeners, l)
	t.mu.Unlock()
}

func (t *Tracker) Status() models.OrderStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order.Status
}

func (t *Tracker) Order() models.Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

func (t *Tracker) snapshot() models.Order {
	o := t.order
	o.Lines = models.CloneLines(t.order.Lines)
	if t.order.Courier != nil {
		c := *t.order.Courier
		o.Courier = &c
	}
	return o
}

func (t *Tracker) MapView() MapView {
	return BuildMapView(t.Order())
}

// Contact holds the links the tracking screen opens to reach the courier
type Contact struct {
	Call    string `json:"call"`
	Message string `json:"message"`
}

// CourierContact is available only while the order is on the way
func (t *Tracker) CourierContact() (Contact, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.order.Status != models.StatusOnTheWay || t.order.Courier == nil {
		return Contact{}, false
	}
	return Contact{Call: t.order.Courier.CallURL(), Message: t.order.Courier.MessageURL()}, true
}

// ETA is the estimated time of arrival, hidden once delivered
func (t *Tracker) ETA() (time.Duration, bool) {
	o := t.Order()
	if o.Status == models.StatusDelivered {
		return 0, false
	}
	return o.EstimatedTime, true
}

// Step is one entry of the status timeline
type Step struct {
	Status   models.OrderStatus `json:"status"`
	LabelKey string             `json:"label_key"`
	Reached  bool               `json:"reached"`
	Current  bool               `json:"current"`
}

func (t *Tracker) Timeline() []Step {
	current := t.Status()
	steps := make([]Step, 0, 3)
	for _, s := range statemachine.Ordered() {
		steps = append(steps, Step{
			Status:   s,
			LabelKey: s.TranslationKey(),
			Reached:  statemachine.Reached(current, s),
			Current:  s == current,
		})
	}
	return steps
}
