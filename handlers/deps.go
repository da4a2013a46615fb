package handlers

import (
	"time"

	"delivrya/cart"
	"delivrya/tracking"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Deps are the settings the handlers read, set once at start-up
type Deps struct {
	Log            *zap.Logger
	DeliveryFee    decimal.Decimal
	PublicURL      string
	TrackerOptions []tracking.Option
	OrderRetention time.Duration // zero keeps DefaultOrderRetention
}

var deps = Deps{
	Log:         zap.NewNop(),
	DeliveryFee: cart.DefaultDeliveryFee,
	PublicURL:   "http://localhost:8082",
}

func Configure(d Deps) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.PublicURL == "" {
		d.PublicURL = deps.PublicURL
	}
	deps = d

	book.mu.Lock()
	book.retention = DefaultOrderRetention
	if d.OrderRetention > 0 {
		book.retention = d.OrderRetention
	}
	book.mu.Unlock()
}
