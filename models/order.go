package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the tracked states of a placed order
type OrderStatus string

const (
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "onTheWay"
	StatusDelivered OrderStatus = "delivered"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPreparing, StatusOnTheWay, StatusDelivered:
		return true
	}
	return false
}

// TranslationKey is the localization key of the status label
func (s OrderStatus) TranslationKey() string {
	return "orderStatus." + string(s)
}

var ErrInvalidOrder = errors.New("invalid order")

// Party is a fixed point of a delivery: the restaurant or the customer
type Party struct {
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

type Courier struct {
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Avatar      string      `json:"avatar"`
	Coordinates Coordinates `json:"coordinates"`
}

// CallURL is the tel: link of the courier's phone
func (c Courier) CallURL() string { return "tel:" + dialable(c.Phone) }

// MessageURL is the sms: link of the courier's phone
func (c Courier) MessageURL() string { return "sms:" + dialable(c.Phone) }

// dialable keeps the digits and a leading plus of a formatted number
func dialable(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type Order struct {
	ID              string          `json:"id"`
	Restaurant      Party           `json:"restaurant"`
	Courier         *Courier        `json:"courier,omitempty"` // set once the order is on the way
	Customer        Party           `json:"customer"`
	Status          OrderStatus     `json:"status"`
	EstimatedTime   time.Duration   `json:"estimated_time"`
	Lines           []CartLine      `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Total           decimal.Decimal `json:"total"`
	AddressID       string          `json:"address_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewOrder validates a freshly placed order. Orders always start in
// StatusPreparing and without a courier.
func NewOrder(o Order) (Order, error) {
	if o.ID == "" {
		return Order{}, fmt.Errorf("%w: id is required", ErrInvalidOrder)
	}
	if o.Status == "" {
		o.Status = StatusPreparing
	}
	if o.Status != StatusPreparing {
		return Order{}, fmt.Errorf("%w: initial status must be %s, got %s", ErrInvalidOrder, StatusPreparing, o.Status)
	}
	if o.Courier != nil {
		return Order{}, fmt.Errorf("%w: courier assigned before the order is on the way", ErrInvalidOrder)
	}
	if o.EstimatedTime < 0 {
		return Order{}, fmt.Errorf("%w: negative estimated time", ErrInvalidOrder)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	return o, nil
}

// EstimatedMinutes renders the ETA the way the tracking header shows it
func (o Order) EstimatedMinutes() string {
	return fmt.Sprintf("%d min", int(o.EstimatedTime.Minutes()))
}
