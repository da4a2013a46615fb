package checkout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"delivrya/cart"
	"delivrya/catalog"
	"delivrya/models"
	"delivrya/navigation"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

var (
	ErrNoAddress        = errors.New("no delivery address available")
	ErrNoPaymentMethod  = errors.New("no payment method available")
	ErrUnknownAddress   = errors.New("unknown address")
	ErrUnknownPayment   = errors.New("unknown payment method")
	ErrAlreadyConfirmed = errors.New("order already confirmed")
	ErrNoteTooLong      = errors.New("delivery note is too long")
)

const (
	MaxNoteLength     = 280
	defaultQRCodeSize = 256
)

var orderSeq atomic.Int64

// NextOrderID hands out sequential order ids starting at "1"
func NextOrderID() string {
	return strconv.FormatInt(orderSeq.Add(1), 10)
}

// Summary is the price block shown above the confirm button
type Summary struct {
	Lines       int             `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

type Option func(*Session)

func WithIDGenerator(f func() string) Option {
	return func(s *Session) { s.newID = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session holds the checkout screen state. Exactly one address and one
// payment method are selected at any time.
type Session struct {
	cart      *cart.Cart
	addresses []models.Address
	payments  []models.PaymentMethod

	addressID string
	paymentID string
	note      string
	confirmed bool

	newID func() string
	now   func() time.Time
	log   *zap.Logger
}

// NewSession opens checkout for a non-empty cart, preselecting the default
// address and cash on delivery.
func NewSession(c *cart.Cart, addresses []models.Address, payments []models.PaymentMethod, opts ...Option) (*Session, error) {
	if c == nil || c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}
	if len(addresses) == 0 {
		return nil, ErrNoAddress
	}
	if len(payments) == 0 {
		return nil, ErrNoPaymentMethod
	}

	s := &Session{
		cart:      c,
		addresses: append([]models.Address(nil), addresses...),
		payments:  append([]models.PaymentMethod(nil), payments...),
		newID:     NextOrderID,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}

	s.addressID = addresses[0].ID
	for _, a := range addresses {
		if a.IsDefault {
			s.addressID = a.ID
			break
		}
	}
	s.paymentID = payments[0].ID
	for _, p := range payments {
		if p.ID == catalog.DefaultPaymentMethodID {
			s.paymentID = p.ID
			break
		}
	}
	return s, nil
}

// SelectAddress changes the delivery address. An unknown id keeps the
// previous selection.
func (s *Session) SelectAddress(id string) error {
	for _, a := range s.addresses {
		if a.ID == id {
			s.addressID = id
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownAddress, id)
}

func (s *Session) SelectPayment(id string) error {
	for _, p := range s.payments {
		if p.ID == id {
			s.paymentID = id
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownPayment, id)
}

func (s *Session) SetNote(note string) error {
	note = strings.TrimSpace(note)
	if len([]rune(note)) > MaxNoteLength {
		return fmt.Errorf("%w: max %d characters", ErrNoteTooLong, MaxNoteLength)
	}
	s.note = note
	return nil
}

func (s *Session) Note() string { return s.note }

func (s *Session) Address() models.Address {
	for _, a := range s.addresses {
		if a.ID == s.addressID {
			return a
		}
	}
	return models.Address{}
}

func (s *Session) Payment() models.PaymentMethod {
	for _, p := range s.payments {
		if p.ID == s.paymentID {
			return p
		}
	}
	return models.PaymentMethod{}
}

func (s *Session) Summary() Summary {
	return Summary{
		Lines:       s.cart.Len(),
		Subtotal:    s.cart.Subtotal(),
		DeliveryFee: s.cart.DeliveryFee(),
		Total:       s.cart.Total(),
	}
}

// Confirm places the order and empties the cart. The caller navigates to
// the tracking screen with the returned order id only.
func (s *Session) Confirm() (models.Order, error) {
	if s.confirmed {
		return models.Order{}, ErrAlreadyConfirmed
	}
	if s.cart.IsEmpty() {
		return models.Order{}, cart.ErrEmptyCart
	}

	addr := s.Address()
	tpl, err := catalog.OrderTemplate(s.cart.RestaurantID(), addr)
	if err != nil {
		return models.Order{}, fmt.Errorf("confirm order: %w", err)
	}

	sum := s.Summary()
	order, err := models.NewOrder(models.Order{
		ID:              s.newID(),
		Restaurant:      tpl.Restaurant,
		Customer:        tpl.Customer,
		EstimatedTime:   tpl.EstimatedTime,
		Lines:           s.cart.Lines(),
		Subtotal:        sum.Subtotal,
		DeliveryFee:     sum.DeliveryFee,
		Total:           sum.Total,
		AddressID:       addr.ID,
		PaymentMethodID: s.paymentID,
		Note:            s.note,
		CreatedAt:       s.now(),
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("confirm order: %w", err)
	}

	s.confirmed = true
	s.cart.Clear()
	s.log.Info("order confirmed",
		zap.String("order_id", order.ID),
		zap.String("payment", order.PaymentMethodID),
		zap.String("total", order.Total.String()))
	return order, nil
}

// TrackingURL is the deep link of the tracking screen of an order
func TrackingURL(baseURL, orderID string) (string, error) {
	path, err := navigation.Path(navigation.OrderTracking, navigation.Params{"id": orderID})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(baseURL, "/") + path, nil
}

// QRCode renders the tracking link of an order as a PNG
func QRCode(baseURL, orderID string, size int) ([]byte, error) {
	link, err := TrackingURL(baseURL, orderID)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = defaultQRCodeSize
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
