package cart

import (
	"errors"
	"fmt"

	"delivrya/catalog"
	"delivrya/models"

	"github.com/shopspring/decimal"
)

// DefaultDeliveryFee is charged once per order, in DH
var DefaultDeliveryFee = decimal.NewFromInt(20)

var (
	ErrLineNotFound  = errors.New("cart line not found")
	ErrUnknownOption = errors.New("unknown dish option")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidSplit  = errors.New("split must be between at least one person")
)

// Cart is the ordered list of lines the customer is about to check out.
// It is owned by a single flow and is not safe for concurrent use.
type Cart struct {
	lines       []models.CartLine
	deliveryFee decimal.Decimal

	ScheduledDelivery bool
	SplitBill         bool
}

// New returns an empty cart. A negative fee falls back to DefaultDeliveryFee.
func New(deliveryFee decimal.Decimal) *Cart {
	if deliveryFee.IsNegative() {
		deliveryFee = DefaultDeliveryFee
	}
	return &Cart{deliveryFee: deliveryFee}
}

// Add appends a new line for dish. Adding a dish that is already in the cart
// creates a second line; lines are never merged. Selected options add their
// surcharge to the unit price.
func (c *Cart) Add(dish models.Dish, quantity int, options []string) (models.CartLine, error) {
	price := dish.Price
	for _, name := range options {
		opt, ok := dish.Option(name)
		if !ok {
			return models.CartLine{}, fmt.Errorf("%w: %q on dish %s", ErrUnknownOption, name, dish.ID)
		}
		price = price.Add(opt.Price)
	}

	line, err := models.NewCartLine(dish.ID, price, quantity, options)
	if err != nil {
		return models.CartLine{}, fmt.Errorf("add dish %s: %w", dish.ID, err)
	}
	line.Name = dish.Name
	line.RestaurantID = dish.RestaurantID
	if r, err := catalog.Restaurant(dish.RestaurantID); err == nil {
		line.Restaurant = r.Name
	}

	c.lines = append(c.lines, line)
	return line, nil
}

func (c *Cart) index(lineID string) (int, error) {
	for i, l := range c.lines {
		if l.ID == lineID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
}

// Increment raises the quantity of one line by n
func (c *Cart) Increment(lineID string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", models.ErrInvalidQuantity, n)
	}
	i, err := c.index(lineID)
	if err != nil {
		return err
	}
	c.lines[i].Quantity += n
	return nil
}

// Decrement lowers the quantity of one line by one. A line at quantity 1 is
// removed instead.
func (c *Cart) Decrement(lineID string) error {
	i, err := c.index(lineID)
	if err != nil {
		return err
	}
	if c.lines[i].Quantity <= 1 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity--
	return nil
}

func (c *Cart) Remove(lineID string) error {
	i, err := c.index(lineID)
	if err != nil {
		return err
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
	c.ScheduledDelivery = false
	c.SplitBill = false
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []models.CartLine {
	return models.CloneLines(c.lines)
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Subtotal is the sum of unit price times quantity over all lines
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

func (c *Cart) DeliveryFee() decimal.Decimal { return c.deliveryFee }

// Total is the subtotal plus the per-order delivery fee
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.deliveryFee)
}

// SplitBetween returns each person's share of the total, rounded to the
// centime
func (c *Cart) SplitBetween(people int) (decimal.Decimal, error) {
	if people < 1 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidSplit, people)
	}
	return c.Total().DivRound(decimal.NewFromInt(int64(people)), 2), nil
}

// RestaurantID is the restaurant of the first line, empty for an empty cart
func (c *Cart) RestaurantID() string {
	if len(c.lines) == 0 {
		return ""
	}
	return c.lines[0].RestaurantID
}
