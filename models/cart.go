package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
	ErrMissingDish     = errors.New("dish id is required")
)

// CartLine is one dish entry in the cart. Two additions of the same dish
// produce two lines, told apart by ID.
type CartLine struct {
	ID              string          `json:"id"`
	DishID          string          `json:"dish_id"`
	Name            string          `json:"name"`
	RestaurantID    string          `json:"restaurant_id"`
	Restaurant      string          `json:"restaurant"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	SelectedOptions []string        `json:"selected_options"`
}

func NewCartLine(dishID string, unitPrice decimal.Decimal, quantity int, options []string) (CartLine, error) {
	if strings.TrimSpace(dishID) == "" {
		return CartLine{}, ErrMissingDish
	}
	if unitPrice.IsNegative() {
		return CartLine{}, fmt.Errorf("%w: %s", ErrInvalidPrice, unitPrice)
	}
	if quantity < 1 {
		return CartLine{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	opts := make([]string, len(options))
	copy(opts, options)
	return CartLine{
		ID:              uuid.NewString(),
		DishID:          dishID,
		UnitPrice:       unitPrice,
		Quantity:        quantity,
		SelectedOptions: opts,
	}, nil
}

// LineTotal is unit price times quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CloneLines copies lines together with their selected options
func CloneLines(lines []CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		if l.SelectedOptions != nil {
			opts := make([]string, len(l.SelectedOptions))
			copy(opts, l.SelectedOptions)
			l.SelectedOptions = opts
		}
		out[i] = l
	}
	return out
}
