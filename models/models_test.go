package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartLine(t *testing.T) {
	tests := []struct {
		name     string
		dishID   string
		price    decimal.Decimal
		quantity int
		wantErr  error
	}{
		{name: "valid", dishID: "3", price: decimal.NewFromInt(95), quantity: 1},
		{name: "free dish", dishID: "3", price: decimal.Zero, quantity: 2},
		{name: "missing dish", dishID: " ", price: decimal.NewFromInt(95), quantity: 1, wantErr: ErrMissingDish},
		{name: "negative price", dishID: "3", price: decimal.NewFromInt(-1), quantity: 1, wantErr: ErrInvalidPrice},
		{name: "zero quantity", dishID: "3", price: decimal.NewFromInt(95), quantity: 0, wantErr: ErrInvalidQuantity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line, err := NewCartLine(tc.dishID, tc.price, tc.quantity, nil)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, line.ID)
			assert.Equal(t, tc.quantity, line.Quantity)
		})
	}
}

func TestNewCartLine_CopiesOptions(t *testing.T) {
	opts := []string{"Sans piment"}
	line, err := NewCartLine("3", decimal.NewFromInt(95), 1, opts)
	require.NoError(t, err)
	opts[0] = "changed"
	assert.Equal(t, []string{"Sans piment"}, line.SelectedOptions)
}

func TestCartLine_LineTotal(t *testing.T) {
	line, err := NewCartLine("6", decimal.NewFromInt(15), 2, nil)
	require.NoError(t, err)
	assert.True(t, line.LineTotal().Equal(decimal.NewFromInt(30)))
}

func TestNewOrder(t *testing.T) {
	o, err := NewOrder(Order{ID: "1", EstimatedTime: 15 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, o.Status)
	assert.False(t, o.CreatedAt.IsZero())
	assert.Equal(t, "15 min", o.EstimatedMinutes())

	_, err = NewOrder(Order{})
	assert.True(t, errors.Is(err, ErrInvalidOrder))

	_, err = NewOrder(Order{ID: "1", Status: StatusOnTheWay})
	assert.True(t, errors.Is(err, ErrInvalidOrder))

	_, err = NewOrder(Order{ID: "1", Courier: &Courier{Name: "Mohammed"}})
	assert.True(t, errors.Is(err, ErrInvalidOrder))
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, StatusOnTheWay.Valid())
	assert.False(t, OrderStatus("cancelled").Valid())
	assert.Equal(t, "orderStatus.onTheWay", StatusOnTheWay.TranslationKey())
}

func TestClientFullName(t *testing.T) {
	assert.Equal(t, "Karim Belarbi", Client{Prenom: "Karim", Nom: "Belarbi"}.FullName())
	assert.Equal(t, "Karim", Client{Prenom: "Karim"}.FullName())
}

func TestCloneLines(t *testing.T) {
	line, err := NewCartLine("3", decimal.NewFromInt(95), 1, []string{"Sans piment"})
	require.NoError(t, err)
	lines := []CartLine{line}

	out := CloneLines(lines)
	out[0].SelectedOptions[0] = "changed"
	assert.Equal(t, []string{"Sans piment"}, lines[0].SelectedOptions)
	assert.NotNil(t, CloneLines(nil))
}

func TestCourierLinks(t *testing.T) {
	c := Courier{Phone: "+212 612-345678"}
	assert.Equal(t, "tel:+212612345678", c.CallURL())
	assert.Equal(t, "sms:+212612345678", c.MessageURL())
	assert.Equal(t, "tel:0612345678", Courier{Phone: " 06 12 34 56 78"}.CallURL())
}
