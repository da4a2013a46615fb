package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"delivrya/cart"
	"delivrya/catalog"
	"delivrya/checkout"
	"delivrya/i18n"
	"delivrya/models"
	"delivrya/navigation"
	"delivrya/tracking"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var errMixedRestaurants = errors.New("all dishes must come from the same restaurant")

// dishSpec is one --dish value: id[:quantity[:option]]
type dishSpec struct {
	dishID   string
	quantity int
	options  []string
}

func parseDishSpec(s string) (dishSpec, error) {
	parts := strings.SplitN(s, ":", 3)
	spec := dishSpec{dishID: strings.TrimSpace(parts[0]), quantity: 1}
	if spec.dishID == "" {
		return dishSpec{}, fmt.Errorf("dish %q: missing id", s)
	}
	if len(parts) > 1 && parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 {
			return dishSpec{}, fmt.Errorf("dish %q: bad quantity %q", s, parts[1])
		}
		spec.quantity = n
	}
	if len(parts) > 2 && parts[2] != "" {
		spec.options = []string{parts[2]}
	}
	return spec, nil
}

// buildCart fills a cart from --dish values, all from one restaurant
func buildCart(fee decimal.Decimal, values []string) (*cart.Cart, error) {
	basket := cart.New(fee)
	for _, v := range values {
		spec, err := parseDishSpec(v)
		if err != nil {
			return nil, err
		}
		dish, err := catalog.Dish(spec.dishID)
		if err != nil {
			return nil, fmt.Errorf("dish %s: %w", spec.dishID, err)
		}
		if rid := basket.RestaurantID(); rid != "" && rid != dish.RestaurantID {
			return nil, errMixedRestaurants
		}
		if _, err := basket.Add(dish, spec.quantity, spec.options); err != nil {
			return nil, err
		}
	}
	return basket, nil
}

func cutParam(kv string) (string, string, bool) {
	name, value, ok := strings.Cut(kv, "=")
	if !ok || name == "" {
		return "", "", false
	}
	return name, value, true
}

func orderCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "check out a cart and follow the delivery",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "dish", Aliases: []string{"d"}, Required: true, Usage: "id[:quantity[:option]], repeatable"},
			&cli.StringFlag{Name: "address", Usage: "saved address id, the default one when empty"},
			&cli.StringFlag{Name: "payment", Value: catalog.DefaultPaymentMethodID, Usage: "card, cash or wallet"},
			&cli.StringFlag{Name: "note"},
			&cli.IntFlag{Name: "split", Usage: "split the bill between n people"},
			&cli.StringFlag{Name: "qr", Usage: "write the tracking QR code to this PNG file"},
			&cli.BoolFlag{Name: "no-watch", Usage: "print the order and exit"},
		},
		Action: func(c *cli.Context) error {
			basket, err := buildCart(e.cfg.DeliveryFee(), c.StringSlice("dish"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			nav, err := navigation.NewNavigator(navigation.Cart, e.log)
			if err != nil {
				return err
			}
			e.printSummary(basket)
			if n := c.Int("split"); n > 0 {
				share, err := basket.SplitBetween(n)
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				e.printf("%s: %s\n", e.locale.T("splitBill"), e.locale.T("splitShare", i18n.Params{"amount": share.StringFixed(2)}))
			}

			if err := nav.Push(navigation.Checkout, nil); err != nil {
				return err
			}
			session, err := checkout.NewSession(basket, catalog.Addresses(), catalog.PaymentMethods(), checkout.WithLogger(e.log))
			if err != nil {
				return cli.Exit(e.locale.T("emptyCart"), 1)
			}
			if id := c.String("address"); id != "" {
				if err := session.SelectAddress(id); err != nil {
					return cli.Exit(err.Error(), 1)
				}
			}
			if err := session.SelectPayment(c.String("payment")); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if err := session.SetNote(c.String("note")); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			order, err := session.Confirm()
			if err != nil {
				return err
			}
			if err := nav.Push(navigation.OrderTracking, navigation.Params{"id": order.ID}); err != nil {
				return err
			}
			addr := session.Address()
			e.printf("%s → %s\n", e.locale.T("orderNumber", i18n.Params{"id": order.ID}), nav.Current().Path)
			e.printf("%s: %s (%s)\n", e.locale.T("deliveryAddress"), e.locale.T(string(addr.Type)), addr.Line)
			e.printf("%s: %s\n", e.locale.T("paymentMethod"), e.locale.T(session.Payment().NameKey))

			if path := c.String("qr"); path != "" {
				if err := e.writeQR(path, order.ID); err != nil {
					return err
				}
			}
			if c.Bool("no-watch") {
				return nil
			}
			return e.watch(c, order)
		},
	}
}

func (e *env) printSummary(basket *cart.Cart) {
	e.printf("%s\n", e.locale.T("orderSummary"))
	for _, l := range basket.Lines() {
		e.printf("  %dx %s  %s\n", l.Quantity, l.Name, e.money(l.LineTotal()))
		for _, o := range l.SelectedOptions {
			e.printf("      + %s\n", o)
		}
	}
	e.printf("%s: %s\n", e.locale.T("subtotal"), e.money(basket.Subtotal()))
	e.printf("%s: %s\n", e.locale.T("deliveryFee"), e.money(basket.DeliveryFee()))
	e.printf("%s: %s\n", e.locale.T("total"), e.money(basket.Total()))
}

// watch follows the simulated delivery until the order is delivered or the
// command is interrupted
func (e *env) watch(c *cli.Context, order models.Order) error {
	updates := make(chan models.Order, 4)
	tracker, err := tracking.NewTracker(order, catalog.Courier(),
		tracking.WithDelays(e.cfg.Tracking.PreparingDelay, e.cfg.Tracking.OnTheWayDelay),
		tracking.WithLogger(e.log))
	if err != nil {
		return err
	}
	tracker.Subscribe(func(o models.Order) { updates <- o })
	tracker.Start()
	defer tracker.Stop()

	e.printStatus(tracker)
	for {
		select {
		case <-c.Context.Done():
			e.log.Info("stopped watching order", zap.String("order_id", order.ID))
			return nil
		case o := <-updates:
			e.printStatus(tracker)
			if contact, ok := tracker.CourierContact(); ok && o.Courier != nil {
				e.printf("  %s: %s\n", e.locale.T("courierLocation"), o.Courier.Name)
				e.printf("  %s: %s\n", e.locale.T("callCourier"), contact.Call)
				e.printf("  %s: %s\n", e.locale.T("messageCourier"), contact.Message)
			}
			if o.Status == models.StatusDelivered {
				return nil
			}
		}
	}
}

func (e *env) printStatus(t *tracking.Tracker) {
	status := t.Status()
	line := fmt.Sprintf("[%s] %s", e.locale.T("orderTracking"), e.locale.T(status.TranslationKey()))
	if eta, ok := t.ETA(); ok {
		line += fmt.Sprintf(", %s %s", e.locale.T("estimatedArrival"),
			e.locale.T("estimatedMinutes", i18n.Params{"count": int(eta.Minutes())}))
	}
	e.printf("%s\n", line)
}

func (e *env) writeQR(path, orderID string) error {
	png, err := checkout.QRCode(e.cfg.Server.PublicURL, orderID, 0)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write qr code: %w", err)
	}
	e.printf("QR → %s\n", path)
	return nil
}

func qrCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "qr",
		Usage:     "write the tracking QR code of an order",
		ArgsUsage: "<order-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "order.png"},
		},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return cli.Exit("missing order id", 1)
			}
			return e.writeQR(c.String("out"), id)
		},
	}
}
