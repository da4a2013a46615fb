package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"delivrya/cart"
	"delivrya/catalog"
	"delivrya/checkout"
	"delivrya/middleware"
	"delivrya/models"
	"delivrya/navigation"
	"delivrya/statemachine"
	"delivrya/tracking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type trackedOrder struct {
	clientID uint
	tracker  *tracking.Tracker
	finished time.Time // zero while the order can still change
}

// DefaultOrderRetention is how long a delivered or cancelled order stays
// readable before the book forgets it
const DefaultOrderRetention = time.Hour

// orderBook keeps the live trackers of orders placed through the API
type orderBook struct {
	mu        sync.RWMutex
	orders    map[string]trackedOrder
	retention time.Duration
	now       func() time.Time
}

func newOrderBook() *orderBook {
	return &orderBook{
		orders:    map[string]trackedOrder{},
		retention: DefaultOrderRetention,
		now:       time.Now,
	}
}

var book = newOrderBook()

func (b *orderBook) add(id string, clientID uint, t *tracking.Tracker) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked()
	b.orders[id] = trackedOrder{clientID: clientID, tracker: t}
}

// finish starts the retention period of an order that reached its end
func (b *orderBook) finish(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if o, ok := b.orders[id]; ok && o.finished.IsZero() {
		o.finished = b.now()
		b.orders[id] = o
	}
}

// pruneLocked drops finished orders older than the retention period
func (b *orderBook) pruneLocked() {
	cutoff := b.now().Add(-b.retention)
	for id, o := range b.orders {
		if !o.finished.IsZero() && !o.finished.After(cutoff) {
			delete(b.orders, id)
		}
	}
}

func (b *orderBook) get(id string) (trackedOrder, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked()
	o, ok := b.orders[id]
	return o, ok
}

func (b *orderBook) byClient(clientID uint) []*tracking.Tracker {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pruneLocked()
	var out []*tracking.Tracker
	for _, o := range b.orders {
		if o.clientID == clientID {
			out = append(out, o.tracker)
		}
	}
	return out
}

func (b *orderBook) size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}

// StopTracking stops and forgets every tracker, on shutdown
func StopTracking() {
	book.mu.Lock()
	defer book.mu.Unlock()
	for id, o := range book.orders {
		o.tracker.Stop()
		delete(book.orders, id)
	}
}

type OrderItemRequest struct {
	DishID   string   `json:"dish_id" binding:"required"`
	Quantity int      `json:"quantity" binding:"required,min=1"`
	Options  []string `json:"options"`
}

type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	AddressID       string             `json:"address_id"`
	PaymentMethodID string             `json:"payment_method_id"`
	Note            string             `json:"note"`
}

// PlaceOrder prices the items, confirms the order and starts tracking it
func PlaceOrder(c *gin.Context) {
	clientID := middleware.GetClientID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	basket := cart.New(deps.DeliveryFee)
	for _, item := range req.Items {
		dish, err := catalog.Dish(item.DishID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dish not found: " + item.DishID})
			return
		}
		if rid := basket.RestaurantID(); rid != "" && rid != dish.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All dishes must come from the same restaurant"})
			return
		}
		if _, err := basket.Add(dish, item.Quantity, item.Options); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	session, err := checkout.NewSession(basket, catalog.Addresses(), catalog.PaymentMethods(), checkout.WithLogger(deps.Log))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.AddressID != "" {
		if err := session.SelectAddress(req.AddressID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.PaymentMethodID != "" {
		if err := session.SelectPayment(req.PaymentMethodID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := session.SetNote(req.Note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := session.Confirm()
	if err != nil {
		deps.Log.Error("confirm order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	opts := append([]tracking.Option{tracking.WithLogger(deps.Log)}, deps.TrackerOptions...)
	tracker, err := tracking.NewTracker(order, catalog.Courier(), opts...)
	if err != nil {
		deps.Log.Error("start tracking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}
	tracker.Subscribe(func(o models.Order) {
		if statemachine.IsTerminal(o.Status) {
			book.finish(o.ID)
		}
	})
	book.add(order.ID, clientID, tracker)
	tracker.Start()

	path, _ := navigation.Path(navigation.OrderTracking, navigation.Params{"id": order.ID})
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order placed successfully",
		"order":          order,
		"estimated_time": order.EstimatedMinutes(),
		"tracking_path":  path,
	})
}

// GetMyOrders returns the orders of the logged-in client, newest first
func GetMyOrders(c *gin.Context) {
	trackers := book.byClient(middleware.GetClientID(c))
	orders := make([]gin.H, 0, len(trackers))
	for _, t := range trackers {
		o := t.Order()
		orders = append(orders, gin.H{"id": o.ID, "status": o.Status, "total": o.Total, "created_at": o.CreatedAt})
	}
	sort.Slice(orders, func(i, j int) bool {
		a, _ := strconv.Atoi(orders[i]["id"].(string))
		b, _ := strconv.Atoi(orders[j]["id"].(string))
		return a > b
	})
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

func ownedTracker(c *gin.Context) (*tracking.Tracker, bool) {
	o, ok := book.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	if o.clientID != middleware.GetClientID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return nil, false
	}
	return o.tracker, true
}

// GetOrderDetail returns what the tracking screen shows
func GetOrderDetail(c *gin.Context) {
	t, ok := ownedTracker(c)
	if !ok {
		return
	}
	order := t.Order()
	resp := gin.H{
		"order":      order,
		"map":        t.MapView(),
		"timeline":   t.Timeline(),
		"can_cancel": t.CanCancel(),
	}
	if _, ok := t.ETA(); ok {
		resp["estimated_arrival"] = order.EstimatedMinutes()
	}
	if contact, ok := t.CourierContact(); ok {
		resp["courier_contact"] = contact
	}
	c.JSON(http.StatusOK, resp)
}

// CancelOrder stops tracking an order that has not been delivered
func CancelOrder(c *gin.Context) {
	t, ok := ownedTracker(c)
	if !ok {
		return
	}
	if err := t.Cancel(); err != nil {
		if errors.Is(err, tracking.ErrNotCancellable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":         "Cannot cancel order",
				"reason":        err.Error(),
				"current_state": t.Status(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	book.finish(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"message":  "Order cancelled successfully",
		"order_id": c.Param("id"),
		"redirect": "/",
	})
}

// GetOrderQRCode renders the tracking link of an order as a PNG
func GetOrderQRCode(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	if size < 64 || size > 1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 64 and 1024"})
		return
	}
	png, err := checkout.QRCode(deps.PublicURL, c.Param("id"), size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
