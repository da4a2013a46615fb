package models

import "github.com/shopspring/decimal"

// Coordinates is a WGS84 point on the tracking and home maps
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Restaurant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CoverImage   string          `json:"cover_image"`
	Logo         string          `json:"logo"`
	Rating       float64         `json:"rating"`
	ReviewCount  int             `json:"review_count"`
	Cuisine      string          `json:"cuisine"`
	CuisineTags  []string        `json:"cuisine_tags"`
	PriceRange   string          `json:"price_range"`
	Address      string          `json:"address"`
	DeliveryTime string          `json:"delivery_time"` // minutes range, e.g. "25-35"
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	Distance     string          `json:"distance"`
	OpeningHours string          `json:"opening_hours"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Coordinates  Coordinates     `json:"coordinates"`
}

// FreeDelivery reports whether the restaurant delivers without a fee
func (r Restaurant) FreeDelivery() bool {
	return r.DeliveryFee.IsZero()
}

// MenuSection groups dishes under a translation key such as "menuSections.mains"
type MenuSection struct {
	ID      string `json:"id"`
	NameKey string `json:"name_key"`
	Dishes  []Dish `json:"dishes"`
}

type Dish struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Popular      bool            `json:"popular"`
	Options      []DishOption    `json:"options,omitempty"`
}

// Option finds a customization by its display name
func (d Dish) Option(name string) (DishOption, bool) {
	for _, o := range d.Options {
		if o.Name == name {
			return o, true
		}
	}
	return DishOption{}, false
}

// DishOption is a customization with its surcharge (zero for "Sans piment")
type DishOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Review struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	Rating       int    `json:"rating"`
	Date         string `json:"date"`
	Comment      string `json:"comment"`
}

// Category is a home screen chip; Name is a key under "categories."
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
