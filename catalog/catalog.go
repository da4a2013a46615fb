package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"delivrya/models"
)

var ErrNotFound = errors.New("not found")

// Filter combines the home category chips, the search box and the filter sheet.
// Zero values disable a criterion.
type Filter struct {
	Category     string   // category name or id; "all" or "1" disables it
	Query        string   // case-insensitive name match
	Cuisines     []string // any of, e.g. "traditional", "pastry"
	PriceRange   string   // "$", "$$" or "$$$"
	MinRating    float64
	FreeDelivery bool
}

func (f Filter) category() string {
	c := strings.TrimSpace(f.Category)
	for _, cat := range categories {
		if cat.ID == c {
			return cat.Name
		}
	}
	return c
}

func (f Filter) match(r models.Restaurant) bool {
	if c := f.category(); c != "" && c != "all" && r.Category != c {
		return false
	}
	if f.Query != "" && !containsIgnoreCase(r.Name, f.Query) {
		return false
	}
	if len(f.Cuisines) > 0 && !anyOf(r.CuisineTags, f.Cuisines) {
		return false
	}
	if f.PriceRange != "" && r.PriceRange != f.PriceRange {
		return false
	}
	if r.Rating < f.MinRating {
		return false
	}
	if f.FreeDelivery && !r.FreeDelivery() {
		return false
	}
	return true
}

// Restaurants lists the restaurants matching f in catalog order
func Restaurants(f Filter) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if f.match(r) {
			out = append(out, cloneRestaurant(r))
		}
	}
	return out
}

func Restaurant(id string) (models.Restaurant, error) {
	for _, r := range restaurants {
		if r.ID == id {
			return cloneRestaurant(r), nil
		}
	}
	return models.Restaurant{}, fmt.Errorf("restaurant %q: %w", id, ErrNotFound)
}

// Menu returns the sections of a restaurant's menu
func Menu(restaurantID string) ([]models.MenuSection, error) {
	if _, err := Restaurant(restaurantID); err != nil {
		return nil, err
	}
	sections := menus[restaurantID]
	out := make([]models.MenuSection, len(sections))
	for i, sec := range sections {
		out[i] = cloneSection(sec)
	}
	return out, nil
}

// MenuSection returns one section, e.g. "mains"
func MenuSection(restaurantID, sectionID string) (models.MenuSection, error) {
	sections, err := Menu(restaurantID)
	if err != nil {
		return models.MenuSection{}, err
	}
	for _, s := range sections {
		if s.ID == sectionID {
			return s, nil
		}
	}
	return models.MenuSection{}, fmt.Errorf("menu section %q: %w", sectionID, ErrNotFound)
}

func Dish(dishID string) (models.Dish, error) {
	for _, sections := range menus {
		for _, s := range sections {
			for _, d := range s.Dishes {
				if d.ID == dishID {
					return cloneDish(d), nil
				}
			}
		}
	}
	return models.Dish{}, fmt.Errorf("dish %q: %w", dishID, ErrNotFound)
}

// The datasets are shared by every caller; lookups hand out deep copies.

func cloneRestaurant(r models.Restaurant) models.Restaurant {
	r.CuisineTags = append([]string(nil), r.CuisineTags...)
	return r
}

func cloneSection(s models.MenuSection) models.MenuSection {
	dishes := make([]models.Dish, len(s.Dishes))
	for i, d := range s.Dishes {
		dishes[i] = cloneDish(d)
	}
	s.Dishes = dishes
	return s
}

func cloneDish(d models.Dish) models.Dish {
	if d.Options != nil {
		d.Options = append([]models.DishOption(nil), d.Options...)
	}
	return d
}

func Reviews(restaurantID string) ([]models.Review, error) {
	if _, err := Restaurant(restaurantID); err != nil {
		return nil, err
	}
	out := []models.Review{}
	for _, r := range reviews {
		if r.RestaurantID == restaurantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func Categories() []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	return out
}

func PopularTags() []string {
	out := make([]string, len(popularTags))
	copy(out, popularTags)
	return out
}

// SearchResult is one row of the search screen
type SearchResult struct {
	Type         string `json:"type"` // "restaurant" or "dish"
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Info         string `json:"info"`
}

// Search matches restaurants then dishes by name. An empty query yields nothing,
// like the search screen before typing.
func Search(query string) []SearchResult {
	query = strings.TrimSpace(query)
	out := []SearchResult{}
	if query == "" {
		return out
	}
	for _, r := range restaurants {
		if containsIgnoreCase(r.Name, query) || containsIgnoreCase(r.Cuisine, query) {
			out = append(out, SearchResult{
				Type:         "restaurant",
				ID:           r.ID,
				RestaurantID: r.ID,
				Name:         r.Name,
				Image:        r.CoverImage,
				Info:         fmt.Sprintf("%.1f ★ • %s • %s", r.Rating, r.Cuisine, r.Distance),
			})
		}
	}
	for _, r := range restaurants {
		for _, s := range menus[r.ID] {
			for _, d := range s.Dishes {
				if containsIgnoreCase(d.Name, query) {
					out = append(out, SearchResult{
						Type:         "dish",
						ID:           d.ID,
						RestaurantID: r.ID,
						Name:         d.Name,
						Image:        d.Image,
						Info:         fmt.Sprintf("Chez %s • %s DH", r.Name, d.Price.String()),
					})
				}
			}
		}
	}
	return out
}

func Addresses() []models.Address {
	out := make([]models.Address, len(addresses))
	copy(out, addresses)
	return out
}

func PaymentMethods() []models.PaymentMethod {
	out := make([]models.PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// Cities accepted by the signup form
func Cities() []string {
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// Template is the fixed delivery scenario an order is built from
type Template struct {
	Restaurant    models.Party
	Customer      models.Party
	Courier       models.Courier
	EstimatedTime time.Duration
}

// OrderTemplate builds the delivery scenario for an order from restaurantID
// to the given address
func OrderTemplate(restaurantID string, address models.Address) (Template, error) {
	r, err := Restaurant(restaurantID)
	if err != nil {
		return Template{}, err
	}
	c := customer
	if address.Line != "" {
		c.Address = address.Line
		c.Coordinates = address.Coordinates
	}
	return Template{
		Restaurant: models.Party{
			Name:        r.Name,
			Address:     r.Address,
			Coordinates: r.Coordinates,
		},
		Customer:      c,
		Courier:       courier,
		EstimatedTime: estimatedTime,
	}, nil
}

func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyOf(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Courier is the driver assigned to every simulated delivery
func Courier() models.Courier { return courier }
