package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"delivrya/catalog"
	"delivrya/i18n"
	"delivrya/models"
	"delivrya/statemachine"

	"github.com/gin-gonic/gin"
)

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ListRestaurants applies the home category chips and the filter sheet
func ListRestaurants(c *gin.Context) {
	f := catalog.Filter{
		Category:     c.Query("category"),
		Query:        c.Query("q"),
		Cuisines:     splitList(c.Query("cuisine")),
		PriceRange:   c.Query("price"),
		FreeDelivery: c.Query("free_delivery") == "true",
	}
	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_rating must be a number between 0 and 5"})
			return
		}
		f.MinRating = v
	}

	restaurants := catalog.Restaurants(f)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

func GetRestaurant(c *gin.Context) {
	r, err := catalog.Restaurant(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": r})
}

// GetMenu returns the menu sections, or one section with ?section=
func GetMenu(c *gin.Context) {
	r, err := catalog.Restaurant(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var sections []models.MenuSection
	if id := c.Query("section"); id != "" {
		s, err := catalog.MenuSection(r.ID, id)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu section not found"})
			return
		}
		sections = []models.MenuSection{s}
	} else {
		sections, _ = catalog.Menu(r.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": r.Name,
		"count":      len(sections),
		"menu":       sections,
	})
}

func GetReviews(c *gin.Context) {
	reviews, err := catalog.Reviews(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

func Search(c *gin.Context) {
	results := catalog.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"count":        len(results),
		"results":      results,
		"popular_tags": catalog.PopularTags(),
	})
}

// ListCategories labels each category in ?locale= (French by default)
func ListCategories(c *gin.Context) {
	locale := c.DefaultQuery("locale", i18n.DefaultLocale)
	out := []gin.H{}
	for _, cat := range catalog.Categories() {
		out = append(out, gin.H{
			"id":    cat.ID,
			"name":  cat.Name,
			"icon":  cat.Icon,
			"label": i18n.Translate("categories."+cat.Name, locale),
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func ListCities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": catalog.Cities()})
}

// GetCheckoutOptions lists saved addresses and payment methods
func GetCheckoutOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"addresses":              catalog.Addresses(),
		"payment_methods":        catalog.PaymentMethods(),
		"default_payment_method": catalog.DefaultPaymentMethodID,
		"delivery_fee":           deps.DeliveryFee,
	})
}

func GetTranslations(c *gin.Context) {
	locale := c.Param("locale")
	table, err := i18n.Table(locale)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unsupported locale", "locales": i18n.Locales()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"locale":       i18n.Normalize(locale),
		"rtl":          i18n.IsRTL(locale),
		"translations": table,
	})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var terminal []models.OrderStatus
	for _, s := range statemachine.Ordered() {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"initial_state":   models.StatusPreparing,
		"terminal_states": terminal,
		"description":     "Delivrya order tracking lifecycle",
	})
}
