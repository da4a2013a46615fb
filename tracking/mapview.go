package tracking

import "delivrya/models"

// LatitudeDelta is the span of the map region around the restaurant
const LatitudeDelta = 0.01

type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitudeDelta"`
	LongitudeDelta float64 `json:"longitudeDelta"`
}

type MarkerKind string

const (
	MarkerRestaurant MarkerKind = "restaurant"
	MarkerCustomer   MarkerKind = "customer"
	MarkerCourier    MarkerKind = "courier"
)

type Marker struct {
	Kind        MarkerKind         `json:"kind"`
	Title       string             `json:"title"`
	Coordinates models.Coordinates `json:"coordinates"`
}

// MapView is what the tracking map draws for one order status
type MapView struct {
	Region  Region               `json:"region"`
	Markers []Marker             `json:"markers"`
	Route   []models.Coordinates `json:"route"`
}

// HasCourier reports whether the courier marker is drawn
func (v MapView) HasCourier() bool {
	for _, m := range v.Markers {
		if m.Kind == MarkerCourier {
			return true
		}
	}
	return false
}

// BuildMapView centres the map on the restaurant. The courier is drawn, and
// the route passes through them, only while the order is on the way.
func BuildMapView(o models.Order) MapView {
	v := MapView{
		Region: Region{
			Latitude:       o.Restaurant.Coordinates.Latitude,
			Longitude:      o.Restaurant.Coordinates.Longitude,
			LatitudeDelta:  LatitudeDelta,
			LongitudeDelta: LatitudeDelta,
		},
		Markers: []Marker{
			{Kind: MarkerRestaurant, Title: o.Restaurant.Name, Coordinates: o.Restaurant.Coordinates},
			{Kind: MarkerCustomer, Title: o.Customer.Name, Coordinates: o.Customer.Coordinates},
		},
	}

	if o.Status == models.StatusOnTheWay && o.Courier != nil {
		v.Markers = append(v.Markers, Marker{Kind: MarkerCourier, Title: o.Courier.Name, Coordinates: o.Courier.Coordinates})
		v.Route = []models.Coordinates{o.Restaurant.Coordinates, o.Courier.Coordinates, o.Customer.Coordinates}
		return v
	}
	v.Route = []models.Coordinates{o.Restaurant.Coordinates, o.Customer.Coordinates}
	return v
}
