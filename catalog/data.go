package catalog

import (
	"time"

	"delivrya/models"

	"github.com/shopspring/decimal"
)

func dh(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

var categories = []models.Category{
	{ID: "1", Name: "all", Icon: "🍽️"},
	{ID: "2", Name: "tajine", Icon: "🍲"},
	{ID: "3", Name: "couscous", Icon: "🥘"},
	{ID: "4", Name: "streetFood", Icon: "🥙"},
	{ID: "5", Name: "pastry", Icon: "🍰"},
	{ID: "6", Name: "drinks", Icon: "🍹"},
}

var restaurants = []models.Restaurant{
	{
		ID:           "1",
		Name:         "Restaurant Al Mounia",
		CoverImage:   "https://images.pexels.com/photos/6546024/pexels-photo-6546024.jpeg?auto=compress&cs=tinysrgb&w=800",
		Logo:         "https://images.pexels.com/photos/14417527/pexels-photo-14417527.jpeg?auto=compress&cs=tinysrgb&w=800",
		Rating:       4.7,
		ReviewCount:  254,
		Cuisine:      "Marocain traditionnel",
		CuisineTags:  []string{"traditional"},
		PriceRange:   "$$",
		Address:      "25 Rue Oued El Makhazine, Casablanca",
		DeliveryTime: "25-35",
		DeliveryFee:  dh(15),
		Distance:     "1.5 km",
		OpeningHours: "10:00 - 23:00",
		Description:  "Restaurant traditionnel marocain servant des plats authentiques dans un cadre élégant et chaleureux.",
		Category:     "all",
		Coordinates:  models.Coordinates{Latitude: 33.589886, Longitude: -7.603869},
	},
	{
		ID:           "2",
		Name:         "Café Maure",
		CoverImage:   "https://images.pexels.com/photos/4577379/pexels-photo-4577379.jpeg?auto=compress&cs=tinysrgb&w=800",
		Rating:       4.5,
		ReviewCount:  128,
		Cuisine:      "Café, Pâtisserie",
		CuisineTags:  []string{"pastry"},
		PriceRange:   "$",
		Address:      "Boulevard Sour Jdid, Casablanca",
		DeliveryTime: "15-25",
		DeliveryFee:  decimal.Zero,
		Distance:     "0.8 km",
		OpeningHours: "08:00 - 22:00",
		Description:  "Pâtisseries orientales et thé à la menthe face à l'ancienne médina.",
		Category:     "pastry",
		Coordinates:  models.Coordinates{Latitude: 33.592886, Longitude: -7.608869},
	},
	{
		ID:           "3",
		Name:         "Tajine Express",
		CoverImage:   "https://images.pexels.com/photos/5409021/pexels-photo-5409021.jpeg?auto=compress&cs=tinysrgb&w=800",
		Rating:       4.2,
		ReviewCount:  87,
		Cuisine:      "Tajine, Marocain",
		CuisineTags:  []string{"traditional", "street"},
		PriceRange:   "$$",
		Address:      "12 Rue Tata, Casablanca",
		DeliveryTime: "30-45",
		DeliveryFee:  dh(20),
		Distance:     "2.1 km",
		OpeningHours: "11:00 - 00:00",
		Description:  "Tajines et couscous préparés à la commande.",
		Category:     "tajine",
		Coordinates:  models.Coordinates{Latitude: 33.586886, Longitude: -7.598869},
	},
}

var menus = map[string][]models.MenuSection{
	"1": {
		{ID: "starters", NameKey: "menuSections.starters", Dishes: []models.Dish{
			{ID: "1", RestaurantID: "1", Name: "Salade marocaine", Description: "Tomates, concombres, oignons et poivrons assaisonnés à l'huile d'olive et aux épices marocaines", Price: dh(40), Image: "https://images.pexels.com/photos/2097090/pexels-photo-2097090.jpeg?auto=compress&cs=tinysrgb&w=800", Popular: true},
			{ID: "2", RestaurantID: "1", Name: "Briouates au fromage", Description: "Délicieux triangles feuilletés farcis au fromage frais et persil", Price: dh(45), Image: "https://images.pexels.com/photos/9792457/pexels-photo-9792457.jpeg?auto=compress&cs=tinysrgb&w=800"},
		}},
		{ID: "mains", NameKey: "menuSections.mains", Dishes: []models.Dish{
			{ID: "3", RestaurantID: "1", Name: "Tajine de poulet aux olives", Description: "Tajine traditionnel de poulet aux olives et citron confit, servi avec du pain marocain", Price: dh(95), Image: "https://images.pexels.com/photos/5409021/pexels-photo-5409021.jpeg?auto=compress&cs=tinysrgb&w=800", Popular: true, Options: []models.DishOption{
				{Name: "Sans piment", Price: decimal.Zero},
				{Name: "Ajouter des frites", Price: dh(10)},
			}},
			{ID: "4", RestaurantID: "1", Name: "Couscous Royal", Description: "Couscous aux sept légumes servi avec agneau, poulet et merguez", Price: dh(120), Image: "https://images.pexels.com/photos/5835353/pexels-photo-5835353.jpeg?auto=compress&cs=tinysrgb&w=800", Options: []models.DishOption{
				{Name: "Sans merguez", Price: decimal.Zero},
				{Name: "Portion supplémentaire de viande", Price: dh(30)},
			}},
		}},
		{ID: "desserts", NameKey: "menuSections.desserts", Dishes: []models.Dish{
			{ID: "5", RestaurantID: "1", Name: "Pastilla au lait", Description: "Feuilles de brick croustillantes fourrées à la crème et aux amandes, parfumées à la fleur d'oranger", Price: dh(35), Image: "https://images.pexels.com/photos/2363803/pexels-photo-2363803.jpeg?auto=compress&cs=tinysrgb&w=800"},
		}},
		{ID: "drinks", NameKey: "menuSections.drinks", Dishes: []models.Dish{
			{ID: "6", RestaurantID: "1", Name: "Thé à la menthe", Description: "Thé vert traditionnel à la menthe fraîche et au sucre", Price: dh(15), Image: "https://images.pexels.com/photos/1493080/pexels-photo-1493080.jpeg?auto=compress&cs=tinysrgb&w=800", Options: []models.DishOption{
				{Name: "Sans sucre", Price: decimal.Zero},
				{Name: "Très sucré", Price: decimal.Zero},
			}},
		}},
	},
	"2": {
		{ID: "desserts", NameKey: "menuSections.desserts", Dishes: []models.Dish{
			{ID: "7", RestaurantID: "2", Name: "Cornes de gazelle", Description: "Pâte fine fourrée à la pâte d'amande et à la fleur d'oranger", Price: dh(30), Popular: true},
			{ID: "8", RestaurantID: "2", Name: "Chebakia", Description: "Gâteaux au miel et au sésame", Price: dh(25)},
		}},
		{ID: "drinks", NameKey: "menuSections.drinks", Dishes: []models.Dish{
			{ID: "9", RestaurantID: "2", Name: "Thé à la menthe", Description: "Servi en théière", Price: dh(12)},
		}},
	},
	"3": {
		{ID: "mains", NameKey: "menuSections.mains", Dishes: []models.Dish{
			{ID: "10", RestaurantID: "3", Name: "Tajine kefta aux œufs", Description: "Boulettes de viande hachée, sauce tomate et œufs", Price: dh(70), Popular: true},
			{ID: "11", RestaurantID: "3", Name: "Couscous Royal", Description: "Couscous aux sept légumes, agneau et merguez", Price: dh(120)},
		}},
		{ID: "starters", NameKey: "menuSections.starters", Dishes: []models.Dish{
			{ID: "12", RestaurantID: "3", Name: "Harira", Description: "Soupe traditionnelle aux lentilles et pois chiches", Price: dh(20)},
		}},
	},
}

var reviews = []models.Review{
	{ID: "1", RestaurantID: "1", Name: "Fatima E.", Avatar: "https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=800", Rating: 5, Date: "Il y a 2 jours", Comment: "Le tajine était délicieux et authentique. J'ai adoré l'ambiance et le service rapide."},
	{ID: "2", RestaurantID: "1", Name: "Mohammed A.", Avatar: "https://images.pexels.com/photos/1516680/pexels-photo-1516680.jpeg?auto=compress&cs=tinysrgb&w=800", Rating: 4, Date: "Il y a 1 semaine", Comment: "Très bon restaurant, mais un peu cher. La nourriture est excellente et authentique."},
}

var popularTags = []string{"Tajine", "Couscous", "Halal", "Harira", "Pastilla", "Thé à la menthe", "Msemen", "Rfissa"}

var addresses = []models.Address{
	{ID: "1", Type: models.AddressHome, Name: "Maison", Line: "Apt 3B, 25 Rue Mohammed V, Casablanca", IsDefault: true, Coordinates: models.Coordinates{Latitude: 33.594886, Longitude: -7.595869}},
	{ID: "2", Type: models.AddressWork, Name: "Bureau", Line: "Twin Center, Tour Ouest, 12ème étage, Casablanca", Coordinates: models.Coordinates{Latitude: 33.585472, Longitude: -7.632553}},
}

var paymentMethods = []models.PaymentMethod{
	{ID: "card", NameKey: "cardPayment", Description: "CIH, Attijari, etc."},
	{ID: "cash", NameKey: "cashOnDelivery", Description: "Max 500 MAD"},
	{ID: "wallet", NameKey: "wallet", Description: "PayPal, etc."},
}

// DefaultPaymentMethodID is preselected when checkout opens
const DefaultPaymentMethodID = "cash"

var cities = []string{"Casablanca", "Rabat", "Kenitra", "Marrakech", "Fes", "Tanger", "Agadir", "Meknes", "Oujda"}

var courier = models.Courier{
	Name:        "Mohammed",
	Phone:       "+212 612-345678",
	Avatar:      "https://images.pexels.com/photos/1516680/pexels-photo-1516680.jpeg?auto=compress&cs=tinysrgb&w=800",
	Coordinates: models.Coordinates{Latitude: 33.591886, Longitude: -7.599869},
}

var customer = models.Party{
	Name:        "Karim Belarbi",
	Address:     "Apt 3B, 25 Rue Mohammed V, Casablanca",
	Coordinates: models.Coordinates{Latitude: 33.594886, Longitude: -7.595869},
}

const estimatedTime = 15 * time.Minute
