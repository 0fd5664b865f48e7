package dto

type RestaurantResponse struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

type ListRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
}

// Availability of one product at one restaurant. Products without a menu
// entry for a restaurant report available=false for it.
type ProductAvailabilityResponse struct {
	RestaurantID int  `json:"restaurant_id"`
	Available    bool `json:"available"`
}

type ProductResponse struct {
	ProductID    int                           `json:"product_id"`
	Name         string                        `json:"name"`
	Price        string                        `json:"price"`
	Description  string                        `json:"description,omitempty"`
	Availability []ProductAvailabilityResponse `json:"availability"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}
