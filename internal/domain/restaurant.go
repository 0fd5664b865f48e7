package domain

// A restaurant that can be matched against orders.
// Address is free text and is geocoded on demand; ContactPhone is optional.
type Restaurant struct {
	RestaurantID int
	Name         string
	Address      string
	ContactPhone string
}

// A single (restaurant, product) menu listing.
// A restaurant lists a product at most once; Availability marks whether the
// product is currently orderable from that restaurant.
type MenuEntry struct {
	RestaurantID int
	ProductID    int
	Availability bool
}
