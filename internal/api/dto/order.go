package dto

type CreateOrderItemRequest struct {
	ProductID int `json:"product"`
	Quantity  int `json:"quantity"`
}

type CreateOrderRequest struct {
	FirstName     string                   `json:"firstname"`
	LastName      string                   `json:"lastname"`
	PhoneNumber   string                   `json:"phonenumber"`
	Address       string                   `json:"address"`
	Comment       string                   `json:"comment"`
	PaymentMethod string                   `json:"payment_method"`
	Products      []CreateOrderItemRequest `json:"products"`
}

type CreateOrderResponse struct {
	OrderID int `json:"order_id"`
}
