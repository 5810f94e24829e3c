package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"` // one unit including selected add-ons
	TotalPrice int64  `json:"totalPrice"`
	Notes      string `json:"notes"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	DishID uint `json:"dishId"`
	Dish   Dish `json:"-"` // preload only when the dish name is needed

	Ingredients []OrderItemIngredient `json:"ingredients"`
}
