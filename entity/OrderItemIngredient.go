package entity

import (
	"gorm.io/gorm"
)

// OrderItemIngredient records one paid customization of an order item.
// Only deviations from the dish defaults are persisted: an ingredient left
// at its default quantity costs nothing extra and gets no row.
type OrderItemIngredient struct {
	gorm.Model
	OrderItemID uint      `json:"orderItemId"`
	OrderItem   OrderItem `json:"-"`

	IngredientID uint       `json:"ingredientId"`
	Ingredient   Ingredient `json:"-"`

	WasAdded bool  `gorm:"default:true" json:"wasAdded"`
	Quantity int   `json:"quantity"` // extra units selected, always > 0
	Price    int64 `json:"price"`    // per-unit charge: ingredient base + dish surcharge
}
