package entity

import (
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	Name        LocalizedText `gorm:"type:text" json:"name"`
	Description LocalizedText `gorm:"type:text" json:"description"`
	BasePrice   int64         `json:"basePrice"` // minor currency units
	Picture     string        `json:"picture"`
	IsAvailable bool          `gorm:"default:true" json:"isAvailable"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Ingredients []DishIngredient `json:"-"`
	OrderItems  []OrderItem      `json:"-"`
}
