package entity

import (
	"gorm.io/gorm"
)

// DishIngredient links a dish to one of its ingredients and carries the
// dish-specific surcharge for adding extra units of it.
type DishIngredient struct {
	gorm.Model
	DishID uint `gorm:"index:idx_dish_ingredient,unique" json:"dishId"`
	Dish   Dish `json:"-"`

	IngredientID uint       `gorm:"index:idx_dish_ingredient,unique" json:"ingredientId"`
	Ingredient   Ingredient `json:"ingredient"`

	AdditionalPrice     int64 `json:"additionalPrice"` // on top of ingredient base price, per unit
	IsOptional          bool  `gorm:"default:true" json:"isOptional"`
	IsRemovable         bool  `gorm:"default:false" json:"isRemovable"`
	IsIncludedByDefault bool  `gorm:"default:true" json:"isIncludedByDefault"`
}
