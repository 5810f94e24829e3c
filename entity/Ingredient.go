package entity

import (
	"gorm.io/gorm"
)

type Ingredient struct {
	gorm.Model
	Name      LocalizedText `gorm:"type:text" json:"name"`
	BasePrice int64         `json:"basePrice"` // per extra unit, minor currency units

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
