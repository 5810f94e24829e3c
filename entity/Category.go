package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name      LocalizedText `gorm:"type:text" json:"name"`
	SortOrder int           `gorm:"not null;default:0" json:"sortOrder"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Dishes []Dish `json:"-"`
}
