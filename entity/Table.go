package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	Number      int    `json:"number"`
	QRCodeToken string `gorm:"uniqueIndex" json:"qrCodeToken"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Orders []Order `json:"-"`
}
