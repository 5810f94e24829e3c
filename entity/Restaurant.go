package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name          string `json:"name"`
	Address       string `json:"address"`
	DefaultLocale string `gorm:"default:en" json:"defaultLocale"`

	UserID uint `json:"userId"` // owner (users.id)
	User   User `json:"-"`

	Tables     []Table    `json:"-"`
	Categories []Category `json:"-"`
	Dishes     []Dish     `json:"-"`
	Orders     []Order    `json:"-"`
}
