package entity

import (
	"gorm.io/gorm"
)

// Notification targets.
const (
	TargetKitchen  = "kitchen"
	TargetWaiter   = "waiter"
	TargetCustomer = "customer"
)

// Notification types.
const (
	NotifNewOrder  = "new_order"
	NotifAccepted  = "accepted"
	NotifCancelled = "cancelled"
	NotifReady     = "ready"
)

type Notification struct {
	gorm.Model
	Target  string `gorm:"index" json:"target"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Read    bool   `gorm:"default:false" json:"read"`

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	TableID uint `json:"tableId"`

	RestaurantID uint `gorm:"index" json:"restaurantId"`
}
