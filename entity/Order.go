package entity

import (
	"gorm.io/gorm"
)

// Order statuses. delivered and cancelled are terminal; cancelled is
// reachable from any non-terminal status.
const (
	StatusPending       = "pending"
	StatusReceived      = "received"
	StatusInPreparation = "in_preparation"
	StatusReady         = "ready"
	StatusDelivered     = "delivered"
	StatusCancelled     = "cancelled"
)

type Order struct {
	gorm.Model
	OrderNumber  int    `gorm:"index:idx_restaurant_order_number,unique" json:"orderNumber"` // sequential per restaurant
	Status       string `gorm:"default:pending" json:"status"`
	TotalAmount  int64  `json:"totalAmount"`
	CustomerName string `json:"customerName"`
	Notes        string `json:"notes"`

	RestaurantID uint       `gorm:"index:idx_restaurant_order_number,unique" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	TableID uint  `json:"tableId"`
	Table   Table `json:"-"` // preload only when the table number is needed

	Items         []OrderItem          `json:"items"`
	StatusHistory []OrderStatusHistory `json:"-"`
	Notifications []Notification       `json:"-"`
}
