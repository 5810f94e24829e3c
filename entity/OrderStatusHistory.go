package entity

import (
	"gorm.io/gorm"
)

// OrderStatusHistory is append-only: one row per transition, never updated
// or deleted, so an order's lifecycle can be replayed in full.
type OrderStatusHistory struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	Status    string `json:"status"`
	ChangedBy *uint  `json:"changedBy"` // staff user id; nil for customer/system actions
	Notes     string `json:"notes"`     // e.g. prep time or refusal reason
}
