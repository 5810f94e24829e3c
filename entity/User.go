package entity

import (
	"gorm.io/gorm"
)

// User is a staff account (owner / kitchen / waiter). Customers never log
// in; they are identified by the table they scanned.
type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex" json:"email"`
	Password  string `json:"-"` // bcrypt hash
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"` // owner | kitchen | waiter

	RestaurantID uint `json:"restaurantId"`
}
