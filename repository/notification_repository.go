package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// CreateBatch inserts all notifications of one fan-out in a single call.
func (r *NotificationRepository) CreateBatch(tx *gorm.DB, ns []entity.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return tx.Create(&ns).Error
}

// MarkReadForTable marks a customer notification read, scoped to the
// table the caller's QR token resolved to.
func (r *NotificationRepository) MarkReadForTable(tableID, id uint) (int64, error) {
	res := r.DB.Model(&entity.Notification{}).
		Where("id = ? AND table_id = ? AND target = ?", id, tableID, entity.TargetCustomer).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// MarkReadForRestaurant marks a staff notification read within the
// caller's restaurant.
func (r *NotificationRepository) MarkReadForRestaurant(restID, id uint) (int64, error) {
	res := r.DB.Model(&entity.Notification{}).
		Where("id = ? AND restaurant_id = ?", id, restID).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) ListForTarget(restID uint, target string, unreadOnly bool, limit int) ([]entity.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	db := r.DB.Where("restaurant_id = ? AND target = ?", restID, target)
	if unreadOnly {
		db = db.Where("read = ?", false)
	}
	var out []entity.Notification
	err := db.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// ListForTable returns customer-facing notifications for one table, used
// by the menu page a customer keeps open after ordering.
func (r *NotificationRepository) ListForTable(tableID uint, limit int) ([]entity.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []entity.Notification
	err := r.DB.Where("table_id = ? AND target = ?", tableID, entity.TargetCustomer).
		Order("id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) ListForOrder(orderID uint) ([]entity.Notification, error) {
	var out []entity.Notification
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&out).Error
	return out, err
}
