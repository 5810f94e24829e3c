package repository

import (
	"time"

	"qrmenu/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// NextOrderNumber returns the next sequential order number for a
// restaurant. Must run inside the submit transaction.
func (r *OrderRepository) NextOrderNumber(tx *gorm.DB, restID uint) (int, error) {
	var row struct{ Max int }
	err := tx.Model(&entity.Order{}).
		Select("COALESCE(MAX(order_number), 0) AS max").
		Where("restaurant_id = ?", restID).
		Scan(&row).Error
	return row.Max + 1, err
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForRestaurant(restID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND restaurant_id = ?", orderID, restID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderDetail loads an order with its items, their customizations and
// the table, for the detail endpoints and the fan-out message rendering.
func (r *OrderRepository) GetOrderDetail(orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Items").
		Preload("Items.Ingredients").
		Preload("Table").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID           uint      `json:"id"`
	OrderNumber  int       `json:"orderNumber"`
	Status       string    `json:"status"`
	TotalAmount  int64     `json:"totalAmount"`
	CustomerName string    `json:"customerName"`
	TableID      uint      `json:"tableId"`
	TableNumber  int       `json:"tableNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListOrdersForRestaurant returns order summaries for the staff boards,
// newest first, optionally filtered by status.
func (r *OrderRepository) ListOrdersForRestaurant(restID uint, status string, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	db := r.DB.Table("orders AS o").
		Select("o.id, o.order_number, o.status, o.total_amount, o.customer_name, o.table_id, t.number AS table_number, o.created_at").
		Joins("JOIN tables t ON t.id = o.table_id").
		Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restID)
	if status != "" {
		db = db.Where("o.status = ?", status)
	}
	var out []OrderSummary
	err := db.Order("o.id DESC").Limit(limit).Scan(&out).Error
	return out, err
}

func (r *OrderRepository) ListOrdersForTable(tableID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []OrderSummary
	err := r.DB.Table("orders AS o").
		Select("o.id, o.order_number, o.status, o.total_amount, o.customer_name, o.table_id, t.number AS table_number, o.created_at").
		Joins("JOIN tables t ON t.id = o.table_id").
		Where("o.table_id = ? AND o.deleted_at IS NULL", tableID).
		Order("o.id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// UpdateStatusGuard flips the status only when the order belongs to the
// restaurant and is still in one of the expected prior statuses. Zero
// rows affected means a concurrent transition, an illegal one, or a
// foreign order.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, restID, orderID uint, from []string, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND restaurant_id = ? AND status IN ?", orderID, restID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// DeleteOrderCascade hard-deletes an order with its items and their
// customization rows. History and notifications are retained.
func (r *OrderRepository) DeleteOrderCascade(tx *gorm.DB, orderID uint) error {
	var itemIDs []uint
	if err := tx.Model(&entity.OrderItem{}).Where("order_id = ?", orderID).Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) > 0 {
		if err := tx.Unscoped().Where("order_item_id IN ?", itemIDs).Delete(&entity.OrderItemIngredient{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Unscoped().Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.Order{}, orderID).Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) CreateOrderItemIngredient(tx *gorm.DB, oii *entity.OrderItemIngredient) error {
	return tx.Create(oii).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Preload("Ingredients").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

// ---------------- Status history ----------------

func (r *OrderRepository) AppendHistory(tx *gorm.DB, h *entity.OrderStatusHistory) error {
	return tx.Create(h).Error
}

func (r *OrderRepository) GetHistory(orderID uint) ([]entity.OrderStatusHistory, error) {
	var rows []entity.OrderStatusHistory
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&rows).Error
	return rows, err
}
