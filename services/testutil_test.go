package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"qrmenu/entity"
	"qrmenu/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh named in-memory sqlite database and migrates
// the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&entity.User{}, &entity.Restaurant{}, &entity.Table{},
		&entity.Category{}, &entity.Dish{}, &entity.Ingredient{}, &entity.DishIngredient{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderItemIngredient{},
		&entity.OrderStatusHistory{}, &entity.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// catalog is the fixture every order test starts from: one restaurant,
// one table, one dish (base 20.00) with two optional add-ons.
type catalog struct {
	Restaurant entity.Restaurant
	Table      entity.Table
	Burger     entity.Dish
	Bacon      entity.Ingredient // 2.50 base + 1.00 surcharge = 3.50/unit
	Cheese     entity.Ingredient // 2.00 base, no surcharge
}

func seedCatalog(t *testing.T, db *gorm.DB) catalog {
	t.Helper()
	var c catalog

	c.Restaurant = entity.Restaurant{Name: "Test Bistro", DefaultLocale: "en"}
	mustCreate(t, db, &c.Restaurant)

	c.Table = entity.Table{
		Number:       1,
		QRCodeToken:  uuid.NewString(),
		IsActive:     true,
		RestaurantID: c.Restaurant.ID,
	}
	mustCreate(t, db, &c.Table)

	cat := entity.Category{
		Name:         entity.LocalizedText{"en": "Mains", "pt": "Principais"},
		RestaurantID: c.Restaurant.ID,
	}
	mustCreate(t, db, &cat)

	c.Burger = entity.Dish{
		Name:         entity.LocalizedText{"en": "Burger", "pt": "Hambúrguer"},
		BasePrice:    2000,
		IsAvailable:  true,
		CategoryID:   cat.ID,
		RestaurantID: c.Restaurant.ID,
	}
	mustCreate(t, db, &c.Burger)

	c.Bacon = entity.Ingredient{Name: entity.LocalizedText{"en": "Bacon"}, BasePrice: 250, RestaurantID: c.Restaurant.ID}
	mustCreate(t, db, &c.Bacon)
	c.Cheese = entity.Ingredient{Name: entity.LocalizedText{"en": "Cheese"}, BasePrice: 200, RestaurantID: c.Restaurant.ID}
	mustCreate(t, db, &c.Cheese)

	mustCreate(t, db, &entity.DishIngredient{
		DishID: c.Burger.ID, IngredientID: c.Bacon.ID,
		AdditionalPrice: 100, IsOptional: true,
	})
	mustCreate(t, db, &entity.DishIngredient{
		DishID: c.Burger.ID, IngredientID: c.Cheese.ID,
		IsOptional: true,
	})
	return c
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func newOrderService(db *gorm.DB) *OrderService {
	notifs := NewNotificationService(db, repository.NewNotificationRepository(db), nil)
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewMenuRepository(db),
		repository.NewTableRepository(db),
		notifs,
	)
}

// submitOne places a standard order (1x burger + 2x bacon) and returns it.
func submitOne(t *testing.T, s *OrderService, c catalog) *SubmitOrderRes {
	t.Helper()
	out, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: c.Restaurant.ID,
		TableToken:   c.Table.QRCodeToken,
		CustomerName: "Ana",
		Items: []SubmitItemIn{
			{DishID: c.Burger.ID, Quantity: 1, Ingredients: map[uint]int{c.Bacon.ID: 2}},
		},
	})
	if err != nil {
		t.Fatalf("submit order: %v", err)
	}
	return out
}

func countHistory(t *testing.T, db *gorm.DB, orderID uint) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&entity.OrderStatusHistory{}).Where("order_id = ?", orderID).Count(&n).Error; err != nil {
		t.Fatalf("count history: %v", err)
	}
	return n
}

func notificationsFor(t *testing.T, db *gorm.DB, orderID uint, typ string) []entity.Notification {
	t.Helper()
	var ns []entity.Notification
	if err := db.Where("order_id = ? AND type = ?", orderID, typ).Find(&ns).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	return ns
}
