package services

import (
	"errors"
	"testing"

	"qrmenu/entity"
)

func TestSubmitOrderComputesPricesServerSide(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	out, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: c.Restaurant.ID,
		TableToken:   c.Table.QRCodeToken,
		Items: []SubmitItemIn{
			// base 20.00 + 2 x (2.50 + 1.00) = 27.00, times 3 units
			{DishID: c.Burger.ID, Quantity: 3, Ingredients: map[uint]int{c.Bacon.ID: 2}},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Status != entity.StatusPending {
		t.Errorf("status = %q, want pending", out.Status)
	}
	if out.OrderNumber != 1 {
		t.Errorf("order number = %d, want 1", out.OrderNumber)
	}
	if out.TotalAmount != 3*2700 {
		t.Errorf("total = %d, want %d", out.TotalAmount, 3*2700)
	}

	var items []entity.OrderItem
	if err := db.Where("order_id = ?", out.ID).Find(&items).Error; err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].UnitPrice != 2700 {
		t.Errorf("unit price = %d, want 2700", items[0].UnitPrice)
	}
	if items[0].TotalPrice != items[0].UnitPrice*int64(items[0].Quantity) {
		t.Errorf("total price %d != unit %d * qty %d", items[0].TotalPrice, items[0].UnitPrice, items[0].Quantity)
	}
}

func TestSubmitOrderTotalInvariant(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	out, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: c.Restaurant.ID,
		TableToken:   c.Table.QRCodeToken,
		Items: []SubmitItemIn{
			{DishID: c.Burger.ID, Quantity: 2, Ingredients: map[uint]int{c.Cheese.ID: 1}},
			{DishID: c.Burger.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	var items []entity.OrderItem
	if err := db.Where("order_id = ?", out.ID).Find(&items).Error; err != nil {
		t.Fatal(err)
	}
	var sum int64
	for _, it := range items {
		sum += it.TotalPrice
	}
	if sum != out.TotalAmount {
		t.Errorf("order total %d != sum of item totals %d", out.TotalAmount, sum)
	}
}

func TestSubmitOrderPersistsOnlyAddedIngredients(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	out, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: c.Restaurant.ID,
		TableToken:   c.Table.QRCodeToken,
		Items: []SubmitItemIn{
			{DishID: c.Burger.ID, Quantity: 1, Ingredients: map[uint]int{
				c.Cheese.ID: 0, // untouched default: no row
				c.Bacon.ID:  2, // paid deviation: one row
			}},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	var item entity.OrderItem
	if err := db.Where("order_id = ?", out.ID).First(&item).Error; err != nil {
		t.Fatal(err)
	}
	var rows []entity.OrderItemIngredient
	if err := db.Where("order_item_id = ?", item.ID).Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("customization rows = %d, want 1", len(rows))
	}
	if rows[0].IngredientID != c.Bacon.ID {
		t.Errorf("persisted ingredient = %d, want bacon %d", rows[0].IngredientID, c.Bacon.ID)
	}
	if !rows[0].WasAdded {
		t.Error("was_added should be true")
	}
	if rows[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", rows[0].Quantity)
	}
	if rows[0].Price != 350 {
		t.Errorf("per-unit price = %d, want 350", rows[0].Price)
	}
}

func TestSubmitOrderWritesHistoryAndKitchenNotification(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	out := submitOne(t, s, c)

	if n := countHistory(t, db, out.ID); n != 1 {
		t.Errorf("history rows = %d, want 1", n)
	}
	var h entity.OrderStatusHistory
	if err := db.Where("order_id = ?", out.ID).First(&h).Error; err != nil {
		t.Fatal(err)
	}
	if h.Status != entity.StatusPending {
		t.Errorf("history status = %q, want pending", h.Status)
	}
	if h.ChangedBy != nil {
		t.Error("customer submission must not attribute an actor")
	}

	ns := notificationsFor(t, db, out.ID, entity.NotifNewOrder)
	if len(ns) != 1 {
		t.Fatalf("new_order notifications = %d, want 1", len(ns))
	}
	if ns[0].Target != entity.TargetKitchen {
		t.Errorf("target = %q, want kitchen", ns[0].Target)
	}
	if ns[0].RestaurantID != c.Restaurant.ID || ns[0].TableID != c.Table.ID {
		t.Error("notification must carry restaurant and table ids")
	}
}

func TestSubmitOrderSequentialNumbersPerRestaurant(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	first := submitOne(t, s, c)
	second := submitOne(t, s, c)
	if first.OrderNumber != 1 || second.OrderNumber != 2 {
		t.Errorf("order numbers = %d, %d, want 1, 2", first.OrderNumber, second.OrderNumber)
	}

	other := entity.Restaurant{Name: "Other", DefaultLocale: "en"}
	mustCreate(t, db, &other)
	otherDish := entity.Dish{Name: entity.LocalizedText{"en": "Soup"}, BasePrice: 900, IsAvailable: true, RestaurantID: other.ID}
	mustCreate(t, db, &otherDish)

	out, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: other.ID,
		Items:        []SubmitItemIn{{DishID: otherDish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("submit to other restaurant: %v", err)
	}
	if out.OrderNumber != 1 {
		t.Errorf("numbering must be scoped per restaurant, got %d", out.OrderNumber)
	}
}

func TestSubmitOrderFallbackTable(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	// no token: first active table of the restaurant
	out, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: c.Restaurant.ID,
		Items:        []SubmitItemIn{{DishID: c.Burger.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("submit without token: %v", err)
	}
	if out.TableID != c.Table.ID {
		t.Errorf("fallback table = %d, want first active %d", out.TableID, c.Table.ID)
	}

	// no tables at all: a synthetic counter table is created
	other := entity.Restaurant{Name: "Tableless", DefaultLocale: "en"}
	mustCreate(t, db, &other)
	dish := entity.Dish{Name: entity.LocalizedText{"en": "Wrap"}, BasePrice: 700, IsAvailable: true, RestaurantID: other.ID}
	mustCreate(t, db, &dish)

	out, err = s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: other.ID,
		Items:        []SubmitItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("submit without tables: %v", err)
	}
	var table entity.Table
	if err := db.First(&table, out.TableID).Error; err != nil {
		t.Fatalf("synthetic table missing: %v", err)
	}
	if table.RestaurantID != other.ID || !table.IsActive || table.QRCodeToken == "" {
		t.Error("synthetic table must be active, tokenized and owned by the restaurant")
	}
}

func TestSubmitOrderValidation(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	if _, err := s.SubmitOrder(&SubmitOrderReq{RestaurantID: c.Restaurant.ID}); !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("empty cart: err = %v, want ErrEmptyOrder", err)
	}

	if _, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: 9999,
		Items:        []SubmitItemIn{{DishID: c.Burger.ID, Quantity: 1}},
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown restaurant: err = %v, want ErrNotFound", err)
	}

	other := entity.Restaurant{Name: "Another", DefaultLocale: "en"}
	mustCreate(t, db, &other)
	if _, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: other.ID,
		Items:        []SubmitItemIn{{DishID: c.Burger.ID, Quantity: 1}},
	}); err == nil {
		t.Error("dish from a different restaurant must be rejected")
	}

	// a dish the menu hides cannot be ordered either
	if err := db.Model(&entity.Dish{}).Where("id = ?", c.Burger.ID).Update("is_available", false).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitOrder(&SubmitOrderReq{
		RestaurantID: c.Restaurant.ID,
		TableToken:   c.Table.QRCodeToken,
		Items:        []SubmitItemIn{{DishID: c.Burger.ID, Quantity: 1}},
	}); err == nil {
		t.Error("unavailable dish must be rejected")
	}
}

func TestOrderDetailResolvesDishNames(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	out := submitOne(t, s, c)

	detail, err := s.Detail(c.Restaurant.ID, out.ID, "pt")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.TableNumber != c.Table.Number {
		t.Errorf("table number = %d, want %d", detail.TableNumber, c.Table.Number)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(detail.Items))
	}
	if detail.Items[0].DishName != "Hambúrguer" {
		t.Errorf("dish name = %q, want localized pt name", detail.Items[0].DishName)
	}
	if len(detail.Items[0].Ingredients) != 1 {
		t.Errorf("customizations = %d, want 1", len(detail.Items[0].Ingredients))
	}
}

func TestListForRestaurantStatusFilter(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)

	first := submitOne(t, s, c)
	submitOne(t, s, c)
	if err := s.AcceptOrder(c.Restaurant.ID, 1, first.ID, 30); err != nil {
		t.Fatalf("accept: %v", err)
	}

	pending, err := s.ListForRestaurant(c.Restaurant.ID, entity.StatusPending, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("pending orders = %d, want 1", len(pending))
	}

	all, err := s.ListForRestaurant(c.Restaurant.ID, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("all orders = %d, want 2", len(all))
	}

	if _, err := s.ListForRestaurant(c.Restaurant.ID, "bogus", 0); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("bogus filter: err = %v, want ErrInvalidStatus", err)
	}
}
