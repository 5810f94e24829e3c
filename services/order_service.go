package services

import (
	"errors"
	"strings"

	"qrmenu/entity"
	"qrmenu/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	DB     *gorm.DB
	Repo   *repository.OrderRepository
	Menu   *repository.MenuRepository
	Tables *repository.TableRepository
	Notifs *NotificationService
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	menu *repository.MenuRepository,
	tables *repository.TableRepository,
	notifs *NotificationService,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, Menu: menu, Tables: tables, Notifs: notifs}
}

// ----- DTOs from Controller -----

type SubmitItemIn struct {
	DishID   uint   `json:"dishId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Notes    string `json:"notes"`
	// ingredient id -> extra units beyond the dish default
	Ingredients map[uint]int `json:"ingredients"`
}

type SubmitOrderReq struct {
	RestaurantID uint           `json:"restaurantId" binding:"required"`
	TableToken   string         `json:"tableToken"` // scanned QR; empty for walk-in/delivery
	CustomerName string         `json:"customerName"`
	Notes        string         `json:"notes"`
	Items        []SubmitItemIn `json:"items" binding:"required,min=1"`
}

type SubmitOrderRes struct {
	ID          uint   `json:"id"`
	OrderNumber int    `json:"orderNumber"`
	TableID     uint   `json:"tableId"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
}

// SubmitOrder builds and persists the whole order aggregate in one
// transaction: order row, items, customization rows, the initial pending
// history row and the kitchen new_order notification. All prices are
// recomputed from the catalog here; figures a client may have shown are
// display-only and never trusted.
func (s *OrderService) SubmitOrder(req *SubmitOrderReq) (*SubmitOrderRes, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	ok, err := s.Menu.RestaurantExists(req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	dishIDs := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		dishIDs = append(dishIDs, it.DishID)
	}
	ok, err = s.Menu.ValidateDishesBelongToRestaurant(dishIDs, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("dish not in this restaurant")
	}

	// Price every line from the catalog before opening the transaction.
	type pricedLine struct {
		in        SubmitItemIn
		unitPrice int64
		extras    []entity.OrderItemIngredient // qty > 0 deviations only
	}
	lines := make([]pricedLine, 0, len(req.Items))
	var total int64

	for _, it := range req.Items {
		defs, err := s.Menu.GetDishIngredients(it.DishID)
		if err != nil {
			return nil, err
		}
		dish, err := s.Menu.GetDishBasics(it.DishID)
		if err != nil {
			return nil, err
		}

		prices := make([]IngredientPrice, 0, len(defs))
		for _, d := range defs {
			prices = append(prices, IngredientPrice{
				IngredientID:    d.IngredientID,
				BasePrice:       d.Ingredient.BasePrice,
				AdditionalPrice: d.AdditionalPrice,
			})
		}
		unit := UnitPrice(dish.BasePrice, prices, it.Ingredients)

		extras := make([]entity.OrderItemIngredient, 0)
		for _, d := range defs {
			qty := it.Ingredients[d.IngredientID]
			if qty <= 0 {
				continue
			}
			extras = append(extras, entity.OrderItemIngredient{
				IngredientID: d.IngredientID,
				WasAdded:     true,
				Quantity:     qty,
				Price:        d.Ingredient.BasePrice + d.AdditionalPrice,
			})
		}

		total += unit * int64(it.Quantity)
		lines = append(lines, pricedLine{in: it, unitPrice: unit, extras: extras})
	}

	var out SubmitOrderRes
	var created []entity.Notification
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		table, err := s.resolveTable(tx, req.RestaurantID, req.TableToken)
		if err != nil {
			return err
		}

		number, err := s.Repo.NextOrderNumber(tx, req.RestaurantID)
		if err != nil {
			return err
		}

		order := entity.Order{
			OrderNumber:  number,
			Status:       entity.StatusPending,
			TotalAmount:  total,
			CustomerName: strings.TrimSpace(req.CustomerName),
			Notes:        req.Notes,
			RestaurantID: req.RestaurantID,
			TableID:      table.ID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, line := range lines {
			oi := entity.OrderItem{
				Quantity:   line.in.Quantity,
				UnitPrice:  line.unitPrice,
				TotalPrice: line.unitPrice * int64(line.in.Quantity),
				Notes:      line.in.Notes,
				OrderID:    order.ID,
				DishID:     line.in.DishID,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			for _, extra := range line.extras {
				extra.OrderItemID = oi.ID
				if err := s.Repo.CreateOrderItemIngredient(tx, &extra); err != nil {
					return err
				}
			}
		}

		if err := s.Repo.AppendHistory(tx, &entity.OrderStatusHistory{
			OrderID: order.ID,
			Status:  entity.StatusPending,
		}); err != nil {
			return err
		}

		// The kitchen alert commits with the order: no order without its
		// new_order notification and vice versa.
		ns, err := s.Notifs.FanOut(tx, FanOutParams{
			Order:       &order,
			TableNumber: table.Number,
			Type:        entity.NotifNewOrder,
			Targets:     []string{entity.TargetKitchen},
		})
		if err != nil {
			return err
		}
		created = ns

		out = SubmitOrderRes{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			TableID:     table.ID,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderUpdate(out.ID)
	s.Notifs.Publish(created)
	return &out, nil
}

// resolveTable maps a scanned QR token to its table, or picks a fallback
// for walk-in/delivery orders: the restaurant's first active table, else a
// fresh synthetic "Counter" table.
func (s *OrderService) resolveTable(tx *gorm.DB, restID uint, token string) (*entity.Table, error) {
	if token != "" {
		table, err := s.Tables.GetByToken(token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if table.RestaurantID != restID {
			return nil, ErrForbidden
		}
		return table, nil
	}

	table, err := s.Tables.FirstActive(tx, restID)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	max, err := s.Tables.MaxNumber(tx, restID)
	if err != nil {
		return nil, err
	}
	counter := &entity.Table{
		Number:       max + 1,
		QRCodeToken:  uuid.NewString(),
		IsActive:     true,
		RestaurantID: restID,
	}
	if err := s.Tables.Create(tx, counter); err != nil {
		return nil, err
	}
	return counter, nil
}

// ----- Queries -----

func (s *OrderService) ListForRestaurant(restID uint, status string, limit int) ([]repository.OrderSummary, error) {
	if status != "" && !knownStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.Repo.ListOrdersForRestaurant(restID, status, limit)
}

func (s *OrderService) ListForTable(tableID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForTable(tableID, limit)
}

type OrderItemDetail struct {
	ID          uint                         `json:"id"`
	DishID      uint                         `json:"dishId"`
	DishName    string                       `json:"dishName"`
	Quantity    int                          `json:"quantity"`
	UnitPrice   int64                        `json:"unitPrice"`
	TotalPrice  int64                        `json:"totalPrice"`
	Notes       string                       `json:"notes"`
	Ingredients []entity.OrderItemIngredient `json:"ingredients"`
}

type OrderDetail struct {
	ID           uint              `json:"id"`
	OrderNumber  int               `json:"orderNumber"`
	Status       string            `json:"status"`
	TotalAmount  int64             `json:"totalAmount"`
	CustomerName string            `json:"customerName"`
	Notes        string            `json:"notes"`
	TableID      uint              `json:"tableId"`
	TableNumber  int               `json:"tableNumber"`
	Items        []OrderItemDetail `json:"items"`
}

// Detail returns one order with its items, customizations and the dish
// display names resolved for the requested locale.
func (s *OrderService) Detail(restID, orderID uint, locale string) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderDetail(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if restID != 0 && o.RestaurantID != restID {
		return nil, ErrForbidden
	}

	rest, err := s.Menu.GetRestaurant(o.RestaurantID)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItemDetail, 0, len(o.Items))
	for _, it := range o.Items {
		name := ""
		if dish, err := s.Menu.GetDishBasics(it.DishID); err == nil {
			name = dish.Name.Resolve(locale, rest.DefaultLocale)
		}
		items = append(items, OrderItemDetail{
			ID:          it.ID,
			DishID:      it.DishID,
			DishName:    name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Notes:       it.Notes,
			Ingredients: it.Ingredients,
		})
	}

	return &OrderDetail{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		CustomerName: o.CustomerName,
		Notes:        o.Notes,
		TableID:      o.TableID,
		TableNumber:  o.Table.Number,
		Items:        items,
	}, nil
}

func (s *OrderService) History(restID, orderID uint) ([]entity.OrderStatusHistory, error) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if restID != 0 && o.RestaurantID != restID {
		return nil, ErrForbidden
	}
	return s.Repo.GetHistory(orderID)
}
