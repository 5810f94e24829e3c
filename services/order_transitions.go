package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"qrmenu/entity"

	"gorm.io/gorm"
)

// legalFrom maps a target status to the statuses a transition may start
// from. The kitchen board walks pending → received → in_preparation →
// ready → delivered; AcceptOrder short-circuits pending straight into
// in_preparation, so in_preparation admits both entry points.
var legalFrom = map[string][]string{
	entity.StatusReceived:      {entity.StatusPending},
	entity.StatusInPreparation: {entity.StatusPending, entity.StatusReceived},
	entity.StatusReady:         {entity.StatusInPreparation},
	entity.StatusDelivered:     {entity.StatusReady},
	entity.StatusCancelled: {
		entity.StatusPending, entity.StatusReceived,
		entity.StatusInPreparation, entity.StatusReady,
	},
}

func knownStatus(s string) bool {
	switch s {
	case entity.StatusPending, entity.StatusReceived, entity.StatusInPreparation,
		entity.StatusReady, entity.StatusDelivered, entity.StatusCancelled:
		return true
	}
	return false
}

var acceptPrepTimes = map[int]bool{15: true, 30: true, 60: true, 90: true}

// transition applies one guarded status change scoped to the caller's
// restaurant: the conditional update and the history row commit together.
// Zero affected rows is disambiguated into missing order, foreign order,
// or a concurrent/illegal transition.
func (s *OrderService) transition(restID, orderID uint, from []string, to string, changedBy *uint, notes string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, restID, orderID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			var o entity.Order
			if err := tx.Select("restaurant_id").First(&o, orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if o.RestaurantID != restID {
				return ErrForbidden
			}
			return ErrConflict
		}
		return s.Repo.AppendHistory(tx, &entity.OrderStatusHistory{
			OrderID:   orderID,
			Status:    to,
			ChangedBy: changedBy,
			Notes:     notes,
		})
	})
}

// AcceptOrder moves a pending order directly into preparation with a prep
// time commitment, then tells the customer and the waiter.
func (s *OrderService) AcceptOrder(restID, actorID, orderID uint, prepMinutes int) error {
	if !acceptPrepTimes[prepMinutes] {
		return ErrInvalidPrepTime
	}
	notes := fmt.Sprintf("accepted, prep time %d minutes", prepMinutes)
	err := s.transition(restID, orderID, []string{entity.StatusPending}, entity.StatusInPreparation, &actorID, notes)
	if err != nil {
		return err
	}
	s.fanOutAfterCommit(orderID, FanOutParams{
		Type:        entity.NotifAccepted,
		Targets:     []string{entity.TargetCustomer, entity.TargetWaiter},
		PrepMinutes: prepMinutes,
	})
	return nil
}

// RefuseOrder cancels a pending order. An empty reason rejects the call
// before anything is written.
func (s *OrderService) RefuseOrder(restID, actorID, orderID uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrEmptyReason
	}
	err := s.transition(restID, orderID, []string{entity.StatusPending}, entity.StatusCancelled, &actorID, reason)
	if err != nil {
		return err
	}
	s.fanOutAfterCommit(orderID, FanOutParams{
		Type:    entity.NotifCancelled,
		Targets: []string{entity.TargetCustomer, entity.TargetWaiter},
		Reason:  reason,
	})
	return nil
}

// MarkOrderReady moves an order out of preparation and announces it.
func (s *OrderService) MarkOrderReady(restID, actorID, orderID uint) error {
	err := s.transition(restID, orderID, []string{entity.StatusInPreparation}, entity.StatusReady, &actorID, "")
	if err != nil {
		return err
	}
	s.fanOutAfterCommit(orderID, FanOutParams{
		Type:    entity.NotifReady,
		Targets: []string{entity.TargetCustomer, entity.TargetWaiter},
	})
	return nil
}

// UpdateOrderStatus is the generic guarded advance used by the kitchen
// board (received, manual steps) and the waiter (delivered). It records
// history but synthesizes no notifications; only the three specialized
// operations above do.
func (s *OrderService) UpdateOrderStatus(restID, actorID, orderID uint, newStatus string) error {
	from, ok := legalFrom[newStatus]
	if !ok {
		return ErrInvalidStatus
	}
	if err := s.transition(restID, orderID, from, newStatus, &actorID, ""); err != nil {
		return err
	}
	s.publishOrderUpdate(orderID)
	return nil
}

// ReopenOrder puts a cancelled order back to pending. Escape hatch, not
// part of the forward flow.
func (s *OrderService) ReopenOrder(restID, actorID, orderID uint) error {
	err := s.transition(restID, orderID, []string{entity.StatusCancelled}, entity.StatusPending, &actorID, "reopened")
	if err != nil {
		return err
	}
	s.publishOrderUpdate(orderID)
	return nil
}

// DeleteOrder hard-deletes an order and its item/customization rows.
// Irreversible; staff cleanup only.
func (s *OrderService) DeleteOrder(restID, orderID uint) error {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if o.RestaurantID != restID {
		return ErrForbidden
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteOrderCascade(tx, orderID)
	})
	if err != nil {
		return err
	}
	if s.Notifs.Publisher != nil {
		ev := Event{Type: "order_deleted", Payload: map[string]uint{"orderId": orderID}}
		s.Notifs.Publisher.Publish(BoardTopic(o.RestaurantID, entity.TargetKitchen), ev)
		s.Notifs.Publisher.Publish(BoardTopic(o.RestaurantID, entity.TargetWaiter), ev)
		s.Notifs.Publisher.Publish(TableTopic(o.TableID), ev)
	}
	return nil
}

// fanOutAfterCommit loads the committed order and runs the best-effort
// notification fan-out plus the board/table order_update event. The status
// change stands even if this fails; boards fall back to refetching.
func (s *OrderService) fanOutAfterCommit(orderID uint, p FanOutParams) {
	o, err := s.Repo.GetOrderDetail(orderID)
	if err != nil {
		log.Printf("fan-out: reload order %d failed: %v", orderID, err)
		return
	}
	p.Order = o
	p.TableNumber = o.Table.Number
	s.Notifs.FanOutBestEffort(p)
	s.publishOrder(o)
}

// publishOrderUpdate mirrors a committed order row change to every
// subscribed surface.
func (s *OrderService) publishOrderUpdate(orderID uint) {
	if s.Notifs.Publisher == nil {
		return
	}
	o, err := s.Repo.GetOrderDetail(orderID)
	if err != nil {
		return
	}
	s.publishOrder(o)
}

func (s *OrderService) publishOrder(o *entity.Order) {
	if s.Notifs.Publisher == nil {
		return
	}
	ev := Event{Type: "order_update", Payload: o}
	s.Notifs.Publisher.Publish(BoardTopic(o.RestaurantID, entity.TargetKitchen), ev)
	s.Notifs.Publisher.Publish(BoardTopic(o.RestaurantID, entity.TargetWaiter), ev)
	s.Notifs.Publisher.Publish(TableTopic(o.TableID), ev)
}
