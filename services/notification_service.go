package services

import (
	"fmt"
	"log"

	"qrmenu/entity"
	"qrmenu/repository"

	"gorm.io/gorm"
)

type NotificationService struct {
	DB        *gorm.DB
	Repo      *repository.NotificationRepository
	Publisher EventPublisher
}

func NewNotificationService(db *gorm.DB, repo *repository.NotificationRepository, pub EventPublisher) *NotificationService {
	return &NotificationService{DB: db, Repo: repo, Publisher: pub}
}

// FanOutParams describes one order-status transition to announce.
type FanOutParams struct {
	Order       *entity.Order
	TableNumber int
	Type        string   // new_order | accepted | cancelled | ready
	Targets     []string // kitchen / waiter / customer
	PrepMinutes int      // accepted only
	Reason      string   // cancelled only
}

// FanOut inserts one notification row per target in a single batch on the
// given handle (pass the submit transaction to couple it to the order, or
// the plain DB for best-effort post-transition fan-out). The created rows
// are returned so the caller can publish them after commit.
func (s *NotificationService) FanOut(tx *gorm.DB, p FanOutParams) ([]entity.Notification, error) {
	ns := make([]entity.Notification, 0, len(p.Targets))
	for _, target := range p.Targets {
		ns = append(ns, entity.Notification{
			Target:       target,
			Type:         p.Type,
			Message:      renderMessage(target, p),
			OrderID:      p.Order.ID,
			TableID:      p.Order.TableID,
			RestaurantID: p.Order.RestaurantID,
		})
	}
	if err := s.Repo.CreateBatch(tx, ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// Publish pushes committed notification rows to the realtime bridge:
// staff targets to their board topic, customer to the order's table topic.
func (s *NotificationService) Publish(ns []entity.Notification) {
	if s.Publisher == nil {
		return
	}
	for i := range ns {
		n := &ns[i]
		topic := TableTopic(n.TableID)
		if n.Target == entity.TargetKitchen || n.Target == entity.TargetWaiter {
			topic = BoardTopic(n.RestaurantID, n.Target)
		}
		s.Publisher.Publish(topic, Event{Type: "notification", Payload: n})
	}
}

// FanOutBestEffort is the post-transition path: the status change is
// already committed, so an insert failure is logged, not propagated.
func (s *NotificationService) FanOutBestEffort(p FanOutParams) {
	ns, err := s.FanOut(s.DB, p)
	if err != nil {
		log.Printf("notification fan-out failed for order %d (%s): %v", p.Order.ID, p.Type, err)
		return
	}
	s.Publish(ns)
}

// MarkReadForTable is the customer path: the id must be one of the
// table's own customer notifications, anything else reads as missing.
func (s *NotificationService) MarkReadForTable(tableID, id uint) error {
	affected, err := s.Repo.MarkReadForTable(tableID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkReadForRestaurant is the staff path, scoped to the caller's
// restaurant.
func (s *NotificationService) MarkReadForRestaurant(restID, id uint) error {
	affected, err := s.Repo.MarkReadForRestaurant(restID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) ListForTarget(restID uint, target string, unreadOnly bool, limit int) ([]entity.Notification, error) {
	return s.Repo.ListForTarget(restID, target, unreadOnly, limit)
}

func (s *NotificationService) ListForTable(tableID uint, limit int) ([]entity.Notification, error) {
	return s.Repo.ListForTable(tableID, limit)
}

// renderMessage expands the per-target message template. Templates are
// data; swap them out to localize.
func renderMessage(target string, p FanOutParams) string {
	num := p.Order.OrderNumber
	switch p.Type {
	case entity.NotifNewOrder:
		return fmt.Sprintf("New order #%d received!", num)
	case entity.NotifAccepted:
		if target == entity.TargetCustomer {
			return fmt.Sprintf("Your order #%d was accepted. Prep time: %d minutes.", num, p.PrepMinutes)
		}
		return fmt.Sprintf("Order #%d (Table %d) accepted. Prep: %dm.", num, p.TableNumber, p.PrepMinutes)
	case entity.NotifCancelled:
		if target == entity.TargetCustomer {
			return fmt.Sprintf("Your order #%d was refused: %s", num, p.Reason)
		}
		return fmt.Sprintf("Order #%d (Table %d) refused: %s", num, p.TableNumber, p.Reason)
	case entity.NotifReady:
		if target == entity.TargetCustomer {
			return fmt.Sprintf("Your order #%d is ready!", num)
		}
		return fmt.Sprintf("Order #%d (Table %d) ready to serve.", num, p.TableNumber)
	}
	return fmt.Sprintf("Order #%d updated.", num)
}
