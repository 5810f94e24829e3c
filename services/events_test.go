package services

import (
	"sync"
	"testing"

	"qrmenu/entity"
)

// recordingPublisher captures everything the services push to the bridge.
type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(map[string][]Event)}
}

func (p *recordingPublisher) Publish(topic string, ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events[topic] = append(p.events[topic], ev)
}

func (p *recordingPublisher) count(topic, typ string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, ev := range p.events[topic] {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestTransitionsMirrorRowsToBridge(t *testing.T) {
	db := newTestDB(t)
	c := seedCatalog(t, db)
	s := newOrderService(db)
	pub := newRecordingPublisher()
	s.Notifs.Publisher = pub

	out := submitOne(t, s, c)

	kitchenBoard := BoardTopic(c.Restaurant.ID, entity.TargetKitchen)
	waiterBoard := BoardTopic(c.Restaurant.ID, entity.TargetWaiter)
	tableTopic := TableTopic(c.Table.ID)

	if pub.count(kitchenBoard, "notification") != 1 {
		t.Error("submit must push the new_order notification to the kitchen board")
	}
	if pub.count(kitchenBoard, "order_update") == 0 || pub.count(tableTopic, "order_update") == 0 {
		t.Error("submit must mirror the order row to boards and the table feed")
	}

	if err := s.AcceptOrder(c.Restaurant.ID, 1, out.ID, 30); err != nil {
		t.Fatal(err)
	}
	if pub.count(tableTopic, "notification") != 1 {
		t.Error("accept must push the customer notification to the table feed")
	}
	if pub.count(waiterBoard, "notification") != 1 {
		t.Error("accept must push the waiter notification to the waiter board")
	}

	if err := s.DeleteOrder(c.Restaurant.ID, out.ID); err != nil {
		t.Fatal(err)
	}
	if pub.count(kitchenBoard, "order_deleted") != 1 || pub.count(tableTopic, "order_deleted") != 1 {
		t.Error("delete must announce order_deleted on boards and table feed")
	}
}
